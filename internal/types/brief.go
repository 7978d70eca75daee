// Package types provides type definitions for structured data used throughout the promokit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Brief is the user's creative brief: the short description of the content
// that every generated asset derives from.
type Brief struct {
	Topic        string `json:"topic"`
	Audience     string `json:"audience,omitempty"`
	Tone         string `json:"tone,omitempty"`
	Platform     string `json:"platform,omitempty"`
	Notes        string `json:"notes,omitempty"`
	ReferenceURL string `json:"reference_url,omitempty"` // Optional competitor/reference page for extended kits
}

// Validate checks that the brief carries enough information to generate from.
func (b *Brief) Validate() error {
	if b.Topic == "" {
		return fmt.Errorf("brief is missing a topic")
	}
	return nil
}
