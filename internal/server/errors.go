package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrKitNotFound indicates the requested kit does not exist
type ErrKitNotFound struct {
	ID uuid.UUID
}

func (e *ErrKitNotFound) Error() string {
	return fmt.Sprintf("kit not found: %s", e.ID)
}

// ErrPresetNotFound indicates the requested weight preset does not exist
type ErrPresetNotFound struct {
	Name string
}

func (e *ErrPresetNotFound) Error() string {
	return fmt.Sprintf("weight preset not found: %s", e.Name)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrKitNotFound, *ErrPresetNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
