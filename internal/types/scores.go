package types

// ScoreReport holds raw per-category scores from a model evaluation.
// Raw scores are on an arbitrary scale and are not guaranteed to sum to
// 100; they must pass through weights.Normalize before use.
type ScoreReport struct {
	Scores     map[string]float64 `json:"scores"`
	Rationales map[string]string  `json:"rationales,omitempty"`
}

// RefineSelections captures the assets the user locked in before a
// refinement pass. Index pointers are nil when nothing was selected.
type RefineSelections struct {
	TitleIndex     *int     `json:"title_index,omitempty"`
	ThumbnailIndex *int     `json:"thumbnail_index,omitempty"`
	KeepTags       []string `json:"keep_tags,omitempty"`
	Guidance       string   `json:"guidance,omitempty"`
}
