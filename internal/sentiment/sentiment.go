package sentiment

import "context"

// Result is one classification produced for an input text.
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyzer classifies the sentiment of free text through an external model.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]Result, error)
}
