package services

import "context"

// TextGenerator is the opaque text-generation collaborator: it receives a
// prompt string and returns a generated string. The ledger never parses or
// validates the returned text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// InsightSvcFacade produces a short natural-language comment on the user's
// current financial situation.
type InsightSvcFacade interface {
	// GenerateInsight builds a prompt from the current period's summary and
	// top outstanding obligations and asks the text generator for a comment.
	GenerateInsight(ctx context.Context, userID string) (string, error)
}
