package ports

import "context"

// TextGenerator is the external text-generation collaborator.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
