package domain

import "context"

// Analyzer is the remote analysis service behind the three flows.
type Analyzer interface {
	Interpret(ctx context.Context, text string) (*Interpretation, error)
	Replies(ctx context.Context, text, goal string) (*ReplyOptions, error)
	Style(ctx context.Context, preferences []string) (*StyleVariants, error)
}

// Clipboard receives text copied by the user.
type Clipboard interface {
	WriteText(text string) error
}
