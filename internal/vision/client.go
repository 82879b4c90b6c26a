package vision

import "context"

// Request carries everything one model invocation needs. The schema hint is
// appended to the user prompt so the model answers in the shape the pipeline
// expects; nothing downstream trusts that it actually did.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	SchemaHint   string
	ImageBytes   []byte
}

// Client is the outbound collaborator boundary to the generative vision
// model: one prompt plus one image in, raw untrusted text out.
type Client interface {
	Invoke(ctx context.Context, req Request) (string, error)
	Model() string
}
