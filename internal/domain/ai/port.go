package ai

import "context"

// Client is the upstream language model. The credential travels with each
// call; implementations must not retain or log it.
type Client interface {
	Invoke(ctx context.Context, credential, prompt, modelID string) (string, error)
}
