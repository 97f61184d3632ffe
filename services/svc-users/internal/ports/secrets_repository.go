package ports

import (
	"context"

	"github.com/hashicorp/vault/api"
)

// SecretsRepository reads secrets from a KV storage backend.
type SecretsRepository interface {
	// SetToken sets the authentication token for the secrets' repository.
	SetToken(v string)
	// GetSecrets retrieves secrets from the specified path.
	GetSecrets(ctx context.Context, path string) (*api.Secret, error)
	// WriteWithContext writes data to the specified path.
	WriteWithContext(ctx context.Context, path string, data map[string]any) (*api.Secret, error)
}
