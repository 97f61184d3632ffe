package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/architeacher/users/services/svc-users/internal/ports"
	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/vault/api"
	"github.com/kelseyhightower/envconfig"
)

const (
	secretPostgresPassword = "POSTGRES_PASSWORD"
	secretCachePassword    = "CACHE_PASSWORD"
)

type Loader struct {
	secretsRepo ports.SecretsRepository
	backoff     func() backoff.BackOff
}

func Init() (*ServiceConfig, error) {
	cfg := &ServiceConfig{}

	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service configuration: %w", err)
	}

	if len(ServiceVersion) != 0 {
		cfg.App.ServiceVersion = ServiceVersion
	}

	if len(CommitSHA) != 0 {
		cfg.App.CommitSHA = CommitSHA
	}

	return cfg, nil
}

func NewLoader(secretsRepo ports.SecretsRepository, retry Backoff) *Loader {
	return &Loader{
		secretsRepo: secretsRepo,
		backoff: func() backoff.BackOff {
			expBackoff := backoff.NewExponentialBackOff()
			expBackoff.InitialInterval = retry.BaseDelay
			expBackoff.Multiplier = retry.Multiplier
			expBackoff.RandomizationFactor = retry.Jitter
			expBackoff.MaxInterval = retry.MaxDelay

			return expBackoff
		},
	}
}

// Load authenticates against the secrets storage, overlays the stored secrets
// on cfg and returns the secret version that was applied.
func (l *Loader) Load(ctx context.Context, cfg *ServiceConfig) (uint, error) {
	if !cfg.SecretsStorage.Enabled {
		return 0, fmt.Errorf("secret storage is not enabled")
	}

	if err := l.authenticate(ctx, cfg.SecretsStorage); err != nil {
		return 0, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	secret, err := l.readWithRetry(ctx, cfg.SecretsStorage)
	if err != nil {
		return 0, fmt.Errorf("failed to load secrets from Vault: %w", err)
	}

	if secret == nil || secret.Data == nil {
		return 0, nil
	}

	data, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return 0, fmt.Errorf("invalid secret format at path %s, missing 'data' key", secretPath(cfg.SecretsStorage))
	}

	applySecrets(cfg, data)

	metadata, _ := secret.Data["metadata"].(map[string]any)

	version, err := secretVersion(metadata)
	if err != nil {
		return 0, fmt.Errorf("failed to get secret version: %w", err)
	}

	return version, nil
}

// DumpConfig writes the configuration as indented JSON. Credentials are
// excluded by their struct tags.
func DumpConfig(w io.Writer, cfg *ServiceConfig) error {
	configJSON, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n", configJSON)

	return err
}

func (l *Loader) authenticate(ctx context.Context, storage SecretsStorage) error {
	switch strings.ToLower(storage.AuthMethod) {
	case "token":
		if storage.Token == "" {
			return fmt.Errorf("token is required for token auth method")
		}

		l.secretsRepo.SetToken(storage.Token)

		return nil

	case "approle":
		if storage.RoleID == "" || storage.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for approle auth method")
		}

		resp, err := l.secretsRepo.WriteWithContext(ctx, "auth/approle/login", map[string]any{
			"role_id":   storage.RoleID,
			"secret_id": storage.SecretID,
		})
		if err != nil {
			return fmt.Errorf("failed to authenticate via approle: %w", err)
		}

		if resp == nil || resp.Auth == nil {
			return fmt.Errorf("no auth info returned from Vault")
		}

		l.secretsRepo.SetToken(resp.Auth.ClientToken)

		return nil

	default:
		return fmt.Errorf("unsupported auth method: %s", storage.AuthMethod)
	}
}

func (l *Loader) readWithRetry(ctx context.Context, storage SecretsStorage) (*api.Secret, error) {
	path := secretPath(storage)

	ctx, cancel := context.WithTimeout(ctx, storage.Timeout)
	defer cancel()

	secret, err := backoff.Retry(
		ctx,
		func() (*api.Secret, error) {
			return l.secretsRepo.GetSecrets(ctx, path)
		},
		backoff.WithMaxTries(storage.MaxRetries+1),
		backoff.WithBackOff(l.backoff()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read from path %s after %d retries: %w", path, storage.MaxRetries, err)
	}

	return secret, nil
}

func secretPath(storage SecretsStorage) string {
	return fmt.Sprintf("apps/data/%s", storage.MountPath)
}

func applySecrets(cfg *ServiceConfig, data map[string]any) {
	for key, value := range data {
		strValue, ok := value.(string)
		if !ok || strValue == "" {
			continue
		}

		switch key {
		case secretPostgresPassword:
			cfg.Database.Password = strValue
		case secretCachePassword:
			cfg.Cache.Password = strValue
		}
	}
}

func secretVersion(metadata map[string]any) (uint, error) {
	if metadata == nil {
		return 0, nil
	}

	version, ok := metadata["version"]
	if !ok {
		return 0, nil
	}

	switch v := version.(type) {
	case float64:
		return uint(v), nil
	case int:
		return uint(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("failed to parse version: %w", err)
		}

		return uint(n), nil
	default:
		return 0, fmt.Errorf("unexpected version type: %T", version)
	}
}
