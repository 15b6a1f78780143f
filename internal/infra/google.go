package infra

import (
	"google.golang.org/api/option"

	"reout/pkg/config"
)

// GoogleClientOptions returns the credentials used for the Sheets ledger.
// Without an explicit file the client falls back to application default credentials.
func GoogleClientOptions(cfg config.Config) []option.ClientOption {
	if cfg.GoogleCredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(cfg.GoogleCredentialsFile)}
}
