package storage

import (
	"certportal/internal/config"
	"fmt"
	"net/url"
)

func GetConnectionStringFromConfig(cfg *config.Config) string {
	return connectionURL("postgres", cfg)
}

// GetMigrationURLFromConfig builds the pgx5:// URL golang-migrate expects.
func GetMigrationURLFromConfig(cfg *config.Config) string {
	return connectionURL("pgx5", cfg)
}

func connectionURL(scheme string, cfg *config.Config) string {
	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", cfg.Storage.Host, cfg.Storage.Port),
		Path:   "/" + cfg.Storage.Database,
	}

	if cfg.Storage.Username != "" {
		u.User = url.UserPassword(cfg.Storage.Username, cfg.Storage.Password)
	}

	if cfg.Storage.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{cfg.Storage.SSLMode}}.Encode()
	}

	return u.String()
}
