package bootstrap

import (
	"fmt"
	"os"

	"github.com/go-authgate/tokenguard/internal/config"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return validateFilesExist(cfg)
}

// validateFilesExist checks that configured key and seed files are readable
// before any connection is opened.
func validateFilesExist(cfg *config.Config) error {
	files := map[string]string{
		"JWT_PUBLIC_KEY_FILE": cfg.JWTPublicKeyFile,
		"SEED_FILE":           cfg.SeedFile,
	}
	for name, path := range files {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s: %v", config.ErrInvalidConfig, name, err)
		}
	}
	return nil
}
