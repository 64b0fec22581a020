package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable for the
// current environment. Production refuses to start with the development JWT
// secret or an incomplete postgres configuration.
func ValidateConfig(cfg *Config) error {
	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			return ValidationError{Field: "DB_PATH", Message: "required when DB_DRIVER is sqlite"}
		}
	case "postgres":
		if cfg.DBHost == "" {
			return ValidationError{Field: "DB_HOST", Message: "required when DB_DRIVER is postgres"}
		}
		if cfg.DBName == "" {
			return ValidationError{Field: "DB_NAME", Message: "required when DB_DRIVER is postgres"}
		}
		if cfg.DBUser == "" {
			return ValidationError{Field: "DB_USER", Message: "required when DB_DRIVER is postgres"}
		}
	default:
		return ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)}
	}

	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}
	}

	if IsProduction() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == "dev-secret-key-change-in-production" {
			return ValidationError{Field: "JWT_SECRET", Message: "a real secret is required in production"}
		}
	}

	return nil
}
