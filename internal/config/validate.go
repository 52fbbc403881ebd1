package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be positive (got %v)", c.Auth.AccessTokenTTL)
	}

	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Document.MaxVersionRetries < 1 {
		return fmt.Errorf("document.max_version_retries must be at least 1 (got %d)", c.Document.MaxVersionRetries)
	}

	if c.Document.ListDefaultLimit < 1 || c.Document.ListMaxLimit < c.Document.ListDefaultLimit {
		return fmt.Errorf("document list limits invalid: default=%d max=%d",
			c.Document.ListDefaultLimit, c.Document.ListMaxLimit)
	}

	return nil
}
