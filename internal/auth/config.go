package auth

import (
	"fmt"
	"time"

	"staff-backoffice-backend/internal/config"

	"github.com/spf13/viper"
)

// AuthConfig holds all authentication configuration for the application
type AuthConfig struct {
	JWTSecret            string
	Issuer               string
	Audience             string
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration
	BcryptCost           int
}

// PolicyConfig is one policy entry of the optional policy file
type PolicyConfig struct {
	Name        string   `mapstructure:"name"`
	Permissions []string `mapstructure:"permissions"`
	Roles       []string `mapstructure:"roles"`
}

// NewAuthConfig derives the authentication settings from the application config
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret:            cfg.JWTSecret,
		Issuer:               cfg.JWTIssuer,
		Audience:             cfg.JWTAudience,
		AccessTokenLifetime:  time.Duration(cfg.AccessTokenMinutes) * time.Minute,
		RefreshTokenLifetime: time.Duration(cfg.RefreshTokenDays) * 24 * time.Hour,
		BcryptCost:           cfg.BcryptCost,
	}
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Issuer == "" {
		return fmt.Errorf("JWT issuer is required")
	}

	if c.Audience == "" {
		return fmt.Errorf("JWT audience is required")
	}

	if c.AccessTokenLifetime <= 0 {
		return fmt.Errorf("access token lifetime must be positive")
	}

	if c.RefreshTokenLifetime <= 0 {
		return fmt.Errorf("refresh token lifetime must be positive")
	}

	return nil
}

// LoadPolicies reads extra or overriding policies from a YAML file.
// A missing file is not an error and yields no policies.
func LoadPolicies(configPath string) ([]Policy, error) {
	// Create a new viper instance for the policy file
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("policies")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading policy file: %w", err)
	}

	var entries []PolicyConfig
	if err := v.UnmarshalKey("policies", &entries); err != nil {
		return nil, fmt.Errorf("error unmarshaling policy file: %w", err)
	}

	policies := make([]Policy, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("policy without a name in %s", v.ConfigFileUsed())
		}
		policy := Policy{Name: entry.Name}
		for _, code := range entry.Permissions {
			policy.Requirements = append(policy.Requirements, PermissionRequirement{Code: code})
		}
		if len(entry.Roles) > 0 {
			policy.Requirements = append(policy.Requirements, RoleRequirement{AnyOf: entry.Roles})
		}
		policies = append(policies, policy)
	}
	return policies, nil
}
