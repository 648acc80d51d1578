package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TRAVELGRID_REMOTE_URL.
const EnvPrefix = "TRAVELGRID"

var envRefRe = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults replaces ${VAR} and ${VAR:-default} with the
// environment value, or the default when VAR is unset or empty.
func expandEnvWithDefaults(s string) string {
	return envRefRe.ReplaceAllStringFunc(s, func(match string) string {
		matches := envRefRe.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}
		if value := os.Getenv(matches[1]); value != "" {
			return value
		}
		return defaultValue
	})
}

// InitConfig builds a C from defaults, the optional config file and
// EnvPrefix_* environment variables, in increasing priority.
// An empty configFile skips the file.
func InitConfig[C any](configFile string, defaults map[string]any) (*C, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		ext := strings.TrimLeft(filepath.Ext(configFile), ".")
		v.SetConfigFile(configFile)
		v.SetConfigType(ext)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if !strings.Contains(value, "${") {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}
	return cfg, nil
}

// Load reads the application config.
func Load(configFile string) (*Config, error) {
	cfg, err := InitConfig[Config](configFile, Defaults())
	if err != nil {
		return nil, err
	}
	cfg.Remote.URL = strings.TrimSpace(cfg.Remote.URL)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no backend can run with.
func (c *Config) Validate() error {
	switch c.Local.Driver {
	case "file", "badger", "redis":
	default:
		return fmt.Errorf("local.driver: unknown driver %q (want file, badger or redis)", c.Local.Driver)
	}
	if c.Local.Namespace == "" {
		return fmt.Errorf("local.namespace: must not be empty")
	}
	if c.Remote.TimeoutSeconds < 0 {
		return fmt.Errorf("remote.timeout_seconds: must not be negative")
	}
	return nil
}
