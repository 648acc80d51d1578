package config

// ConfigRemote settings of the remote JSON document store.
// An empty URL selects the local backend.
type ConfigRemote struct {
	URL            string  `mapstructure:"url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// ConfigLocal settings of the local fallback store.
type ConfigLocal struct {
	Driver    string `mapstructure:"driver"` // file | badger | redis
	Dir       string `mapstructure:"dir"`
	Namespace string `mapstructure:"namespace"`
	RedisAddr string `mapstructure:"redis_addr"`
}

// ConfigLogger logging settings
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigUI terminal output settings
type ConfigUI struct {
	Theme   string `mapstructure:"theme"`
	NoColor bool   `mapstructure:"no_color"`
}

// Config is the whole application configuration.
type Config struct {
	Remote ConfigRemote `mapstructure:"remote"`
	Local  ConfigLocal  `mapstructure:"local"`
	Logger ConfigLogger `mapstructure:"logger"`
	UI     ConfigUI     `mapstructure:"ui"`
}

// UsesRemote reports whether a remote store is configured.
func (c *Config) UsesRemote() bool {
	return c.Remote.URL != ""
}

// Defaults are applied before the config file and the environment.
func Defaults() map[string]any {
	return map[string]any{
		"remote.url":              "",
		"remote.timeout_seconds":  10,
		"remote.rate_limit_rps":   0,
		"remote.rate_limit_burst": 5,
		"local.driver":            "file",
		"local.dir":               ".travelgrid",
		"local.namespace":         "tg_items",
		"local.redis_addr":        "localhost:6379",
		"logger.level":            "info",
		"ui.theme":                "classic",
		"ui.no_color":             false,
	}
}
