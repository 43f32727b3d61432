package config

type Config struct {
	Environment   string
	Port          string
	DatabaseURL   string
	RedisURL      string
	DefaultLocale string
	MessagesDir   string
	RateLimit     string
	CORSOrigins   []string
}

// reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
