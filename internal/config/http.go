package config

import "time"

type HTTP struct {
	BaseURL     string    `env:"BASE_URL,expand" envDefault:"/"`
	Address     string    `env:"ADDRESS,expand" envDefault:":8000"`
	FilesPath   string    `env:"FILES_PATH,expand" envDefault:"/api/files"`
	MetricsPath string    `env:"METRICS_PATH,expand" envDefault:"/metrics"`
	CORS        CORS      `envPrefix:"CORS_"`
	RateLimit   RateLimit `envPrefix:"RATE_LIMIT_"`
}

type CORS struct {
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS,expand" envDefault:"*" envSeparator:","`
	AllowCredentials bool     `env:"ALLOW_CREDENTIALS,expand" envDefault:"true"`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED,expand" envDefault:"false"`
	TrustHeaders bool          `env:"TRUST_HEADERS,expand" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL,expand" envDefault:"100ms"`
	MaxBurst     int           `env:"MAX_BURST,expand" envDefault:"20"`
	CacheSize    int           `env:"CACHE_SIZE,expand" envDefault:"1024"`
	CacheTTL     time.Duration `env:"CACHE_TTL,expand" envDefault:"10m"`
}
