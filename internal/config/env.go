package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

// Env holds process configuration, parsed once at startup.
type Env struct {
	AppAddr     string   `env:"APP_ADDR" envDefault:":8080"`
	GinMode     string   `env:"GIN_MODE"`
	DBDSN       string   `env:"DB_DSN" envDefault:"root:@tcp(127.0.0.1:3306)/ride_app?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"`
	JWTSecret   string   `env:"JWT_SECRET" envDefault:"super-secret-key-change-me"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`
	GeoBaseURL  string   `env:"GEO_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
}

func LoadEnv() Env {
	cfg, err := env.ParseAs[Env]()
	if err != nil {
		log.Fatalf("failed to parse environment: %v", err)
	}
	return cfg
}
