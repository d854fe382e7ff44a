// Package config loads typed configuration from environment variables.
//
// Struct fields are bound with caarlos0/env tags; optional .env files are
// read with godotenv and only fill in variables missing from the
// environment.
//
//	type Config struct {
//	    Addr    string          `env:"REACTSSR_ADDR" envDefault:":8080"`
//	    Log     logger.Config
//	    Storage manifest.S3Config
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Tests pass an explicit environment instead of touching the process:
//
//	err := config.Load(&cfg, config.WithEnvironment(map[string]string{
//	    "REACTSSR_ADDR": ":9000",
//	}))
package config
