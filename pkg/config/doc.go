// Package config loads typed configuration structs from environment
// variables using `env` struct tags, with optional .env bootstrap for local
// development.
//
//	type Config struct {
//		ProductionDomain string `env:"GATE_PRODUCTION_DOMAIN,required"`
//		CacheTTL         time.Duration `env:"GATE_TENANT_CACHE_TTL" envDefault:"5m"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Each package in this repository declares its own Config struct; main
// loads them all at startup so missing required variables fail the process
// before it accepts traffic.
package config
