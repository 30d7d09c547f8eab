// Package config loads environment-driven configuration structs.
//
// Each package in this repository declares its own Config struct with `env`
// tags; the service entrypoint loads them all through config.Load. A local
// .env file is picked up automatically in development.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
package config
