// Package config provides centralized configuration management for the
// dashboard server.
//
// # Configuration Sources
//
// Configuration is layered. Each source overrides the one before it:
//
//	1. Default values (Default)
//	2. YAML configuration file
//	3. Environment variables (highest priority)
//
// The file is taken from TPD_CONFIG_FILE, or else the first of config.yaml,
// configs/config.yaml and ../configs/config.yaml that exists.
//
// # Environment Variables
//
// All environment variables follow the pattern TPD_<SECTION>_<FIELD>:
//
//	TPD_SERVER_PORT=8050
//	TPD_DATASET_FILE=data/dataset_prepared.csv
//	TPD_LOGGING_LEVEL=debug
//	TPD_TELEMETRY_TRACING_EXPORTER=stdout
//	TPD_SECURITY_ALLOWED_ORIGINS=http://localhost:3000,http://localhost:8050
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := &http.Server{Addr: cfg.Server.Addr()}
package config
