// Package config provides the parcelgw configuration model, YAML loading
// with ${VAR:-default} substitution, environment overrides and validation.
//
// Load, override and validate once at startup:
//
//	loader := config.NewLoader()
//	cfg, err := loader.Load("configs/parcelgw.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := loader.ApplyEnvOverrides(cfg); err != nil {
//	    log.Fatal(err)
//	}
//	if err := config.ValidateConfig(cfg); err != nil {
//	    log.Fatal(err)
//	}
package config
