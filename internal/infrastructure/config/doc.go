// Package config handles loading and validating glsqlite configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// The configuration is the on-disk form of a driver.Configuration; the
// command layer converts it and attaches schema callbacks.
//
// Usage:
//
//	cfg, err := config.Load("configs/glsqlite.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Name)
package config
