// Package config provides configuration management for metricsvc.
//
// Configuration is loaded from environment variables using the env package.
// All configuration values have defaults, so the service starts with no
// environment at all and listens on 0.0.0.0:3000.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.BindAddr)
package config
