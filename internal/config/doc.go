// Package config provides configuration management for the greeter service.
//
// Configuration is loaded from environment variables using the env package,
// after an optional .env file in the working directory. Command-line flags
// override the environment for the bind address, gRPC port and log level.
//
// Example usage:
//
//	cfg, err := config.Load(os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.HTTPAddr())
package config
