// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Load returns a value; nothing in this package holds process-wide state,
// so tests can construct and vary configurations freely.
package config
