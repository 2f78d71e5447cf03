// Package config loads and validates the oneday-server application
// configuration.
//
// Configuration is assembled from up to four sources — environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults — merged in that priority order (the first source to set a field
// wins). The main entry point is [GetStructuredConfig].
package config
