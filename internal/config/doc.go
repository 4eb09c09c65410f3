// Package config loads application settings from defaults, an optional
// config.yaml in the working directory, and FLASHCARDER_-prefixed environment
// variables, then validates them with struct tags.
package config
