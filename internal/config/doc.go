// Package config loads server, database and auth settings from an optional
// .env file, an optional config.yaml and TASKS_-prefixed environment
// variables, then validates them before anything else starts.
package config
