// Package config implements the functions, types, and interfaces for the module.
package config

// Global constants for the application.
const (
	Application = "wrapgen"
	Description = "Generate ownership-aware cgo wrappers from bindgen declarations"
	WebSite     = "https://github.com/origadmin/wrapgen"
	UI          = "wrapgen"
)

// DefaultFile is the configuration file looked up next to the corpus.
const DefaultFile = "wrapgen.toml"

// Data models accepted by target.data_model.
const (
	LP64  = "LP64"
	LLP64 = "LLP64"
	ILP32 = "ILP32"
)
