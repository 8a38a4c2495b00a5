package config

// Default paths
const (
	// DefaultOutputDir is where converted documents land unless overridden
	DefaultOutputDir = "./output"

	// DefaultStylePath is checked for a style config; missing means defaults
	DefaultStylePath = "./style.yaml"
)
