package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Convert
		Library
		Watch
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Convert struct {
		OutputDir      string
		StylePath      string // Path to the style config file
		Format         string // markdown, html or pdf
		Workers        int    // Parallel file workers; 1 = sequential
		MaxFieldLength int
		QuoteMode      string // "ascii" or "unicode"
		ChromePath     string // Chrome executable for pdf output
	}
	Library struct {
		Path string
	}
	Watch struct {
		InputDir string
		Schedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("style_path", DefaultStylePath)
	v.SetDefault("output_format", "markdown")
	v.SetDefault("convert_workers", 1)
	v.SetDefault("max_field_length", 10000)
	v.SetDefault("quote_mode", "unicode")
	v.SetDefault("chrome_path", "")
	v.SetDefault("library_path", "")
	v.SetDefault("watch_input_dir", "")
	v.SetDefault("watch_schedule", "*/15 * * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Convert: Convert{
			OutputDir:      v.GetString("OUTPUT_DIR"),
			StylePath:      v.GetString("STYLE_PATH"),
			Format:         v.GetString("OUTPUT_FORMAT"),
			Workers:        v.GetInt("CONVERT_WORKERS"),
			MaxFieldLength: v.GetInt("MAX_FIELD_LENGTH"),
			QuoteMode:      v.GetString("QUOTE_MODE"),
			ChromePath:     v.GetString("CHROME_PATH"),
		},
		Library: Library{
			Path: v.GetString("LIBRARY_PATH"),
		},
		Watch: Watch{
			InputDir: v.GetString("WATCH_INPUT_DIR"),
			Schedule: v.GetString("WATCH_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
