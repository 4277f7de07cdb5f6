package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration, loaded from environment
// variables with sensible defaults.
type Config struct {
	Server ServerConfig
	Data   DataConfig
}

type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DataConfig struct {
	// Path to the trip CSV loaded at startup.
	Path string
	// Column names for the edge endpoints and the optional weight.
	SourceColumn string
	TargetColumn string
	WeightColumn string
	// MaxRows caps how many data rows are ingested.
	MaxRows int
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")

	v.SetDefault("DATA_PATH", "data/Databike.csv")
	v.SetDefault("DATA_SOURCE_COLUMN", "departure_id")
	v.SetDefault("DATA_TARGET_COLUMN", "return_id")
	v.SetDefault("DATA_WEIGHT_COLUMN", "")
	v.SetDefault("DATA_MAX_ROWS", 1000)

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Address:      v.GetString("SERVER_ADDRESS"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Data: DataConfig{
			Path:         v.GetString("DATA_PATH"),
			SourceColumn: v.GetString("DATA_SOURCE_COLUMN"),
			TargetColumn: v.GetString("DATA_TARGET_COLUMN"),
			WeightColumn: v.GetString("DATA_WEIGHT_COLUMN"),
			MaxRows:      v.GetInt("DATA_MAX_ROWS"),
		},
	}

	return cfg, nil
}
