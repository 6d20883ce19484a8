package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Narrative configures the prose generation step. The API key itself never
// lives in the config file; only the name of the environment variable does.
type Narrative struct {
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	APIKeyEnv      string `mapstructure:"api_key_env"`
}

func (n Narrative) Timeout() time.Duration {
	return time.Duration(n.TimeoutSeconds) * time.Second
}

type Config struct {
	DataDir     string    `mapstructure:"data_dir"`
	ArchivePath string    `mapstructure:"archive_path"`
	Narrative   Narrative `mapstructure:"narrative"`
}

// Load reads the application config from the given YAML file, falling back
// to defaults for anything the file leaves out. An empty path loads the
// defaults alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "./data")
	v.SetDefault("archive_path", "merchant-lens.db")
	v.SetDefault("narrative.model", "gemini-2.0-flash")
	v.SetDefault("narrative.timeout_seconds", 30)
	v.SetDefault("narrative.api_key_env", "GEMINI_API_KEY")
}
