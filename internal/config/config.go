package config

import (
	"github.com/spf13/viper"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	// AI assistant
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Persistence
	DataDir string `mapstructure:"TERRANOVA_DATA_DIR"` // empty means the user config dir

	// Logging
	LogLevel string `mapstructure:"TERRANOVA_LOG_LEVEL"` // debug | info | warn | error

	// Plan detection
	TesseractLang string `mapstructure:"TERRANOVA_OCR_LANG"`

	// Baseline list price for newly traced lots, in whole currency units.
	DefaultLotPrice int64 `mapstructure:"TERRANOVA_DEFAULT_PRICE"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("TERRANOVA_LOG_LEVEL", "info")
	viper.SetDefault("TERRANOVA_OCR_LANG", "spa")
	viper.SetDefault("TERRANOVA_DEFAULT_PRICE", 150000)

	// optional .env for local development
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
