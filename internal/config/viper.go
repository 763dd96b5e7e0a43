// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/boleto-cnab/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the application,
// e.g. BOLETO_CNAB_LAYOUT for cnab.layout.
const EnvPrefix = "BOLETO"

// Supported values of cnab.layout and cnab.charset.
var (
	SupportedLayouts  = []string{"240", "400"}
	SupportedCharsets = []string{"iso-8859-1", "windows-1252", "ascii"}
)

// Config represents the complete application configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Bank    BankConfig    `mapstructure:"bank" yaml:"bank"`
	CNAB    CNABConfig    `mapstructure:"cnab" yaml:"cnab"`
	Boleto  BoletoConfig  `mapstructure:"boleto" yaml:"boleto"`
	Charges ChargesConfig `mapstructure:"charges" yaml:"charges"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// BankConfig is the default bank when a command does not name one.
type BankConfig struct {
	Code string `mapstructure:"code" yaml:"code"`
	Name string `mapstructure:"name" yaml:"name"`
}

// CNABConfig drives remittance generation.
type CNABConfig struct {
	Layout       string `mapstructure:"layout" yaml:"layout"`
	Strict       bool   `mapstructure:"strict" yaml:"strict"`
	FileSequence int    `mapstructure:"file_sequence" yaml:"file_sequence"`
	Charset      string `mapstructure:"charset" yaml:"charset"`
}

// BoletoConfig drives barcode generation.
type BoletoConfig struct {
	CurrencyCode string `mapstructure:"currency_code" yaml:"currency_code"`
}

// ChargesConfig holds the late-payment percentages applied to every title.
type ChargesConfig struct {
	FinePercent     float64 `mapstructure:"fine_percent" yaml:"fine_percent"`
	InterestPercent float64 `mapstructure:"interest_percent" yaml:"interest_percent"` // monthly
}

// Load initializes Viper configuration with hierarchical loading: defaults,
// then the config file, then BOLETO_* environment variables. An empty
// configFile searches $HOME/.boleto-cnab, .boleto-cnab and the working
// directory for config.yaml; a missing file is not an error there, but an
// explicit configFile must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.boleto-cnab")
		v.AddConfigPath(".boleto-cnab")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("bank.code", "001")
	v.SetDefault("bank.name", "")

	v.SetDefault("cnab.layout", "400")
	v.SetDefault("cnab.strict", false)
	v.SetDefault("cnab.file_sequence", 1)
	v.SetDefault("cnab.charset", "iso-8859-1")

	v.SetDefault("boleto.currency_code", "9")

	v.SetDefault("charges.fine_percent", 2.0)
	v.SetDefault("charges.interest_percent", 1.0)
}

// Validate checks a configuration changed after Load, e.g. by command-line flags.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != logging.FormatText && config.Log.Format != logging.FormatJSON {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if !isDigits(config.Bank.Code, 3) {
		return fmt.Errorf("bank.code must be 3 digits, got: %s", config.Bank.Code)
	}

	if !contains(SupportedLayouts, config.CNAB.Layout) {
		return fmt.Errorf("cnab.layout must be one of %s, got: %s", strings.Join(SupportedLayouts, ", "), config.CNAB.Layout)
	}

	if config.CNAB.FileSequence < 1 || config.CNAB.FileSequence > 999999 {
		return fmt.Errorf("cnab.file_sequence must be between 1 and 999999, got: %d", config.CNAB.FileSequence)
	}

	if !contains(SupportedCharsets, strings.ToLower(config.CNAB.Charset)) {
		return fmt.Errorf("cnab.charset must be one of %s, got: %s", strings.Join(SupportedCharsets, ", "), config.CNAB.Charset)
	}

	if !isDigits(config.Boleto.CurrencyCode, 1) {
		return fmt.Errorf("boleto.currency_code must be 1 digit, got: %s", config.Boleto.CurrencyCode)
	}

	if config.Charges.FinePercent < 0 || config.Charges.FinePercent > 100 {
		return fmt.Errorf("charges.fine_percent must be between 0 and 100, got: %f", config.Charges.FinePercent)
	}

	if config.Charges.InterestPercent < 0 || config.Charges.InterestPercent > 100 {
		return fmt.Errorf("charges.interest_percent must be between 0 and 100, got: %f", config.Charges.InterestPercent)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}

func isDigits(value string, length int) bool {
	if len(value) != length {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
