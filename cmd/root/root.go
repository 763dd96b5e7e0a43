// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/boleto-cnab/internal/config"
	"fjacquet/boleto-cnab/internal/container"
	"fjacquet/boleto-cnab/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input     string
	Output    string
	Sender    string
	BankCode  string
	Config    string
	LogLevel  string
	LogFormat string
}

var (
	// SharedFlags holds the persistent flags of every command
	SharedFlags = CommonFlags{}

	appContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "boleto-cnab",
		Short: "A CLI tool to encode boleto barcodes and CNAB 240/400 remittance files.",
		Long: `boleto-cnab encodes Brazilian boleto barcodes and "linhas digitáveis",
and writes CNAB 240 or CNAB 400 collection remittance files from title batches.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(SharedFlags.Config)
			if err != nil {
				return err
			}
			ApplyFlags(cfg, SharedFlags)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			c, err := container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			appContainer = c
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appContainer == nil {
				return nil
			}
			return appContainer.Close()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input title batch (.csv, .yaml) or a directory of them")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Sender, "sender", "s", "", "Sender (beneficiary) YAML file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.BankCode, "bank", "b", "", "3-digit bank code (overrides bank.code)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Config, "config", "", "Config file (default searches config.yaml)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (overrides log.level)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format: text or json (overrides log.format)")
}

// ApplyFlags lets explicit command-line flags win over the loaded configuration.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	if flags.BankCode != "" {
		cfg.Bank.Code = flags.BankCode
	}
}

// GetContainer returns the container built before the running command.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the container, for commands run from tests.
func SetContainer(c *container.Container) {
	appContainer = c
}

// GetLogger returns the application logger.
func GetLogger() logging.Logger {
	if appContainer == nil {
		return logging.NewLogrusAdapter("info", logging.FormatText)
	}
	return appContainer.GetLogger()
}
