// Package container provides dependency injection for the boleto-cnab application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/boleto-cnab/internal/boleto"
	"fjacquet/boleto-cnab/internal/config"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/remittance"
	"fjacquet/boleto-cnab/internal/report"
	"fjacquet/boleto-cnab/internal/titleio"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	registry   *boleto.Registry
	generator  *boleto.Generator
	remittance *remittance.Service
	store      *titleio.Store
	reporter   *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies, with a logger
// built from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an injected logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	registry := boleto.NewDefaultRegistry()

	layout, err := remittance.ParseLayout(cfg.CNAB.Layout)
	if err != nil {
		return nil, fmt.Errorf("invalid cnab.layout: %w", err)
	}

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldBankCode, cfg.Bank.Code),
		logging.F(logging.FieldLayout, string(layout)),
		logging.F("free_field_layouts", len(registry.BankCodes())))

	return &Container{
		logger:     logger,
		config:     cfg,
		registry:   registry,
		generator:  boleto.NewGenerator(registry),
		remittance: remittance.NewService(logger),
		store:      titleio.NewStore(logger),
		reporter:   report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRegistry returns the free-field layouts per bank.
func (c *Container) GetRegistry() *boleto.Registry {
	return c.registry
}

// GetBoletoGenerator returns the boleto generator.
func (c *Container) GetBoletoGenerator() *boleto.Generator {
	return c.generator
}

// GetRemittanceService returns the remittance encoder service.
func (c *Container) GetRemittanceService() *remittance.Service {
	return c.remittance
}

// GetStore returns the batch file store.
func (c *Container) GetStore() *titleio.Store {
	return c.store
}

// GetReportGenerator returns the remittance summary generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// DefaultLayout returns the configured CNAB layout.
func (c *Container) DefaultLayout() remittance.Layout {
	// validated in NewContainerWithLogger
	layout, _ := remittance.ParseLayout(c.config.CNAB.Layout)
	return layout
}

// ChargeRates returns the configured fine and monthly interest percentages.
func (c *Container) ChargeRates() (fine, monthlyInterest decimal.Decimal) {
	return decimal.NewFromFloat(c.config.Charges.FinePercent),
		decimal.NewFromFloat(c.config.Charges.InterestPercent)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
