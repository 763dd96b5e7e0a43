package main

import (
	"fmt"
	"os"

	"fjacquet/boleto-cnab/cmd/boleto"
	"fjacquet/boleto-cnab/cmd/remessa"
	"fjacquet/boleto-cnab/cmd/root"
	"fjacquet/boleto-cnab/cmd/validate"
	"fjacquet/boleto-cnab/internal/config"
)

func init() {
	// 1. Load .env before viper reads BOLETO_* variables
	if envFile, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading %s: %v\n", envFile, err)
	}

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(boleto.Cmd)
	root.Cmd.AddCommand(remessa.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
