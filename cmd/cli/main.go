package main

import (
	"context"
	"fmt"
	"os"

	"github.com/FloresJesus/Pharmacy/pkg/runtime/bootstrap"
	"github.com/FloresJesus/Pharmacy/pkg/runtime/terminal"
	"github.com/FloresJesus/Pharmacy/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.LoadConfig(os.Getenv("PHARMACY_CONFIG"))
	if err != nil {
		return err
	}

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	cli := terminal.NewCLI(terminal.Options{
		Reports:  app.Reports,
		Receipts: app.Receipts,
		Location: app.Location,
		Output:   os.Stdout,
	})
	return cli.Execute(ctx)
}
