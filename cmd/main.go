package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fxconvert/internal/app"
	"fxconvert/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// @title        fxconvert API
// @version      1.0
// @description  Currency conversion with live forex rates and a stored conversion history.
// @BasePath     /
func main() {
	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("fxconvert failed")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:           "fxconvert",
		Short:         "Currency conversion service backed by live forex rates",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appCfg, err := loadConfig()
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), appCfg, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.MigrateOnStart, "migrate", false, "apply pending postgres migrations before serving")
	return cmd
}

func loadConfig() (*config.AppConfig, error) {
	appCfg, err := config.Init()
	if err != nil {
		return nil, err
	}
	app.ConfigureLogger(appCfg.Logging.Level)
	logrus.Info("✅ Config initialization successful")
	return appCfg, nil
}
