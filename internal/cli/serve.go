package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/perangel/schema-diff/internal/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Flags
var (
	httpAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve comparisons over HTTP",
	Long: `Serve comparisons of the two configured databases over HTTP.

Endpoints:
  GET /healthz
  GET /api/compare?format=json|html|terminal&labelA=&labelB=
  GET /metrics
	`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := parseConfig()
		if err != nil {
			return err
		}

		if httpAddr != "" {
			config.HTTPAddr = httpAddr
		}

		logger, err := newLogger(config, &log.JSONFormatter{})
		if err != nil {
			return err
		}

		if config.DatabaseA == "" || config.DatabaseB == "" {
			return errMissingTargets
		}

		a, b, err := openSources(config, logger)
		if err != nil {
			return err
		}
		defer a.Close()
		defer b.Close()

		srv := server.New(
			newComparer(config, logger),
			a,
			b,
			server.Labels(config.LabelA, config.LabelB),
			server.WithLogger(logger),
		)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return srv.ListenAndServe(ctx, config.HTTPAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "http-addr", "", "listen address (default :8080)")
}
