package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/perangel/schema-diff/internal/render"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ErrDifferencesFound is returned when `--exit-code` is set and the schemas differ.
var ErrDifferencesFound = errors.New("schemas differ")

// Flags
var (
	dbA             string
	dbB             string
	labelA          string
	labelB          string
	schema          string
	format          string
	output          string
	ignoreTables    []string
	whitelistTables []string
	strict          bool
	exitCode        bool
	envFile         string
	logLevel        string
)

func init() {
	SchemaDiffCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "L", "", "log level")
	SchemaDiffCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading the environment (default .env, if present)")
	SchemaDiffCmd.PersistentFlags().StringVarP(&dbA, "db-a", "a", "", "connection target of the first database (URL or DSN)")
	SchemaDiffCmd.PersistentFlags().StringVarP(&dbB, "db-b", "b", "", "connection target of the second database (URL or DSN)")
	SchemaDiffCmd.PersistentFlags().StringVar(&labelA, "label-a", "", "label of the first database")
	SchemaDiffCmd.PersistentFlags().StringVar(&labelB, "label-b", "", "label of the second database")
	SchemaDiffCmd.PersistentFlags().StringVarP(&schema, "schema", "S", "", "schema to compare (default public)")
	SchemaDiffCmd.PersistentFlags().StringSliceVarP(&ignoreTables, "ignore-tables", "i", nil, "tables to leave out of the comparison")
	SchemaDiffCmd.PersistentFlags().StringSliceVarP(&whitelistTables, "whitelist-tables", "w", nil, "tables to restrict the comparison to")
	SchemaDiffCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on duplicate identity keys")
	SchemaDiffCmd.Flags().StringVarP(&format, "format", "f", "", "report format: terminal, html or json (default terminal)")
	SchemaDiffCmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	SchemaDiffCmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with status 1 when the schemas differ")
	SchemaDiffCmd.Flags().SortFlags = false

	SchemaDiffCmd.AddCommand(serveCmd)
}

// SchemaDiffCmd is the root command.
var SchemaDiffCmd = &cobra.Command{
	Use:   "schema-diff",
	Short: "Compare the schemas of two Postgres databases",
	Long: `Compare the schemas of two Postgres databases.

Tables, columns, indexes, foreign keys, enums, row level security policies,
functions and triggers of one schema are captured from both databases and
every difference is reported.

Connection targets are read from --db-a/--db-b, DATABASE_A_URL/DATABASE_B_URL
or, when stdin is a terminal, prompted for.
	`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := parseConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(config, &log.TextFormatter{})
		if err != nil {
			return err
		}

		if err := resolveTargets(config, os.Stdin, cmd.ErrOrStderr()); err != nil {
			return err
		}

		renderer, err := render.ForFormat(config.Format)
		if err != nil {
			return err
		}

		a, b, err := openSources(config, logger)
		if err != nil {
			return err
		}
		defer a.Close()
		defer b.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		report, err := newComparer(config, logger).Compare(ctx, a, b, config.LabelA, config.LabelB)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if config.Output != "" {
			f, err := os.Create(config.Output)
			if err != nil {
				return fmt.Errorf("unable to create report file: %w", err)
			}
			defer f.Close()
			out = f
			if t, ok := renderer.(*render.Terminal); ok {
				t.NoColor = true
			}
		}

		if err := renderer.Render(out, report); err != nil {
			return fmt.Errorf("unable to render report: %w", err)
		}

		if exitCode && report.Stats.HasDifferences() {
			return ErrDifferencesFound
		}
		return nil
	},
}
