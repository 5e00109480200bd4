package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	schemadiff "github.com/perangel/schema-diff"
	"github.com/perangel/schema-diff/db"
	"github.com/sirupsen/logrus"
)

const defaultEnvFile = ".env"

func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		path = defaultEnvFile
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("unable to load env file `%s`: %w", path, err)
	}
	return nil
}

func parseConfig() (*schemadiff.Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	config, err := schemadiff.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}

	if dbA != "" {
		config.DatabaseA = dbA
	}

	if dbB != "" {
		config.DatabaseB = dbB
	}

	if labelA != "" {
		config.LabelA = labelA
	}

	if labelB != "" {
		config.LabelB = labelB
	}

	if schema != "" {
		config.Schema = schema
	}

	if format != "" {
		config.Format = format
	}

	if output != "" {
		config.Output = output
	}

	if whitelistTables != nil {
		config.WhitelistTables = whitelistTables
	}

	if ignoreTables != nil {
		config.IgnoreTables = ignoreTables
	}

	if strict {
		config.Strict = true
	}

	if logLevel != "" {
		config.LogLevel = logLevel
	}

	return config, err
}

func newLogger(config *schemadiff.Config, formatter logrus.Formatter) (*logrus.Logger, error) {
	lvl, err := schemadiff.ParseLogLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetFormatter(formatter)
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	return logger, nil
}

func newComparer(config *schemadiff.Config, logger *logrus.Logger) *schemadiff.Comparer {
	opts := append(config.ComparerOptions(), schemadiff.WithLogger(logger))
	return schemadiff.NewComparer(opts...)
}

func openSources(config *schemadiff.Config, logger *logrus.Logger) (*db.Source, *db.Source, error) {
	a, err := db.Open(config.DatabaseA, db.Schema(config.Schema), db.WithLogger(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("database `%s`: %w", config.LabelA, err)
	}

	b, err := db.Open(config.DatabaseB, db.Schema(config.Schema), db.WithLogger(logger))
	if err != nil {
		_ = a.Close()
		return nil, nil, fmt.Errorf("database `%s`: %w", config.LabelB, err)
	}

	logger.WithFields(logrus.Fields{
		"database_a": a.Name(),
		"database_b": b.Name(),
	}).Debug("opened databases")

	return a, b, nil
}
