package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	schemadiff "github.com/perangel/schema-diff"
	"github.com/perangel/schema-diff/db"
	"github.com/perangel/schema-diff/internal/function"
	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
)

func init() {
	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
}

func main() {
	config, err := schemadiff.NewConfigFromEnv()
	if err != nil {
		logger.WithError(err).Fatal("failed to process environment config")
	}

	lvl, err := schemadiff.ParseLogLevel(config.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("invalid log level")
	}
	logger.SetLevel(lvl)

	a, err := db.Open(config.DatabaseA, db.Schema(config.Schema), db.WithLogger(logger))
	if err != nil {
		logger.WithError(err).Fatalf("unable to open database `%s`", config.LabelA)
	}
	defer a.Close()

	b, err := db.Open(config.DatabaseB, db.Schema(config.Schema), db.WithLogger(logger))
	if err != nil {
		logger.WithError(err).Fatalf("unable to open database `%s`", config.LabelB)
	}
	defer b.Close()

	comparer := schemadiff.NewComparer(append(config.ComparerOptions(), schemadiff.WithLogger(logger))...)
	handler := function.NewHandler(comparer, a, b, config.LabelA, config.LabelB, logger)

	lambda.Start(handler.Handle)
}
