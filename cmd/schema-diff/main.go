package main

import (
	"errors"
	"log"
	"os"

	"github.com/perangel/schema-diff/internal/cli"
)

func main() {
	if err := cli.SchemaDiffCmd.Execute(); err != nil {
		if errors.Is(err, cli.ErrDifferencesFound) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
