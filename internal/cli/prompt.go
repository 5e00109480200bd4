package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	schemadiff "github.com/perangel/schema-diff"
)

var errMissingTargets = errors.New("both databases are required, set `--db-a` and `--db-b` or DATABASE_A_URL and DATABASE_B_URL")

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveTargets fills in missing connection targets, prompting for them when
// stdin is a terminal.
func resolveTargets(config *schemadiff.Config, in *os.File, out io.Writer) error {
	if config.DatabaseA != "" && config.DatabaseB != "" {
		return nil
	}
	if !isTerminal(in) {
		return errMissingTargets
	}
	return promptTargets(config, in, out)
}

func promptTargets(config *schemadiff.Config, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)

	for _, t := range []struct {
		label  string
		target *string
	}{
		{config.LabelA, &config.DatabaseA},
		{config.LabelB, &config.DatabaseB},
	} {
		if *t.target != "" {
			continue
		}

		fmt.Fprintf(out, "Connection target for %s: ", t.label)
		line, err := r.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("unable to read connection target: %w", err)
			}
			return errMissingTargets
		}
		*t.target = line
	}

	return nil
}
