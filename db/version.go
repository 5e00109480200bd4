package db

import (
	"fmt"
	"regexp"
	"strconv"
)

// Oldest major version with pg_proc.prokind.
const minServerMajorVersion = 11

var regexVersion = regexp.MustCompile(`^\s*(\d+)(?:\.(\d+))?`)

// parseSemver reads the major and minor numbers from a server_version string.
// Anything after them (patch level, distribution details) is ignored.
func parseSemver(raw string) (int, int, error) {
	m := regexVersion.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, fmt.Errorf("unable to parse server version `%s`", raw)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, err
	}

	minor := 0
	if m[2] != "" {
		minor, err = strconv.Atoi(m[2])
		if err != nil {
			return 0, 0, err
		}
	}

	return major, minor, nil
}

func checkServerVersion(serverVersion string) error {
	major, _, err := parseSemver(serverVersion)
	if err != nil {
		return err
	}
	if major < minServerMajorVersion {
		return fmt.Errorf("unsupported server version %s, requires %d or newer", serverVersion, minServerMajorVersion)
	}
	return nil
}
