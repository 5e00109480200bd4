package schemadiff_test

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	schemadiff "github.com/perangel/schema-diff"
	"github.com/stretchr/testify/assert"
)

var configKeys = []string{
	"DATABASE_A_URL", "DATABASE_B_URL", "LABEL_A", "LABEL_B", "SCHEMA", "FORMAT",
	"OUTPUT", "WHITELIST_TABLES", "IGNORE_TABLES", "STRICT", "LOG_LEVEL", "HTTP_ADDR",
}

func unsetConfigEnv() {
	for _, key := range configKeys {
		os.Unsetenv(key)
		os.Unsetenv("SD_" + key)
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("test defaults", func(t *testing.T) {
		unsetConfigEnv()

		config, err := schemadiff.NewConfigFromEnv()
		assert.NoError(t, err)
		assert.Equal(t, "A", config.LabelA)
		assert.Equal(t, "B", config.LabelB)
		assert.Equal(t, "public", config.Schema)
		assert.Equal(t, "terminal", config.Format)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, ":8080", config.HTTPAddr)
		assert.False(t, config.Strict)
		assert.Nil(t, config.IgnoreTables)
	})

	t.Run("test with namespace", func(t *testing.T) {
		os.Setenv("SD_DATABASE_A_URL", "postgres://app@staging:5432/app")
		os.Setenv("SD_DATABASE_B_URL", "host=production dbname=app")
		os.Setenv("SD_LABEL_A", "staging")
		os.Setenv("SD_IGNORE_TABLES", "posts,comments")
		os.Setenv("SD_WHITELIST_TABLES", "users,pets")
		os.Setenv("SD_STRICT", "true")
		os.Setenv("SD_LOG_LEVEL", "debug")
		defer unsetConfigEnv()

		config, err := schemadiff.NewConfigFromEnv()
		assert.NoError(t, err)
		assert.Equal(t, "postgres://app@staging:5432/app", config.DatabaseA)
		assert.Equal(t, "host=production dbname=app", config.DatabaseB)
		assert.Equal(t, "staging", config.LabelA)
		assert.Equal(t, "B", config.LabelB)
		assert.Equal(t, []string{"users", "pets"}, config.WhitelistTables)
		assert.Equal(t, []string{"posts", "comments"}, config.IgnoreTables)
		assert.True(t, config.Strict)
		assert.Equal(t, "debug", config.LogLevel)
	})

	t.Run("test with no namespace", func(t *testing.T) {
		os.Setenv("DATABASE_A_URL", "postgres://localhost/a")
		os.Setenv("FORMAT", "json")
		os.Setenv("SCHEMA", "billing")
		defer unsetConfigEnv()

		config, err := schemadiff.NewConfigFromEnv()
		assert.NoError(t, err)
		assert.Equal(t, "postgres://localhost/a", config.DatabaseA)
		assert.Equal(t, "json", config.Format)
		assert.Equal(t, "billing", config.Schema)
	})

	t.Run("test invalid value", func(t *testing.T) {
		os.Setenv("SD_STRICT", "maybe")
		defer unsetConfigEnv()

		_, err := schemadiff.NewConfigFromEnv()
		assert.Error(t, err)
	})
}

func TestConfigComparerOptions(t *testing.T) {
	config := &schemadiff.Config{IgnoreTables: []string{"audit_log"}}
	c := schemadiff.NewComparer(config.ComparerOptions()...)
	assert.Equal(t, []string{"ignore_tables"}, c.Pipeline().Stages())
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		level       string
		logrusLevel logrus.Level
		err         bool
	}{
		{
			level:       "debug",
			logrusLevel: logrus.DebugLevel,
			err:         false,
		},
		{
			level:       "info",
			logrusLevel: logrus.InfoLevel,
			err:         false,
		},
		{
			level:       "warn",
			logrusLevel: logrus.WarnLevel,
			err:         false,
		},
		{
			level:       "error",
			logrusLevel: logrus.ErrorLevel,
			err:         false,
		},
		{
			level:       "fatal",
			logrusLevel: logrus.FatalLevel,
			err:         false,
		},
		{
			level:       "invalid",
			logrusLevel: 0,
			err:         true,
		},
	}

	for _, tc := range testCases {
		lvl, err := schemadiff.ParseLogLevel(tc.level)
		assert.Equal(t, tc.logrusLevel, lvl)
		if tc.err {
			assert.Error(t, err)
		} else {
			assert.NoError(t, err)
		}
	}
}
