package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	schemadiff "github.com/perangel/schema-diff"
	log "github.com/sirupsen/logrus"
)

var (
	errTransactionBegin = errors.New("error starting read only transaction")
)

// querier is implemented by *sqlx.DB and *sqlx.Tx.
type querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// SourceOption is a Source option function
type SourceOption func(*Source)

// Schema is an option for setting the schema to introspect. Defaults to `public`.
func Schema(schema string) SourceOption {
	return func(s *Source) {
		if schema != "" {
			s.schema = schema
		}
	}
}

// WithLogger is an option for setting the logger.
func WithLogger(logger *log.Logger) SourceOption {
	return func(s *Source) {
		s.logger = logger.WithFields(log.Fields{"component": "source", "database": s.name})
	}
}

// Source captures snapshots of one Postgres database using read only queries.
type Source struct {
	conn   *sqlx.DB
	name   string
	schema string
	logger *log.Entry
}

// Open parses a connection target and opens a Source for it. The connection
// is established lazily, on the first Snapshot.
func Open(target string, opts ...SourceOption) (*Source, error) {
	name, err := Describe(target)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open("postgres", target)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	return NewSource(conn, name, opts...), nil
}

// NewSource returns a Source reading from an open connection. name identifies
// the database in logs.
func NewSource(conn *sqlx.DB, name string, opts ...SourceOption) *Source {
	s := &Source{
		conn:   conn,
		name:   name,
		schema: "public",
	}
	s.logger = log.WithFields(log.Fields{"component": "source", "database": name})

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the password free description of the database.
func (s *Source) Name() string {
	return s.name
}

// Close closes the underlying connection pool.
func (s *Source) Close() error {
	return s.conn.Close()
}

// Snapshot captures the schema metadata inside a single repeatable read,
// read only transaction so every category sees the same state.
func (s *Source) Snapshot(ctx context.Context) (*schemadiff.Snapshot, error) {
	tx, err := s.conn.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		s.logger.WithError(err).Error(errTransactionBegin.Error())
		return nil, fmt.Errorf("%s: %w", errTransactionBegin.Error(), err)
	}
	defer tx.Rollback() //nolint:errcheck

	return capture(ctx, tx, s.schema, s.logger)
}

func capture(ctx context.Context, q querier, schema string, logger *log.Entry) (*schemadiff.Snapshot, error) {
	var serverVersion string
	if err := q.GetContext(ctx, &serverVersion, showServerVersionSQL); err != nil {
		return nil, fmt.Errorf("unable to read server version: %w", err)
	}
	if err := checkServerVersion(serverVersion); err != nil {
		return nil, err
	}
	logger.Debugf("server version: %s", serverVersion)

	snap := &schemadiff.Snapshot{
		Schema:        schema,
		ServerVersion: serverVersion,
	}

	var err error
	if snap.Tables, err = selectRecords(ctx, q, "tables", selectTablesSQL, schema, infallible(tableRow.toTable)); err != nil {
		return nil, err
	}
	if snap.Columns, err = selectRecords(ctx, q, "columns", selectColumnsSQL, schema, infallible(columnRow.toColumn)); err != nil {
		return nil, err
	}
	if snap.Indexes, err = selectRecords(ctx, q, "indexes", selectIndexesSQL, schema, infallible(indexRow.toIndex)); err != nil {
		return nil, err
	}
	if snap.ForeignKeys, err = selectRecords(ctx, q, "foreign keys", selectForeignKeysSQL, schema, infallible(foreignKeyRow.toForeignKey)); err != nil {
		return nil, err
	}
	if snap.Enums, err = selectRecords(ctx, q, "enums", selectEnumsSQL, schema, infallible(enumRow.toEnumValue)); err != nil {
		return nil, err
	}
	if snap.Policies, err = selectRecords(ctx, q, "policies", selectPoliciesSQL, schema, infallible(policyRow.toPolicy)); err != nil {
		return nil, err
	}
	if snap.Functions, err = selectRecords(ctx, q, "functions", selectFunctionsSQL, schema, functionRow.toFunction); err != nil {
		return nil, err
	}
	if snap.Triggers, err = selectRecords(ctx, q, "triggers", selectTriggersSQL, schema, infallible(triggerRow.toTrigger)); err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"tables":       len(snap.Tables),
		"columns":      len(snap.Columns),
		"indexes":      len(snap.Indexes),
		"foreign_keys": len(snap.ForeignKeys),
		"enum_values":  len(snap.Enums),
		"policies":     len(snap.Policies),
		"functions":    len(snap.Functions),
		"triggers":     len(snap.Triggers),
	}).Debug("captured schema")

	return snap, nil
}

// selectRecords runs an introspection query and converts each row.
func selectRecords[R any, T any](ctx context.Context, q querier, category, query, schema string, convert func(R) (T, error)) ([]T, error) {
	var rows []R
	if err := q.SelectContext(ctx, &rows, query, schema); err != nil {
		return nil, fmt.Errorf("unable to load %s: %w", category, err)
	}

	records := make([]T, 0, len(rows))
	for _, r := range rows {
		rec, err := convert(r)
		if err != nil {
			return nil, fmt.Errorf("unable to load %s: %w", category, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func infallible[R any, T any](fn func(R) T) func(R) (T, error) {
	return func(r R) (T, error) {
		return fn(r), nil
	}
}
