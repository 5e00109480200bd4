package db

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	schemadiff "github.com/perangel/schema-diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestColumnRowToColumn(t *testing.T) {
	for _, tc := range []struct {
		name string
		row  columnRow
		want schemadiff.Column
	}{
		{
			name: "identity column",
			row: columnRow{
				TableName:          "users",
				ColumnName:         "id",
				OrdinalPosition:    1,
				DataType:           "bigint",
				UDTName:            "int8",
				NumericPrecision:   sql.NullInt64{Int64: 64, Valid: true},
				NumericScale:       sql.NullInt64{Int64: 0, Valid: true},
				IsNullable:         "NO",
				IsIdentity:         sql.NullString{String: "YES", Valid: true},
				IdentityGeneration: sql.NullString{String: "BY DEFAULT", Valid: true},
				IsGenerated:        sql.NullString{String: "NEVER", Valid: true},
			},
			want: schemadiff.Column{
				TableName:          "users",
				Name:               "id",
				OrdinalPosition:    1,
				DataType:           "bigint",
				UDTName:            "int8",
				NumericPrecision:   intPtr(64),
				NumericScale:       intPtr(0),
				IsNullable:         false,
				IsIdentity:         true,
				IdentityGeneration: strPtr("BY DEFAULT"),
			},
		},
		{
			name: "generated column",
			row: columnRow{
				TableName:            "users",
				ColumnName:           "search",
				OrdinalPosition:      4,
				DataType:             "tsvector",
				UDTName:              "tsvector",
				IsNullable:           "YES",
				IsIdentity:           sql.NullString{String: "NO", Valid: true},
				IsGenerated:          sql.NullString{String: "ALWAYS", Valid: true},
				GenerationExpression: sql.NullString{String: "to_tsvector('english'::regconfig, name)", Valid: true},
			},
			want: schemadiff.Column{
				TableName:            "users",
				Name:                 "search",
				OrdinalPosition:      4,
				DataType:             "tsvector",
				UDTName:              "tsvector",
				IsNullable:           true,
				IsGenerated:          true,
				GenerationExpression: strPtr("to_tsvector('english'::regconfig, name)"),
			},
		},
		{
			name: "varchar with default",
			row: columnRow{
				TableName:       "users",
				ColumnName:      "email",
				OrdinalPosition: 2,
				DataType:        "character varying",
				UDTName:         "varchar",
				MaxLength:       sql.NullInt64{Int64: 320, Valid: true},
				IsNullable:      "YES",
				ColumnDefault:   sql.NullString{String: "''::character varying", Valid: true},
			},
			want: schemadiff.Column{
				TableName:       "users",
				Name:            "email",
				OrdinalPosition: 2,
				DataType:        "character varying",
				UDTName:         "varchar",
				MaxLength:       intPtr(320),
				IsNullable:      true,
				Default:         strPtr("''::character varying"),
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.row.toColumn())
		})
	}
}

func TestTableRowToTable(t *testing.T) {
	assert.Equal(t,
		schemadiff.Table{Name: "users", Kind: "BASE TABLE", Comment: strPtr("people")},
		tableRow{TableName: "users", TableType: "BASE TABLE", Comment: sql.NullString{String: "people", Valid: true}}.toTable(),
	)
	assert.Nil(t, tableRow{TableName: "v", TableType: "VIEW"}.toTable().Comment)
}

func TestPolicyRowToPolicy(t *testing.T) {
	p := policyRow{
		TableName:  "orders",
		PolicyName: "own_orders",
		Permissive: true,
		Roles:      pq.StringArray{"public"},
		Command:    "ALL",
		Qualifier:  sql.NullString{String: "(owner = CURRENT_USER)", Valid: true},
	}.toPolicy()

	assert.Equal(t, []string{"public"}, p.Roles)
	assert.Equal(t, strPtr("(owner = CURRENT_USER)"), p.Qualifier)
	assert.Nil(t, p.WithCheck)

	p = policyRow{TableName: "orders", PolicyName: "none"}.toPolicy()
	assert.NotNil(t, p.Roles)
	assert.Empty(t, p.Roles)
}

func TestFunctionRowToFunction(t *testing.T) {
	for _, tc := range []struct {
		kind string
		want schemadiff.FunctionKind
	}{
		{kind: "f", want: schemadiff.FunctionKindFunction},
		{kind: "p", want: schemadiff.FunctionKindProcedure},
		{kind: "a", want: schemadiff.FunctionKindAggregate},
		{kind: "w", want: schemadiff.FunctionKindWindow},
	} {
		t.Run(tc.kind, func(t *testing.T) {
			fn, err := functionRow{Name: "f", Kind: tc.kind, Language: "sql"}.toFunction()
			require.NoError(t, err)
			assert.Equal(t, tc.want, fn.Kind)
		})
	}

	_, err := functionRow{Name: "f", Kind: "x"}.toFunction()
	assert.Error(t, err)
}
