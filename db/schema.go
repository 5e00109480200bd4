package db

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
	schemadiff "github.com/perangel/schema-diff"
)

// Rows as returned by the introspection queries in sql.go.

type tableRow struct {
	TableName string         `db:"table_name"`
	TableType string         `db:"table_type"`
	Comment   sql.NullString `db:"comment"`
}

type columnRow struct {
	TableName            string         `db:"table_name"`
	ColumnName           string         `db:"column_name"`
	OrdinalPosition      int            `db:"ordinal_position"`
	DataType             string         `db:"data_type"`
	UDTName              string         `db:"udt_name"`
	MaxLength            sql.NullInt64  `db:"character_maximum_length"`
	NumericPrecision     sql.NullInt64  `db:"numeric_precision"`
	NumericScale         sql.NullInt64  `db:"numeric_scale"`
	IsNullable           string         `db:"is_nullable"`
	ColumnDefault        sql.NullString `db:"column_default"`
	IsIdentity           sql.NullString `db:"is_identity"`
	IdentityGeneration   sql.NullString `db:"identity_generation"`
	IsGenerated          sql.NullString `db:"is_generated"`
	GenerationExpression sql.NullString `db:"generation_expression"`
}

type indexRow struct {
	TableName  string `db:"table_name"`
	IndexName  string `db:"index_name"`
	Definition string `db:"definition"`
}

type foreignKeyRow struct {
	TableName        string `db:"table_name"`
	ConstraintName   string `db:"constraint_name"`
	ColumnName       string `db:"column_name"`
	ReferencedTable  string `db:"referenced_table"`
	ReferencedColumn string `db:"referenced_column"`
}

type enumRow struct {
	TypeName  string `db:"type_name"`
	Value     string `db:"value"`
	SortOrder int    `db:"sort_order"`
}

type policyRow struct {
	TableName  string         `db:"table_name"`
	PolicyName string         `db:"policy_name"`
	Permissive bool           `db:"permissive"`
	Roles      pq.StringArray `db:"roles"`
	Command    string         `db:"command"`
	Qualifier  sql.NullString `db:"qualifier"`
	WithCheck  sql.NullString `db:"with_check"`
}

type functionRow struct {
	Name            string `db:"name"`
	Arguments       string `db:"arguments"`
	ReturnType      string `db:"return_type"`
	Kind            string `db:"kind"`
	SecurityDefiner bool   `db:"security_definer"`
	Language        string `db:"language"`
}

type triggerRow struct {
	TriggerName string `db:"trigger_name"`
	TableName   string `db:"table_name"`
	Event       string `db:"event"`
	Statement   string `db:"statement"`
	Timing      string `db:"timing"`
	Orientation string `db:"orientation"`
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullInt(i sql.NullInt64) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int64)
	return &v
}

// isYes reads information_schema yes_or_no values.
func isYes(s string) bool {
	return strings.EqualFold(s, "YES")
}

func (r tableRow) toTable() schemadiff.Table {
	return schemadiff.Table{
		Name:    r.TableName,
		Kind:    r.TableType,
		Comment: nullString(r.Comment),
	}
}

func (r columnRow) toColumn() schemadiff.Column {
	return schemadiff.Column{
		TableName:            r.TableName,
		Name:                 r.ColumnName,
		OrdinalPosition:      r.OrdinalPosition,
		DataType:             r.DataType,
		UDTName:              r.UDTName,
		MaxLength:            nullInt(r.MaxLength),
		NumericPrecision:     nullInt(r.NumericPrecision),
		NumericScale:         nullInt(r.NumericScale),
		IsNullable:           isYes(r.IsNullable),
		Default:              nullString(r.ColumnDefault),
		IsIdentity:           isYes(r.IsIdentity.String),
		IdentityGeneration:   nullString(r.IdentityGeneration),
		IsGenerated:          strings.EqualFold(r.IsGenerated.String, "ALWAYS"),
		GenerationExpression: nullString(r.GenerationExpression),
	}
}

func (r indexRow) toIndex() schemadiff.Index {
	return schemadiff.Index{
		TableName:  r.TableName,
		Name:       r.IndexName,
		Definition: r.Definition,
	}
}

func (r foreignKeyRow) toForeignKey() schemadiff.ForeignKey {
	return schemadiff.ForeignKey{
		TableName:        r.TableName,
		Name:             r.ConstraintName,
		ColumnName:       r.ColumnName,
		ReferencedTable:  r.ReferencedTable,
		ReferencedColumn: r.ReferencedColumn,
	}
}

func (r enumRow) toEnumValue() schemadiff.EnumValue {
	return schemadiff.EnumValue{
		TypeName:  r.TypeName,
		Value:     r.Value,
		SortOrder: r.SortOrder,
	}
}

func (r policyRow) toPolicy() schemadiff.Policy {
	roles := []string(r.Roles)
	if roles == nil {
		roles = []string{}
	}
	return schemadiff.Policy{
		TableName:  r.TableName,
		Name:       r.PolicyName,
		Permissive: r.Permissive,
		Roles:      roles,
		Command:    r.Command,
		Qualifier:  nullString(r.Qualifier),
		WithCheck:  nullString(r.WithCheck),
	}
}

func (r functionRow) toFunction() (schemadiff.Function, error) {
	kind, err := schemadiff.ParseFunctionKind(r.Kind)
	if err != nil {
		return schemadiff.Function{}, err
	}
	return schemadiff.Function{
		Name:            r.Name,
		Arguments:       r.Arguments,
		ReturnType:      r.ReturnType,
		Kind:            kind,
		SecurityDefiner: r.SecurityDefiner,
		Language:        r.Language,
	}, nil
}

func (r triggerRow) toTrigger() schemadiff.Trigger {
	return schemadiff.Trigger{
		Name:        r.TriggerName,
		TableName:   r.TableName,
		Event:       r.Event,
		Statement:   r.Statement,
		Timing:      r.Timing,
		Orientation: r.Orientation,
	}
}
