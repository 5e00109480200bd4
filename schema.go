package schemadiff

import (
	"fmt"
	"strings"
)

// Snapshot is the structural metadata captured from one database schema.
type Snapshot struct {
	// Schema is the name of the introspected schema (usually `public`).
	Schema string `json:"schema,omitempty"`
	// ServerVersion is the server_version reported by the source database.
	ServerVersion string `json:"serverVersion,omitempty"`

	Tables      []Table      `json:"tables"`
	Columns     []Column     `json:"columns"`
	Indexes     []Index      `json:"indexes"`
	ForeignKeys []ForeignKey `json:"foreignKeys"`
	Enums       []EnumValue  `json:"enums"`
	Policies    []Policy     `json:"policies"`
	Functions   []Function   `json:"functions"`
	Triggers    []Trigger    `json:"triggers"`
}

// Table is a relation in the schema.
type Table struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Comment *string `json:"comment"`
}

// Key returns the identity key of the table.
func (t Table) Key() string { return t.Name }

// Column is a column of a table, as reported by information_schema.columns.
type Column struct {
	TableName            string  `json:"tableName"`
	Name                 string  `json:"name"`
	OrdinalPosition      int     `json:"ordinalPosition"`
	DataType             string  `json:"dataType"`
	UDTName              string  `json:"udtName"`
	MaxLength            *int    `json:"maxLength"`
	NumericPrecision     *int    `json:"numericPrecision"`
	NumericScale         *int    `json:"numericScale"`
	IsNullable           bool    `json:"isNullable"`
	Default              *string `json:"default"`
	IsIdentity           bool    `json:"isIdentity"`
	IdentityGeneration   *string `json:"identityGeneration"`
	IsGenerated          bool    `json:"isGenerated"`
	GenerationExpression *string `json:"generationExpression"`
}

// Key returns the display form of the column's identity.
func (c Column) Key() string { return c.TableName + "." + c.Name }

func (c Column) identity() string { return joinKey(c.TableName, c.Name) }

// Index is an index definition.
type Index struct {
	TableName  string `json:"tableName"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

// Key returns the display form of the index identity, `table.name`.
func (i Index) Key() string { return i.TableName + "." + i.Name }

func (i Index) identity() string { return joinKey(i.TableName, i.Name) }

// ForeignKey is a foreign key constraint. Composite keys list their columns
// comma separated, in key order.
type ForeignKey struct {
	TableName        string `json:"tableName"`
	Name             string `json:"name"`
	ColumnName       string `json:"columnName"`
	ReferencedTable  string `json:"referencedTable"`
	ReferencedColumn string `json:"referencedColumn"`
}

// Key returns the display form of the foreign key identity, `table.name`.
func (fk ForeignKey) Key() string { return fk.TableName + "." + fk.Name }

func (fk ForeignKey) identity() string { return joinKey(fk.TableName, fk.Name) }

// EnumValue is a single member of an enumerated type.
type EnumValue struct {
	TypeName  string `json:"typeName"`
	Value     string `json:"value"`
	SortOrder int    `json:"sortOrder"`
}

// Key returns the identity key of the enum the value belongs to.
func (e EnumValue) Key() string { return e.TypeName }

func (e EnumValue) identity() string { return joinKey(e.TypeName, e.Value) }

// Policy is a row level security policy.
type Policy struct {
	TableName  string   `json:"tableName"`
	Name       string   `json:"name"`
	Permissive bool     `json:"permissive"`
	Roles      []string `json:"roles"`
	Command    string   `json:"command"`
	Qualifier  *string  `json:"qualifier"`
	WithCheck  *string  `json:"withCheck"`
}

// Key returns the display form of the policy identity, `table.name`.
func (p Policy) Key() string { return p.TableName + "." + p.Name }

func (p Policy) identity() string { return joinKey(p.TableName, p.Name) }

// FunctionKind is the kind of a routine.
type FunctionKind string

// FunctionKind constants
const (
	FunctionKindFunction  FunctionKind = "function"
	FunctionKindProcedure FunctionKind = "procedure"
	FunctionKindAggregate FunctionKind = "aggregate"
	FunctionKindWindow    FunctionKind = "window"
)

// ParseFunctionKind parses a function kind from either its name or the
// single letter pg_proc.prokind code.
func ParseFunctionKind(kind string) (FunctionKind, error) {
	switch strings.ToLower(kind) {
	case "f", "function":
		return FunctionKindFunction, nil
	case "p", "procedure":
		return FunctionKindProcedure, nil
	case "a", "aggregate":
		return FunctionKindAggregate, nil
	case "w", "window":
		return FunctionKindWindow, nil
	default:
		return "", fmt.Errorf("unknown function kind `%s`", kind)
	}
}

// Function is a routine stored in the schema.
type Function struct {
	Name            string       `json:"name"`
	Arguments       string       `json:"arguments"`
	ReturnType      string       `json:"returnType"`
	Kind            FunctionKind `json:"kind"`
	SecurityDefiner bool         `json:"securityDefiner"`
	Language        string       `json:"language"`
}

// Key returns the identity key of the function, its name and signature.
func (f Function) Key() string { return f.Name + "(" + f.Arguments + ")" }

func (f Function) identity() string { return joinKey(f.Name, f.Arguments) }

// Trigger is a trigger, one record per firing event.
type Trigger struct {
	Name        string `json:"name"`
	TableName   string `json:"tableName"`
	Event       string `json:"event"`
	Statement   string `json:"statement"`
	Timing      string `json:"timing"`
	Orientation string `json:"orientation"`
}

// Key returns the display form of the trigger identity, `table.name:event`.
func (t Trigger) Key() string { return t.TableName + "." + t.Name + ":" + t.Event }

func (t Trigger) identity() string { return joinKey(t.TableName, t.Name, t.Event) }

// keySeparator separates the parts of an identity. Identifiers may contain
// dots when quoted, but never a NUL byte.
const keySeparator = "\x00"

func joinKey(parts ...string) string { return strings.Join(parts, keySeparator) }

// Copy returns a shallow copy of the snapshot with its own record slices.
func (s *Snapshot) Copy() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}

	c := *s
	c.Tables = append([]Table(nil), s.Tables...)
	c.Columns = append([]Column(nil), s.Columns...)
	c.Indexes = append([]Index(nil), s.Indexes...)
	c.ForeignKeys = append([]ForeignKey(nil), s.ForeignKeys...)
	c.Enums = append([]EnumValue(nil), s.Enums...)
	c.Policies = append([]Policy(nil), s.Policies...)
	c.Functions = append([]Function(nil), s.Functions...)
	c.Triggers = append([]Trigger(nil), s.Triggers...)
	return &c
}
