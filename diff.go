package schemadiff

// Result is the full set of differences between two snapshots. It is the
// interchange format written by the JSON renderer.
type Result struct {
	LabelA string `json:"labelA"`
	LabelB string `json:"labelB"`

	Tables      TableDiff                  `json:"tables"`
	Columns     map[string]TableColumnDiff `json:"columns"`
	Indexes     ObjectDiff                 `json:"indexes"`
	ForeignKeys ObjectDiff                 `json:"foreignKeys"`
	Enums       EnumDiff                   `json:"enums"`
	Policies    ObjectDiff                 `json:"policies"`
	Functions   ObjectDiff                 `json:"functions"`
	Triggers    ObjectDiff                 `json:"triggers"`
}

// TableDiff lists the tables found on either or both sides.
type TableDiff struct {
	OnlyInA []string `json:"onlyInA"`
	OnlyInB []string `json:"onlyInB"`
	Common  []string `json:"common"`
}

// ObjectDiff is the diff of a keyed category (indexes, foreign keys, policies,
// functions and triggers).
type ObjectDiff struct {
	OnlyInA []string `json:"onlyInA"`
	OnlyInB []string `json:"onlyInB"`
	Changed []Change `json:"changed"`
}

// Change is an object present on both sides with different definitions.
type Change struct {
	Key    string `json:"key"`
	ValueA string `json:"valueA"`
	ValueB string `json:"valueB"`
}

// TableColumnDiff holds the column differences of a single table.
type TableColumnDiff struct {
	OnlyInA []string       `json:"onlyInA"`
	OnlyInB []string       `json:"onlyInB"`
	Changed []ColumnChange `json:"changed"`
}

// ColumnChange lists every field that differs for a column.
type ColumnChange struct {
	Column      string            `json:"column"`
	Differences []FieldDifference `json:"differences"`
}

// FieldDifference is a single differing column attribute.
type FieldDifference struct {
	Field  string `json:"field"`
	ValueA string `json:"valueA"`
	ValueB string `json:"valueB"`
}

// EnumDiff is the diff of enumerated types.
type EnumDiff struct {
	OnlyInA []string     `json:"onlyInA"`
	OnlyInB []string     `json:"onlyInB"`
	Changed []EnumChange `json:"changed"`
}

// EnumChange is an enum whose set of values differs. Values are sorted.
type EnumChange struct {
	Name    string   `json:"name"`
	ValuesA []string `json:"valuesA"`
	ValuesB []string `json:"valuesB"`
}

// Diff compares two snapshots. It does not modify its inputs and always
// succeeds; a nil snapshot is treated as an empty one.
func Diff(a, b *Snapshot, labelA, labelB string) *Result {
	if a == nil {
		a = &Snapshot{}
	}
	if b == nil {
		b = &Snapshot{}
	}

	return &Result{
		LabelA:      labelA,
		LabelB:      labelB,
		Tables:      diffTables(a.Tables, b.Tables),
		Columns:     diffColumns(a.Columns, b.Columns),
		Indexes:     indexComparison.compare(a.Indexes, b.Indexes),
		ForeignKeys: foreignKeyComparison.compare(a.ForeignKeys, b.ForeignKeys),
		Enums:       diffEnums(a.Enums, b.Enums),
		Policies:    policyComparison.compare(a.Policies, b.Policies),
		Functions:   functionComparison.compare(a.Functions, b.Functions),
		Triggers:    triggerComparison.compare(a.Triggers, b.Triggers),
	}
}

func diffTables(a, b []Table) TableDiff {
	setA := newKeyedSet(a, Table.Key, Table.Key)
	setB := newKeyedSet(b, Table.Key, Table.Key)

	return TableDiff{
		OnlyInA: setA.missingFrom(setB),
		OnlyInB: setB.missingFrom(setA),
		Common:  setA.sharedWith(setB),
	}
}
