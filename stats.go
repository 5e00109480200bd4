package schemadiff

// Stats are the difference counts of a Result.
type Stats struct {
	TablesOnlyInA int `json:"tablesOnlyInA"`
	TablesOnlyInB int `json:"tablesOnlyInB"`
	TablesCommon  int `json:"tablesCommon"`

	ColumnsOnlyInA int `json:"columnsOnlyInA"`
	ColumnsOnlyInB int `json:"columnsOnlyInB"`
	ColumnsChanged int `json:"columnsChanged"`

	IndexesOnlyInA int `json:"indexesOnlyInA"`
	IndexesOnlyInB int `json:"indexesOnlyInB"`
	IndexesChanged int `json:"indexesChanged"`

	ForeignKeysOnlyInA int `json:"foreignKeysOnlyInA"`
	ForeignKeysOnlyInB int `json:"foreignKeysOnlyInB"`
	ForeignKeysChanged int `json:"foreignKeysChanged"`

	EnumsOnlyInA int `json:"enumsOnlyInA"`
	EnumsOnlyInB int `json:"enumsOnlyInB"`
	EnumsChanged int `json:"enumsChanged"`

	PoliciesOnlyInA int `json:"policiesOnlyInA"`
	PoliciesOnlyInB int `json:"policiesOnlyInB"`
	PoliciesChanged int `json:"policiesChanged"`

	FunctionsOnlyInA int `json:"functionsOnlyInA"`
	FunctionsOnlyInB int `json:"functionsOnlyInB"`
	FunctionsChanged int `json:"functionsChanged"`

	TriggersOnlyInA int `json:"triggersOnlyInA"`
	TriggersOnlyInB int `json:"triggersOnlyInB"`
	TriggersChanged int `json:"triggersChanged"`
}

// CategoryStats are the counts of a single category.
type CategoryStats struct {
	Category string
	OnlyInA  int
	OnlyInB  int
	Changed  int
}

// ComputeStats counts the differences in r.
func ComputeStats(r *Result) Stats {
	if r == nil {
		return Stats{}
	}

	s := Stats{
		TablesOnlyInA: len(r.Tables.OnlyInA),
		TablesOnlyInB: len(r.Tables.OnlyInB),
		TablesCommon:  len(r.Tables.Common),

		IndexesOnlyInA: len(r.Indexes.OnlyInA),
		IndexesOnlyInB: len(r.Indexes.OnlyInB),
		IndexesChanged: len(r.Indexes.Changed),

		ForeignKeysOnlyInA: len(r.ForeignKeys.OnlyInA),
		ForeignKeysOnlyInB: len(r.ForeignKeys.OnlyInB),
		ForeignKeysChanged: len(r.ForeignKeys.Changed),

		EnumsOnlyInA: len(r.Enums.OnlyInA),
		EnumsOnlyInB: len(r.Enums.OnlyInB),
		EnumsChanged: len(r.Enums.Changed),

		PoliciesOnlyInA: len(r.Policies.OnlyInA),
		PoliciesOnlyInB: len(r.Policies.OnlyInB),
		PoliciesChanged: len(r.Policies.Changed),

		FunctionsOnlyInA: len(r.Functions.OnlyInA),
		FunctionsOnlyInB: len(r.Functions.OnlyInB),
		FunctionsChanged: len(r.Functions.Changed),

		TriggersOnlyInA: len(r.Triggers.OnlyInA),
		TriggersOnlyInB: len(r.Triggers.OnlyInB),
		TriggersChanged: len(r.Triggers.Changed),
	}

	for _, t := range r.Columns {
		s.ColumnsOnlyInA += len(t.OnlyInA)
		s.ColumnsOnlyInB += len(t.OnlyInB)
		s.ColumnsChanged += len(t.Changed)
	}

	return s
}

// Categories returns the counts per category, in report order. Tables report
// no changed count.
func (s Stats) Categories() []CategoryStats {
	return []CategoryStats{
		{Category: "tables", OnlyInA: s.TablesOnlyInA, OnlyInB: s.TablesOnlyInB},
		{Category: "columns", OnlyInA: s.ColumnsOnlyInA, OnlyInB: s.ColumnsOnlyInB, Changed: s.ColumnsChanged},
		{Category: "indexes", OnlyInA: s.IndexesOnlyInA, OnlyInB: s.IndexesOnlyInB, Changed: s.IndexesChanged},
		{Category: "foreign_keys", OnlyInA: s.ForeignKeysOnlyInA, OnlyInB: s.ForeignKeysOnlyInB, Changed: s.ForeignKeysChanged},
		{Category: "enums", OnlyInA: s.EnumsOnlyInA, OnlyInB: s.EnumsOnlyInB, Changed: s.EnumsChanged},
		{Category: "policies", OnlyInA: s.PoliciesOnlyInA, OnlyInB: s.PoliciesOnlyInB, Changed: s.PoliciesChanged},
		{Category: "functions", OnlyInA: s.FunctionsOnlyInA, OnlyInB: s.FunctionsOnlyInB, Changed: s.FunctionsChanged},
		{Category: "triggers", OnlyInA: s.TriggersOnlyInA, OnlyInB: s.TriggersOnlyInB, Changed: s.TriggersChanged},
	}
}

// Total returns the number of differences across all categories. Common
// tables are not differences.
func (s Stats) Total() int {
	total := 0
	for _, c := range s.Categories() {
		total += c.OnlyInA + c.OnlyInB + c.Changed
	}
	return total
}

// HasDifferences reports whether any difference was found.
func (s Stats) HasDifferences() bool {
	return s.Total() > 0
}
