package schemadiff

// columnField is a comparable column attribute, named after its
// information_schema.columns counterpart.
type columnField struct {
	name  string
	value func(Column) interface{}
}

var columnFields = []columnField{
	{name: "data_type", value: func(c Column) interface{} { return c.DataType }},
	{name: "udt_name", value: func(c Column) interface{} { return c.UDTName }},
	{name: "character_maximum_length", value: func(c Column) interface{} { return c.MaxLength }},
	{name: "numeric_precision", value: func(c Column) interface{} { return c.NumericPrecision }},
	{name: "numeric_scale", value: func(c Column) interface{} { return c.NumericScale }},
	{name: "is_nullable", value: func(c Column) interface{} { return yesNo(c.IsNullable) }},
	{name: "column_default", value: func(c Column) interface{} { return c.Default }},
	{name: "is_identity", value: func(c Column) interface{} { return yesNo(c.IsIdentity) }},
	{name: "identity_generation", value: func(c Column) interface{} { return c.IdentityGeneration }},
	{name: "is_generated", value: func(c Column) interface{} { return alwaysNever(c.IsGenerated) }},
	{name: "generation_expression", value: func(c Column) interface{} { return c.GenerationExpression }},
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func alwaysNever(b bool) string {
	if b {
		return "ALWAYS"
	}
	return "NEVER"
}

func columnName(c Column) string { return c.Name }

// diffColumns compares columns table by table. Every table name seen on
// either side is visited, whether or not the table itself was captured.
// Tables without differences are left out of the result.
func diffColumns(a, b []Column) map[string]TableColumnDiff {
	byTableA, tablesA := groupColumns(a)
	byTableB, tablesB := groupColumns(b)

	result := make(map[string]TableColumnDiff)
	for _, table := range append(tablesA, tablesB...) {
		if _, done := result[table]; done {
			continue
		}

		d := diffTableColumns(byTableA[table], byTableB[table])
		if len(d.OnlyInA) == 0 && len(d.OnlyInB) == 0 && len(d.Changed) == 0 {
			continue
		}
		result[table] = d
	}

	return result
}

func groupColumns(columns []Column) (map[string][]Column, []string) {
	grouped := make(map[string][]Column)
	var order []string
	for _, c := range columns {
		if _, ok := grouped[c.TableName]; !ok {
			order = append(order, c.TableName)
		}
		grouped[c.TableName] = append(grouped[c.TableName], c)
	}
	return grouped, order
}

func diffTableColumns(a, b []Column) TableColumnDiff {
	setA := newKeyedSet(a, columnName, columnName)
	setB := newKeyedSet(b, columnName, columnName)

	d := TableColumnDiff{
		OnlyInA: setA.missingFrom(setB),
		OnlyInB: setB.missingFrom(setA),
		Changed: make([]ColumnChange, 0),
	}

	for _, name := range setA.order {
		colB, ok := setB.items[name]
		if !ok {
			continue
		}

		if diffs := diffColumnFields(setA.items[name], colB); len(diffs) > 0 {
			d.Changed = append(d.Changed, ColumnChange{
				Column:      name,
				Differences: diffs,
			})
		}
	}

	return d
}

func diffColumnFields(a, b Column) []FieldDifference {
	var diffs []FieldDifference
	for _, f := range columnFields {
		valA := Normalize(f.value(a))
		valB := Normalize(f.value(b))
		if valA != valB {
			diffs = append(diffs, FieldDifference{
				Field:  f.name,
				ValueA: valA,
				ValueB: valB,
			})
		}
	}
	return diffs
}
