package schemadiff

import "strings"

// matchTable reports whether a table matches a pattern in one of the formats:
//     <schema>.<table>
//     <schema>.*
//     <table>
func matchTable(pattern, schema, table string) bool {
	parts := strings.SplitN(pattern, ".", 2)
	// <schema>.<table>
	if len(parts) == 2 {
		if parts[0] != schema {
			return false
		}
		return parts[1] == "*" || parts[1] == table
	}
	// <table>
	return parts[0] == table
}

func matchAny(patterns []string, schema, table string) bool {
	for _, p := range patterns {
		if matchTable(p, schema, table) {
			return true
		}
	}
	return false
}

// WhitelistTablesStage returns a stage that keeps only the tables matching
// one of the patterns. Columns, indexes, foreign keys, policies and triggers
// of other tables are dropped with them.
func WhitelistTablesStage(patterns []string) StageFunc {
	return func(s *Snapshot) (*Snapshot, error) {
		if s == nil {
			s = &Snapshot{}
		}
		return filterTables(s, func(table string) bool {
			return matchAny(patterns, s.Schema, table)
		}), nil
	}
}

// IgnoreTablesStage returns a stage that removes the tables matching one of
// the patterns, along with their table scoped records.
func IgnoreTablesStage(patterns []string) StageFunc {
	return func(s *Snapshot) (*Snapshot, error) {
		if s == nil {
			s = &Snapshot{}
		}
		return filterTables(s, func(table string) bool {
			return !matchAny(patterns, s.Schema, table)
		}), nil
	}
}

func filterTables(s *Snapshot, keep func(table string) bool) *Snapshot {
	out := s.Copy()
	out.Tables = filterRecords(out.Tables, func(t Table) bool { return keep(t.Name) })
	out.Columns = filterRecords(out.Columns, func(c Column) bool { return keep(c.TableName) })
	out.Indexes = filterRecords(out.Indexes, func(i Index) bool { return keep(i.TableName) })
	out.ForeignKeys = filterRecords(out.ForeignKeys, func(fk ForeignKey) bool { return keep(fk.TableName) })
	out.Policies = filterRecords(out.Policies, func(p Policy) bool { return keep(p.TableName) })
	out.Triggers = filterRecords(out.Triggers, func(t Trigger) bool { return keep(t.TableName) })
	return out
}

func filterRecords[T any](records []T, keep func(T) bool) []T {
	filtered := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
