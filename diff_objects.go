package schemadiff

import (
	"fmt"
	"sort"
	"strings"
)

var indexComparison = keyedComparison[Index]{
	identity: Index.identity,
	key:      Index.Key,
	equal: func(a, b Index) bool {
		return a.Definition == b.Definition
	},
	value: func(i Index) string {
		return i.Definition
	},
}

var foreignKeyComparison = keyedComparison[ForeignKey]{
	identity: ForeignKey.identity,
	key:      ForeignKey.Key,
	equal: func(a, b ForeignKey) bool {
		return a.ColumnName == b.ColumnName &&
			a.ReferencedTable == b.ReferencedTable &&
			a.ReferencedColumn == b.ReferencedColumn
	},
	value: func(fk ForeignKey) string {
		return fmt.Sprintf("(%s) REFERENCES %s(%s)", fk.ColumnName, fk.ReferencedTable, fk.ReferencedColumn)
	},
}

var policyComparison = keyedComparison[Policy]{
	identity: Policy.identity,
	key:      Policy.Key,
	equal: func(a, b Policy) bool {
		return a.Permissive == b.Permissive &&
			a.Command == b.Command &&
			equalStrings(sortedRoles(a.Roles), sortedRoles(b.Roles)) &&
			optionalEqual(a.Qualifier, b.Qualifier) &&
			optionalEqual(a.WithCheck, b.WithCheck)
	},
	value: func(p Policy) string {
		mode := "RESTRICTIVE"
		if p.Permissive {
			mode = "PERMISSIVE"
		}
		return fmt.Sprintf("AS %s FOR %s TO %s USING (%s) WITH CHECK (%s)",
			mode,
			p.Command,
			strings.Join(sortedRoles(p.Roles), ", "),
			optionalString(p.Qualifier),
			optionalString(p.WithCheck),
		)
	},
}

var functionComparison = keyedComparison[Function]{
	identity: Function.identity,
	key:      Function.Key,
	equal: func(a, b Function) bool {
		return a.ReturnType == b.ReturnType &&
			a.Kind == b.Kind &&
			a.SecurityDefiner == b.SecurityDefiner &&
			a.Language == b.Language
	},
	value: func(f Function) string {
		security := "INVOKER"
		if f.SecurityDefiner {
			security = "DEFINER"
		}
		return fmt.Sprintf("%s %s(%s) RETURNS %s LANGUAGE %s SECURITY %s",
			strings.ToUpper(string(f.Kind)),
			f.Name,
			f.Arguments,
			f.ReturnType,
			f.Language,
			security,
		)
	},
}

var triggerComparison = keyedComparison[Trigger]{
	identity: Trigger.identity,
	key:      Trigger.Key,
	equal: func(a, b Trigger) bool {
		return a.Statement == b.Statement &&
			a.Timing == b.Timing &&
			a.Orientation == b.Orientation
	},
	value: func(t Trigger) string {
		return fmt.Sprintf("%s %s FOR EACH %s %s", t.Timing, t.Event, t.Orientation, t.Statement)
	},
}

// sortedRoles returns a sorted copy of roles. Role order is not significant.
func sortedRoles(roles []string) []string {
	sorted := append([]string(nil), roles...)
	sort.Strings(sorted)
	return sorted
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
