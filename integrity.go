package schemadiff

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// DataIntegrityError is returned when a snapshot holds more than one record
// with the same identity key in a category.
type DataIntegrityError struct {
	Category string
	Key      string
	Count    int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("duplicate %s key `%s` (%d records)", e.Category, e.Key, e.Count)
}

// Validate checks that identity keys are unique within every category. All
// duplicates are reported, each as a *DataIntegrityError. Enum values are
// keyed by type and value.
func (s *Snapshot) Validate() error {
	if s == nil {
		return nil
	}

	var result *multierror.Error
	collect := func(errs []*DataIntegrityError) {
		for _, err := range errs {
			result = multierror.Append(result, err)
		}
	}

	collect(duplicateKeys("table", s.Tables, Table.Key, Table.Key))
	collect(duplicateKeys("column", s.Columns, Column.identity, Column.Key))
	collect(duplicateKeys("index", s.Indexes, Index.identity, Index.Key))
	collect(duplicateKeys("foreign key", s.ForeignKeys, ForeignKey.identity, ForeignKey.Key))
	collect(duplicateKeys("enum value", s.Enums, EnumValue.identity, func(e EnumValue) string { return e.TypeName + "." + e.Value }))
	collect(duplicateKeys("policy", s.Policies, Policy.identity, Policy.Key))
	collect(duplicateKeys("function", s.Functions, Function.identity, Function.Key))
	collect(duplicateKeys("trigger", s.Triggers, Trigger.identity, Trigger.Key))

	return result.ErrorOrNil()
}

// duplicateKeys reports every identity shared by more than one record, in
// order of first appearance, under its display key.
func duplicateKeys[T any](category string, records []T, identity, key func(T) string) []*DataIntegrityError {
	counts := make(map[string]int, len(records))
	keys := make(map[string]string, len(records))
	var order []string
	for _, r := range records {
		id := identity(r)
		if counts[id] == 0 {
			order = append(order, id)
			keys[id] = key(r)
		}
		counts[id]++
	}

	var errs []*DataIntegrityError
	for _, id := range order {
		if counts[id] > 1 {
			errs = append(errs, &DataIntegrityError{Category: category, Key: keys[id], Count: counts[id]})
		}
	}
	return errs
}
