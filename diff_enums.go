package schemadiff

import "sort"

// diffEnums compares enumerated types by their set of values. Declaration
// order is not compared.
func diffEnums(a, b []EnumValue) EnumDiff {
	valuesA, orderA := groupEnumValues(a)
	valuesB, orderB := groupEnumValues(b)

	d := EnumDiff{
		OnlyInA: enumsMissingFrom(orderA, valuesB),
		OnlyInB: enumsMissingFrom(orderB, valuesA),
		Changed: make([]EnumChange, 0),
	}

	for _, name := range orderA {
		vb, ok := valuesB[name]
		if !ok {
			continue
		}
		va := valuesA[name]
		if !equalStrings(va, vb) {
			d.Changed = append(d.Changed, EnumChange{
				Name:    name,
				ValuesA: va,
				ValuesB: vb,
			})
		}
	}

	return d
}

// groupEnumValues collects the sorted values of every enum type, along with
// the type names in order of first appearance.
func groupEnumValues(values []EnumValue) (map[string][]string, []string) {
	grouped := make(map[string][]string)
	var order []string
	for _, v := range values {
		if _, ok := grouped[v.TypeName]; !ok {
			order = append(order, v.TypeName)
		}
		grouped[v.TypeName] = append(grouped[v.TypeName], v.Value)
	}

	for _, vals := range grouped {
		sort.Strings(vals)
	}
	return grouped, order
}

func enumsMissingFrom(names []string, other map[string][]string) []string {
	missing := make([]string, 0)
	for _, name := range names {
		if _, ok := other[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
