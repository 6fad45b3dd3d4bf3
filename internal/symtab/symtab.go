// Package symtab stores user-defined name->value bindings (defines).
package symtab

// entry is one (name, value) define binding, kept in declaration order.
type entry struct {
	name  string
	value string
}

// Table stores defines. Redefinition is unspecified behavior per spec;
// this implementation appends rather than replacing and Lookup returns
// the first match, matching the literal behavior observed in the program
// this tool is modeled on (see DESIGN.md).
type Table struct {
	entries []entry
}

func New() *Table { return &Table{} }

// Add binds name to value. It never fails and never overwrites an
// existing entry with the same name; it simply appends, so the first
// binding for a name continues to win at Lookup time.
func (t *Table) Add(name, value string) {
	t.entries = append(t.entries, entry{name: name, value: value})
}

// Lookup returns the value of the first-declared binding for name.
func (t *Table) Lookup(name string) (string, bool) {
	for _, e := range t.entries {
		if e.name == name {
			return e.value, true
		}
	}
	return "", false
}

// Names returns every distinct define name, in first-declaration order,
// for use in "did you mean" suggestions against an undefined symbol.
func (t *Table) Names() []string {
	seen := make(map[string]bool, len(t.entries))
	names := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		if !seen[e.name] {
			seen[e.name] = true
			names = append(names, e.name)
		}
	}
	return names
}
