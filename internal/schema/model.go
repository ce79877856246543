// Package schema classifies an entity's loosely typed fields and synthesizes
// the relational tables that represent it: the base table, join tables for
// collection relationships and per-locale tables for natural language content.
package schema

// Field is a single column of a synthesized table.
type Field struct {
	Name        string
	Type        string // canonical type, e.g. "bigInteger"
	Comment     string
	ParentTable string // referenced table for foreign key columns, "" otherwise
	Nullable    bool
}

// IsForeignKey reports whether the field references another table.
func (f Field) IsForeignKey() bool {
	return f.ParentTable != ""
}

// Table is a synthesized table definition.
type Table struct {
	Name        string
	Fields      []Field
	ForeignKeys []string // referenced tables, first discovery order, no duplicates
}

// Field returns the field with the given name.
func (t *Table) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// HasField reports whether the table declares a field with the given name.
func (t *Table) HasField(name string) bool {
	_, ok := t.Field(name)
	return ok
}

// Dependencies returns the distinct tables referenced by the table's columns,
// excluding the table itself.
func (t *Table) Dependencies() []string {
	var deps []string
	seen := map[string]bool{t.Name: true}
	for _, f := range t.Fields {
		if f.ParentTable == "" || seen[f.ParentTable] {
			continue
		}
		seen[f.ParentTable] = true
		deps = append(deps, f.ParentTable)
	}
	return deps
}

// ForeignKeyFields returns the columns whose parent table is listed in
// ForeignKeys, i.e. the columns that get a constraint in the second
// emission phase.
func (t *Table) ForeignKeyFields() []Field {
	targets := make(map[string]bool, len(t.ForeignKeys))
	for _, fk := range t.ForeignKeys {
		targets[fk] = true
	}

	var out []Field
	for _, f := range t.Fields {
		if targets[f.ParentTable] {
			out = append(out, f)
		}
	}
	return out
}

// FieldSpec is one raw entry of an entity description: a field name and its
// loosely typed token ("Text", "Integer", "Person", ...).
type FieldSpec struct {
	Name  string
	Token string
}

// Entity is an ordered description of an entity's fields.
type Entity struct {
	Name   string
	Fields []FieldSpec
}

// Cardinality tags a relationship between two tables.
type Cardinality int

const (
	// Reference is a single foreign key column on the parent table.
	Reference Cardinality = iota
	// OneToMany is represented by a synthesized join table.
	OneToMany
)

func (c Cardinality) String() string {
	switch c {
	case OneToMany:
		return "one_to_many"
	default:
		return "reference"
	}
}
