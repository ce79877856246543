package schema

import "errors"

// Registry is the insertion ordered store of synthesized tables awaiting
// emission. Table names are unique and entries are never removed.
type Registry struct {
	tables map[string]*Table
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// add registers t, failing with a DuplicateTableError when the name is taken.
// Only the Builder calls it.
func (r *Registry) add(t *Table) error {
	if _, ok := r.tables[t.Name]; ok {
		return &DuplicateTableError{Table: t.Name}
	}
	r.tables[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Has reports whether a table with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tables[name]
	return ok
}

// Get returns the registered table with the given name.
func (r *Registry) Get(name string) (*Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Tables returns the registered tables in registration order.
func (r *Registry) Tables() []*Table {
	out := make([]*Table, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tables[name])
	}
	return out
}

// Names returns the registered table names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Validate checks that every foreign key target is itself registered. All
// dangling references are joined into the returned error.
func (r *Registry) Validate() error {
	var errs []error
	for _, name := range r.order {
		for _, target := range r.tables[name].ForeignKeys {
			if !r.Has(target) {
				errs = append(errs, &DanglingReferenceError{Table: name, Target: target})
			}
		}
	}
	return errors.Join(errs...)
}
