package schema

import (
	"db-blueprint/internal/naming"
)

// Catalog is the read-only set of known entity names ("things") that a
// field token may reference. Lookups fold case, spacing and number.
type Catalog struct {
	names     []string
	index     map[string]string
	inflector *naming.Inflector
}

// NewCatalog indexes names. The first name wins when two normalize to the
// same key.
func NewCatalog(names []string, inflector *naming.Inflector) *Catalog {
	if inflector == nil {
		inflector = naming.Default()
	}

	c := &Catalog{
		index:     make(map[string]string, len(names)*2),
		inflector: inflector,
	}
	for _, name := range names {
		keys := c.keys(name)
		if len(keys) == 0 {
			continue
		}
		if _, dup := c.index[keys[0]]; dup {
			continue
		}
		c.names = append(c.names, name)
		for _, k := range keys {
			if _, taken := c.index[k]; !taken {
				c.index[k] = name
			}
		}
	}
	return c
}

// Lookup returns the catalog spelling of the entity token refers to.
func (c *Catalog) Lookup(token string) (string, bool) {
	for _, k := range c.keys(token) {
		if name, ok := c.index[k]; ok {
			return name, true
		}
	}
	return "", false
}

// Names returns the catalog entries in insertion order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) Len() int {
	return len(c.names)
}

func (c *Catalog) keys(name string) []string {
	exact := normalizeKey(name)
	if exact == "" {
		return nil
	}
	snake := naming.Snake(name)
	return []string{
		exact,
		normalizeKey(c.inflector.Singularize(snake)),
		normalizeKey(c.inflector.Pluralize(snake)),
	}
}
