package dialect

import "db-blueprint/internal/schema"

// Column is a physical column after helper types are expanded.
type Column struct {
	Name          string
	Type          string // canonical type
	Comment       string
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	ParentTable   string
}

// Columns expands a table's fields into physical columns. Helper types
// (timestamps, softDeletes, rememberToken, morphs) become their underlying
// columns, and a bigIncrements id is added when the table declares no
// incrementing key of its own.
func Columns(t *schema.Table) []Column {
	var cols []Column
	seen := make(map[string]bool)
	add := func(c Column) {
		if seen[c.Name] {
			return
		}
		seen[c.Name] = true
		cols = append(cols, c)
	}

	if !hasPrimaryKey(t) {
		add(Column{Name: "id", Type: "bigIncrements", Comment: "Primary Key", PrimaryKey: true, AutoIncrement: true})
	}

	for _, f := range t.Fields {
		switch f.Type {
		case "bigIncrements", "increments":
			add(Column{Name: f.Name, Type: f.Type, Comment: f.Comment, PrimaryKey: true, AutoIncrement: true})
		case "timestamps", "nullableTimestamps":
			add(Column{Name: "created_at", Type: "timestamp", Nullable: true})
			add(Column{Name: "updated_at", Type: "timestamp", Nullable: true})
		case "softDeletes":
			add(Column{Name: "deleted_at", Type: "timestamp", Nullable: true})
		case "rememberToken":
			add(Column{Name: "remember_token", Type: "string", Nullable: true})
		case "morphs":
			add(Column{Name: f.Name + "_id", Type: "bigInteger", Comment: f.Comment, Nullable: f.Nullable})
			add(Column{Name: f.Name + "_type", Type: "string", Comment: f.Comment, Nullable: f.Nullable})
		default:
			add(Column{
				Name:        f.Name,
				Type:        f.Type,
				Comment:     f.Comment,
				Nullable:    f.Nullable,
				ParentTable: f.ParentTable,
			})
		}
	}
	return cols
}

func hasPrimaryKey(t *schema.Table) bool {
	if t.HasField("id") {
		return true
	}
	for _, f := range t.Fields {
		if f.Type == "bigIncrements" || f.Type == "increments" {
			return true
		}
	}
	return false
}
