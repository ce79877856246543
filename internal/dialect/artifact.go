package dialect

import "db-blueprint/internal/schema"

// ArtifactSQL renders the statements of one emission artifact: the CREATE
// TABLE statement for the create phase, the ALTER TABLE statements for the
// foreign key phase.
func ArtifactSQL(d Dialect, a schema.Artifact) []string {
	if a.Phase == schema.PhaseForeignKeys {
		return d.AddForeignKeysSQL(a.Table)
	}
	return []string{d.CreateTableSQL(a.Table)}
}
