// Package emitter renders emission artifacts into migration files.
package emitter

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"db-blueprint/internal/dialect"
	"db-blueprint/internal/naming"
	"db-blueprint/internal/schema"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Format selects how artifacts are rendered.
type Format string

const (
	// FormatSQL renders dialect DDL.
	FormatSQL Format = "sql"
	// FormatLaravel renders Laravel migration classes.
	FormatLaravel Format = "laravel"
)

// ParseFormat parses "sql" or "laravel".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSQL, FormatLaravel:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want sql or laravel)", s)
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	if f == FormatLaravel {
		return "php"
	}
	return "sql"
}

type Options struct {
	Dir     string
	Format  Format
	Dialect dialect.Dialect // required for FormatSQL
	DryRun  bool            // collect file names without writing
}

// FileEmitter writes one file per artifact into Options.Dir.
type FileEmitter struct {
	opts   Options
	logger *zap.Logger
	files  []string
}

// New validates the options. Unless DryRun is set the output directory must
// already exist.
func New(opts Options, logger *zap.Logger) (*FileEmitter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Format == "" {
		opts.Format = FormatLaravel
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.Format == FormatSQL && opts.Dialect == nil {
		return nil, fmt.Errorf("sql output needs a dialect")
	}

	if !opts.DryRun {
		info, err := os.Stat(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("migrations folder does not exist (%s), did you run this in the correct folder? %w", opts.Dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("migrations path %s is not a directory", opts.Dir)
		}
	}

	return &FileEmitter{opts: opts, logger: logger}, nil
}

// Filename returns the artifact's file name, prefixed by its timestamp so
// that files sort in emission order.
func Filename(a schema.Artifact, ext string) string {
	stamp := a.Timestamp.Format("2006_01_02_150405")
	if a.Phase == schema.PhaseForeignKeys {
		return fmt.Sprintf("%s_add_foreign_keys_to_%s_table.%s", stamp, a.Table.Name, ext)
	}
	return fmt.Sprintf("%s_create_%s_table.%s", stamp, a.Table.Name, ext)
}

// Emit renders a and writes it to the output directory.
func (e *FileEmitter) Emit(a schema.Artifact) error {
	name := Filename(a, e.opts.Format.Ext())

	if !e.opts.DryRun {
		content, err := e.Render(a)
		if err != nil {
			return err
		}
		path := filepath.Join(e.opts.Dir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	e.files = append(e.files, name)
	e.logger.Info("migration file created",
		zap.String("file", name),
		zap.Int("migration", len(e.files)),
		zap.Bool("dry_run", e.opts.DryRun),
	)
	return nil
}

// Files returns the names of the files emitted so far.
func (e *FileEmitter) Files() []string {
	out := make([]string, len(e.files))
	copy(out, e.files)
	return out
}

// Render returns the file content of a.
func (e *FileEmitter) Render(a schema.Artifact) ([]byte, error) {
	var (
		name string
		data interface{}
	)

	if e.opts.Format == FormatSQL {
		name = "artifact.sql.tmpl"
		data = sqlData{
			Phase:      a.Phase.String(),
			TableName:  a.Table.Name,
			Dialect:    e.opts.Dialect.Name(),
			Ordinal:    a.Ordinal,
			Statements: dialect.ArtifactSQL(e.opts.Dialect, a),
		}
	} else {
		name = "create_table.php.tmpl"
		if a.Phase == schema.PhaseForeignKeys {
			name = "add_foreign_keys.php.tmpl"
		}
		data = newLaravelData(a)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s for %s: %w", name, a.Table.Name, err)
	}
	return buf.Bytes(), nil
}

type sqlData struct {
	Phase      string
	TableName  string
	Dialect    string
	Ordinal    int
	Statements []string
}

type laravelData struct {
	ClassName   string
	TableName   string
	HasKey      bool
	Columns     []string
	ForeignKeys []schema.Field
}

func newLaravelData(a schema.Artifact) laravelData {
	t := a.Table
	data := laravelData{TableName: t.Name}

	if a.Phase == schema.PhaseForeignKeys {
		data.ClassName = "AddForeignKeysTo" + naming.Pascal(t.Name) + "Table"
		data.ForeignKeys = t.ForeignKeyFields()
		return data
	}

	data.ClassName = "Create" + naming.Pascal(t.Name) + "Table"
	for _, f := range t.Fields {
		if f.Name == "id" || f.Type == "bigIncrements" || f.Type == "increments" {
			data.HasKey = true
		}
		data.Columns = append(data.Columns, laravelColumn(f))
	}
	return data
}

// laravelColumn renders one schema builder call.
func laravelColumn(f schema.Field) string {
	switch f.Type {
	case "timestamps", "nullableTimestamps", "softDeletes", "rememberToken":
		return fmt.Sprintf("$table->%s();", f.Type)
	case "morphs":
		return fmt.Sprintf("$table->morphs('%s');", phpString(f.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "$table->%s('%s')", f.Type, phpString(f.Name))
	if f.IsForeignKey() {
		b.WriteString("->unsigned()")
	}
	if f.Nullable {
		b.WriteString("->nullable()")
	}
	if f.Comment != "" {
		fmt.Fprintf(&b, "->comment('%s')", phpString(f.Comment))
	}
	b.WriteString(";")
	return b.String()
}

func phpString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
