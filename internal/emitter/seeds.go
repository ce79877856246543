package emitter

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"db-blueprint/internal/engine"
)

const (
	seedSuffix = "_seed.yaml"
	binaryTag  = "!!binary"
)

// seedFile is the on-disk form of a seed set. Byte slices are written as
// base64 !!binary scalars so they read back as bytes, not as int lists.
type seedFile struct {
	Table   string        `yaml:"table"`
	Columns []string      `yaml:"columns"`
	Rows    [][]yaml.Node `yaml:"rows"`
}

// SeedFilename returns the file name of a table's seed set.
func SeedFilename(table string) string {
	return table + seedSuffix
}

// WriteSeeds writes one YAML file per seed set into dir, creating dir when
// needed.
func WriteSeeds(dir string, sets []engine.SeedSet) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create seeds dir %s: %w", dir, err)
	}

	var files []string
	for _, set := range sets {
		data, err := encodeSeeds(set)
		if err != nil {
			return files, fmt.Errorf("encode seeds for %s: %w", set.Table, err)
		}
		name := SeedFilename(set.Table)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return files, fmt.Errorf("write %s: %w", name, err)
		}
		files = append(files, name)
	}
	return files, nil
}

// ReadSeeds loads the seed sets previously written for tables, in the given
// order.
func ReadSeeds(dir string, tables []string) ([]engine.SeedSet, error) {
	sets := make([]engine.SeedSet, 0, len(tables))
	for _, table := range tables {
		data, err := os.ReadFile(filepath.Join(dir, SeedFilename(table)))
		if err != nil {
			return nil, fmt.Errorf("read seeds for %s: %w", table, err)
		}
		set, err := decodeSeeds(data)
		if err != nil {
			return nil, fmt.Errorf("decode seeds for %s: %w", table, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func encodeSeeds(set engine.SeedSet) ([]byte, error) {
	file := seedFile{Table: set.Table, Columns: set.Columns, Rows: make([][]yaml.Node, len(set.Rows))}
	for i, row := range set.Rows {
		nodes := make([]yaml.Node, len(row))
		for j, v := range row {
			if b, ok := v.([]byte); ok {
				nodes[j] = yaml.Node{Kind: yaml.ScalarNode, Tag: binaryTag, Value: base64.StdEncoding.EncodeToString(b)}
				continue
			}
			if err := nodes[j].Encode(v); err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
		}
		file.Rows[i] = nodes
	}
	return yaml.Marshal(file)
}

func decodeSeeds(data []byte) (engine.SeedSet, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return engine.SeedSet{}, err
	}

	set := engine.SeedSet{Table: file.Table, Columns: file.Columns, Rows: make([][]interface{}, len(file.Rows))}
	for i, nodes := range file.Rows {
		row := make([]interface{}, len(nodes))
		for j := range nodes {
			n := &nodes[j]
			if n.Kind == yaml.ScalarNode && n.ShortTag() == binaryTag {
				b, err := base64.StdEncoding.DecodeString(n.Value)
				if err != nil {
					return engine.SeedSet{}, fmt.Errorf("line %d: %w", n.Line, err)
				}
				row[j] = b
				continue
			}
			if err := n.Decode(&row[j]); err != nil {
				return engine.SeedSet{}, fmt.Errorf("line %d: %w", n.Line, err)
			}
		}
		set.Rows[i] = row
	}
	return set, nil
}
