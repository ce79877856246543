// Package loader reads the inputs of a synthesis run: entity descriptions,
// the thing catalog and the primitive vocabulary. YAML and JSON are both
// accepted; field order is preserved.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"db-blueprint/internal/schema"
)

// LoadEntities reads every file matched by paths (plain paths or glob
// patterns) in order. Matches of one pattern are read in lexical order.
func LoadEntities(paths []string) ([]schema.Entity, error) {
	var entities []schema.Entity
	for _, pattern := range paths {
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad entity path %q: %w", pattern, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no entity files match %q", pattern)
		}
		sort.Strings(files)

		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("read entities: %w", err)
			}
			parsed, err := ParseEntities(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			entities = append(entities, parsed...)
		}
	}
	return entities, nil
}

// ParseEntities decodes a mapping of entity name to a mapping of field name
// to type token:
//
//	Book:
//	  title: Text
//	  author: Person
//
// A token given as a list ("author: [Person, Organization]") uses its first
// element.
func ParseEntities(data []byte) ([]schema.Entity, error) {
	root, err := document(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: entities must be a mapping of entity name to fields", root.Line)
	}

	var entities []schema.Entity
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		entity := schema.Entity{Name: key.Value}

		switch value.Kind {
		case yaml.MappingNode:
			for j := 0; j+1 < len(value.Content); j += 2 {
				token, err := tokenOf(value.Content[j+1])
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", key.Value, value.Content[j].Value, err)
				}
				entity.Fields = append(entity.Fields, schema.FieldSpec{Name: value.Content[j].Value, Token: token})
			}
		case yaml.ScalarNode:
			if value.Tag != "!!null" {
				return nil, fmt.Errorf("line %d: fields of %s must be a mapping", value.Line, key.Value)
			}
		default:
			return nil, fmt.Errorf("line %d: fields of %s must be a mapping", value.Line, key.Value)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func tokenOf(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		if len(n.Content) > 0 && n.Content[0].Kind == yaml.ScalarNode {
			return n.Content[0].Value, nil
		}
	}
	return "", fmt.Errorf("line %d: type token must be a string or a list of strings", n.Line)
}

// LoadCatalog reads a thing catalog file. A read failure is a
// MissingCollaboratorError.
func LoadCatalog(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &schema.MissingCollaboratorError{Name: "catalog", Err: err}
	}
	names, err := ParseCatalog(data)
	if err != nil {
		return nil, &schema.MissingCollaboratorError{Name: "catalog", Err: fmt.Errorf("%s: %w", path, err)}
	}
	return names, nil
}

// ParseCatalog accepts a list of names, a mapping with a "things" list, or
// any other mapping whose keys are the names.
func ParseCatalog(data []byte) ([]string, error) {
	root, err := document(data)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}

	switch root.Kind {
	case yaml.SequenceNode:
		return scalars(root)
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value == "things" && root.Content[i+1].Kind == yaml.SequenceNode {
				return scalars(root.Content[i+1])
			}
		}
		names := make([]string, 0, len(root.Content)/2)
		for i := 0; i+1 < len(root.Content); i += 2 {
			names = append(names, root.Content[i].Value)
		}
		return names, nil
	}
	return nil, fmt.Errorf("line %d: catalog must be a list or a mapping", root.Line)
}

// LoadVocabularyTypes reads a list of primitive type names.
func LoadVocabularyTypes(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &schema.MissingCollaboratorError{Name: "vocabulary", Err: err}
	}
	root, err := document(data)
	if err != nil {
		return nil, &schema.MissingCollaboratorError{Name: "vocabulary", Err: err}
	}
	if root == nil || root.Kind != yaml.SequenceNode {
		return nil, &schema.MissingCollaboratorError{Name: "vocabulary", Err: fmt.Errorf("%s: expected a list of type names", path)}
	}
	return scalars(root)
}

// BuildVocabulary creates the vocabulary and applies aliases (alias ->
// entry) and canonicalization rules (entry -> rule name).
func BuildVocabulary(types []string, aliases, rules map[string]string) (*schema.Vocabulary, error) {
	if len(types) == 0 {
		return nil, &schema.MissingCollaboratorError{Name: "vocabulary", Err: errors.New("no primitive types configured")}
	}

	v := schema.NewVocabulary(types)
	for _, entry := range sortedKeys(rules) {
		rule, err := schema.ParseRule(rules[entry])
		if err != nil {
			return nil, fmt.Errorf("vocabulary rule for %s: %w", entry, err)
		}
		if err := v.SetRule(entry, rule); err != nil {
			return nil, err
		}
	}
	for _, alias := range sortedKeys(aliases) {
		if err := v.SetAlias(alias, aliases[alias]); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func document(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

func scalars(seq *yaml.Node) ([]string, error) {
	out := make([]string, 0, len(seq.Content))
	for _, n := range seq.Content {
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: expected a string", n.Line)
		}
		out = append(out, n.Value)
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
