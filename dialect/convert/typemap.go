package convert

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/morphedb/morphe/schema"
)

// GenericType is the variable-length-string fallback used when a
// dialect-pair table has no entry for a logical type. An unmapped type
// degrades to it and records the fallback in the explanation; it never
// aborts a conversion.
const GenericType = "VARCHAR(255)"

//go:embed typemap.yaml
var rawTables []byte

type pair struct {
	source, target string
}

// tables holds the per-pair logical-type lookup tables. Loaded once at
// process start from the embedded document and never mutated.
var tables = mustLoadTables(rawTables)

type tableDoc struct {
	Pairs []struct {
		Source string            `yaml:"source"`
		Target string            `yaml:"target"`
		Types  map[string]string `yaml:"types"`
	} `yaml:"pairs"`
}

func mustLoadTables(raw []byte) map[pair]map[schema.Type]string {
	var doc tableDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("convert: parsing embedded type tables: %v", err))
	}
	loaded := make(map[pair]map[schema.Type]string, len(doc.Pairs))
	for _, p := range doc.Pairs {
		types := make(map[schema.Type]string, len(p.Types))
		for name, rendered := range p.Types {
			t := schema.TypeFromName(name)
			if !t.Valid() {
				panic(fmt.Sprintf("convert: type table %s->%s names unknown logical type %q", p.Source, p.Target, name))
			}
			types[t] = rendered
		}
		loaded[pair{p.Source, p.Target}] = types
	}
	return loaded
}

// HasTable reports whether a deterministic mapping table exists for the
// normalized dialect pair.
func HasTable(source, target string) bool {
	_, ok := tables[pair{source, target}]
	return ok
}

// Lookup resolves a logical type through the table for the given pair.
// The second return value is false when the table has no entry, in which
// case the caller degrades to GenericType.
func Lookup(source, target string, t schema.Type) (string, bool) {
	types, ok := tables[pair{source, target}]
	if !ok {
		return "", false
	}
	rendered, ok := types[t]
	return rendered, ok
}
