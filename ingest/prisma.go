package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/morphedb/morphe/schema"
)

// prismaTypes maps Prisma scalar types to logical types. A field whose
// type is not listed here refers to another model (a relation field) or
// an enum, both handled separately.
var prismaTypes = map[string]schema.Type{
	"String":   schema.TypeString,
	"Int":      schema.TypeInt,
	"BigInt":   schema.TypeInt,
	"Float":    schema.TypeFloat,
	"Decimal":  schema.TypeFloat,
	"Boolean":  schema.TypeBool,
	"DateTime": schema.TypeTime,
	"Json":     schema.TypeUnstructured,
	"Bytes":    schema.TypeBytes,
}

var (
	prismaModelDeclRe = regexp.MustCompile(`(?m)^\s*model\s+(\w+)\s*\{`)
	prismaFieldRe     = regexp.MustCompile(`^(\w+)\s+(\w+)(\[\])?(\?)?\s*(.*)$`)
	prismaRelationRe  = regexp.MustCompile(`@relation\s*\(\s*fields:\s*\[\s*(\w+)[^\]]*\]\s*,\s*references:\s*\[\s*(\w+)[^\]]*\]`)
)

// parsePrisma scans `model Name { ... }` blocks. Field flags come from
// the attribute markers on the same line: @id, @unique, and the `?`
// optional suffix. A model-typed field with a full @relation(fields,
// references) yields a relationship candidate; the list-typed inverse
// side carries no foreign key and is skipped.
func parsePrisma(text string) (*Fragment, error) {
	frag := &Fragment{}
	for _, loc := range prismaModelDeclRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		openBrace := strings.Index(text[loc[0]:], "{") + loc[0]
		body, _, ok := balancedBlock(text, openBrace)
		if !ok {
			continue
		}
		decl := EntityDecl{Name: name}
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "@@") {
				continue
			}
			m := prismaFieldRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			fieldName, typeName, isList, optional, rest := m[1], m[2], m[3] != "", m[4] != "", m[5]

			if logical, ok := prismaTypes[typeName]; ok {
				if isList {
					logical = schema.TypeArray
				}
				decl.Attributes = append(decl.Attributes, schema.Attribute{
					Name:       fieldName,
					Type:       logical,
					PrimaryKey: strings.Contains(rest, "@id"),
					Nullable:   optional && !strings.Contains(rest, "@id"),
					Unique:     strings.Contains(rest, "@unique"),
				})
				continue
			}

			// Model-typed field: a relationship candidate only when the
			// @relation metadata names both sides of the key.
			if rel := prismaRelationRe.FindStringSubmatch(rest); rel != nil && !isList {
				frag.Relations = append(frag.Relations, RelationDecl{
					SourceName:  name,
					TargetName:  typeName,
					SourceAttr:  rel[1],
					TargetAttr:  rel[2],
					Cardinality: schema.ManyToOne,
				})
				continue
			}
			if isList {
				// Inverse side of a relation; the owning side carries it.
				continue
			}
			// Enum or bare model reference: keep the field, lose the edge.
			decl.Attributes = append(decl.Attributes, schema.Attribute{
				Name:     fieldName,
				Type:     schema.TypeObject,
				Nullable: optional,
			})
		}
		if len(decl.Attributes) > 0 {
			frag.Entities = append(frag.Entities, decl)
		}
	}
	if len(frag.Entities) == 0 {
		return nil, fmt.Errorf("ingest: no prisma model blocks extracted")
	}
	return frag, nil
}
