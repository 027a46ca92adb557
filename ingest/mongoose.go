package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/morphedb/morphe/schema"
)

var mongooseTypes = map[string]schema.Type{
	"String":     schema.TypeString,
	"Number":     schema.TypeFloat,
	"Date":       schema.TypeTime,
	"Boolean":    schema.TypeBool,
	"Buffer":     schema.TypeBytes,
	"ObjectId":   schema.TypeUUID,
	"Decimal128": schema.TypeFloat,
	"Map":        schema.TypeObject,
	"Mixed":      schema.TypeUnstructured,
	"Array":      schema.TypeArray,
}

var (
	mongooseDeclRe  = regexp.MustCompile(`(?:const|let|var)\s+(\w+)\s*=\s*new\s+(?:mongoose\.)?Schema\s*\(`)
	mongooseModelRe = regexp.MustCompile(`(?:mongoose\.)?model\s*\(\s*['"](\w+)['"]\s*,\s*(\w+)`)
	mongooseRefRe   = regexp.MustCompile(`ref:\s*['"](\w+)['"]`)
)

// parseMongoose scans `new Schema({...})` declarations. The entity name
// comes from the mongoose.model registration when present, otherwise from
// the schema variable with any Schema suffix stripped. An ObjectId field
// with a ref yields a many-to-one relationship candidate against the
// referenced model's primary key.
func parseMongoose(text string) (*Fragment, error) {
	// model('Name', xSchema) registrations, keyed by schema variable.
	registered := map[string]string{}
	for _, m := range mongooseModelRe.FindAllStringSubmatch(text, -1) {
		registered[m[2]] = m[1]
	}

	frag := &Fragment{}
	for _, loc := range mongooseDeclRe.FindAllStringSubmatchIndex(text, -1) {
		varName := text[loc[2]:loc[3]]
		name := registered[varName]
		if name == "" {
			name = strings.TrimSuffix(varName, "Schema")
		}
		openBrace := strings.Index(text[loc[1]-1:], "{")
		if openBrace < 0 {
			continue
		}
		body, _, ok := balancedBlock(text, loc[1]-1+openBrace)
		if !ok {
			continue
		}
		// Mongoose documents always carry an implicit ObjectId _id.
		decl := EntityDecl{Name: name, Attributes: []schema.Attribute{
			{Name: "_id", Type: schema.TypeUUID, PrimaryKey: true, Unique: true},
		}}
		for _, entry := range topLevelEntries(body) {
			if entry[0] == "_id" {
				continue
			}
			field, val := entry[0], entry[1]
			attr := schema.Attribute{Name: field, Nullable: true}
			typeExpr := val
			if strings.HasPrefix(val, "{") {
				// Expanded form: pull type, required, unique out of the
				// field options object.
				inner, _, ok := balancedBlock(val, 0)
				if !ok {
					continue
				}
				typeExpr = ""
				for _, opt := range topLevelEntries(inner) {
					switch opt[0] {
					case "type":
						typeExpr = opt[1]
					case "required":
						attr.Nullable = !strings.HasPrefix(opt[1], "true")
					case "unique":
						attr.Unique = strings.HasPrefix(opt[1], "true")
					}
				}
				if typeExpr == "" {
					// Nested subdocument without a type key.
					attr.Type = schema.TypeObject
					decl.Attributes = append(decl.Attributes, attr)
					continue
				}
				if ref := mongooseRefRe.FindStringSubmatch(inner); ref != nil && mongooseTypeOf(typeExpr) == schema.TypeUUID {
					frag.Relations = append(frag.Relations, RelationDecl{
						SourceName:  name,
						TargetName:  ref[1],
						SourceAttr:  field,
						TargetAttr:  "_id",
						Cardinality: schema.ManyToOne,
					})
				}
			}
			attr.Type = mongooseTypeOf(typeExpr)
			decl.Attributes = append(decl.Attributes, attr)
		}
		if len(decl.Attributes) > 0 {
			frag.Entities = append(frag.Entities, decl)
		}
	}
	if len(frag.Entities) == 0 {
		return nil, fmt.Errorf("ingest: no mongoose schema declarations extracted")
	}
	return frag, nil
}

// mongooseTypeOf resolves a type expression such as String, [String],
// Schema.Types.ObjectId or mongoose.Schema.Types.Mixed.
func mongooseTypeOf(expr string) schema.Type {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "[") {
		return schema.TypeArray
	}
	if i := strings.LastIndex(expr, "."); i >= 0 {
		expr = expr[i+1:]
	}
	if t, ok := mongooseTypes[expr]; ok {
		return t
	}
	return schema.TypeUnstructured
}
