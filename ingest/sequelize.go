package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/morphedb/morphe/schema"
)

var sequelizeTypes = map[string]schema.Type{
	"STRING":   schema.TypeString,
	"TEXT":     schema.TypeString,
	"CHAR":     schema.TypeString,
	"CITEXT":   schema.TypeString,
	"INTEGER":  schema.TypeInt,
	"BIGINT":   schema.TypeInt,
	"SMALLINT": schema.TypeInt,
	"TINYINT":  schema.TypeInt,
	"FLOAT":    schema.TypeFloat,
	"DOUBLE":   schema.TypeFloat,
	"DECIMAL":  schema.TypeFloat,
	"REAL":     schema.TypeFloat,
	"BOOLEAN":  schema.TypeBool,
	"DATE":     schema.TypeTime,
	"DATEONLY": schema.TypeTime,
	"TIME":     schema.TypeTime,
	"UUID":     schema.TypeUUID,
	"UUIDV4":   schema.TypeUUID,
	"JSON":     schema.TypeUnstructured,
	"JSONB":    schema.TypeUnstructured,
	"ARRAY":    schema.TypeArray,
	"BLOB":     schema.TypeBytes,
}

var (
	sequelizeDeclRe     = regexp.MustCompile(`(?:\w+)\s*\.\s*define\s*\(\s*['"](\w+)['"]\s*,\s*\{`)
	sequelizeInitDeclRe = regexp.MustCompile(`(\w+)\.init\s*\(\s*\{`)
	sequelizeTypeRe     = regexp.MustCompile(`DataTypes\.(\w+)|Sequelize\.(\w+)`)
	sequelizeRefsRe     = regexp.MustCompile(`references:\s*\{([^}]*)\}`)
	sequelizeModelRe    = regexp.MustCompile(`model:\s*['"](\w+)['"]`)
	sequelizeKeyRe      = regexp.MustCompile(`key:\s*['"](\w+)['"]`)
	sequelizeFKRe       = regexp.MustCompile(`(\w+)\s*\.\s*belongsTo\s*\(\s*(\w+)\s*,[^)]*foreignKey:\s*['"](\w+)['"]`)
)

// parseSequelize scans sequelize.define('name', {...}) calls and
// Model.init({...}) class definitions. Relationship candidates come from
// per-field `references` metadata and from belongsTo associations that
// name an explicit foreignKey; associations without one do not carry
// enough metadata to place the key and are left as plain attributes.
func parseSequelize(text string) (*Fragment, error) {
	frag := &Fragment{}
	seen := map[string]bool{}

	scan := func(name string, bodyStart int) {
		body, _, ok := balancedBlock(text, bodyStart)
		if !ok || seen[name] {
			return
		}
		decl := EntityDecl{Name: name}
		for _, entry := range topLevelEntries(body) {
			field, val := entry[0], entry[1]
			tm := sequelizeTypeRe.FindStringSubmatch(val)
			if tm == nil {
				continue
			}
			typeName := tm[1]
			if typeName == "" {
				typeName = tm[2]
			}
			logical, ok := sequelizeTypes[typeName]
			if !ok {
				logical = schema.TypeUnstructured
			}
			attr := schema.Attribute{
				Name:       field,
				Type:       logical,
				PrimaryKey: strings.Contains(val, "primaryKey: true"),
				Nullable:   !strings.Contains(val, "allowNull: false"),
				Unique:     strings.Contains(val, "unique: true"),
			}
			if attr.PrimaryKey {
				attr.Nullable = false
			}
			decl.Attributes = append(decl.Attributes, attr)

			if refs := sequelizeRefsRe.FindStringSubmatch(val); refs != nil {
				model := sequelizeModelRe.FindStringSubmatch(refs[1])
				key := sequelizeKeyRe.FindStringSubmatch(refs[1])
				if model != nil && key != nil {
					frag.Relations = append(frag.Relations, RelationDecl{
						SourceName:  name,
						TargetName:  model[1],
						SourceAttr:  field,
						TargetAttr:  key[1],
						Cardinality: schema.ManyToOne,
					})
				}
			}
		}
		if len(decl.Attributes) > 0 {
			seen[name] = true
			frag.Entities = append(frag.Entities, decl)
		}
	}

	for _, loc := range sequelizeDeclRe.FindAllStringSubmatchIndex(text, -1) {
		scan(text[loc[2]:loc[3]], loc[1]-1)
	}
	for _, loc := range sequelizeInitDeclRe.FindAllStringSubmatchIndex(text, -1) {
		scan(text[loc[2]:loc[3]], loc[1]-1)
	}

	// A.belongsTo(B, { foreignKey: 'b_id' }): A owns the key.
	for _, m := range sequelizeFKRe.FindAllStringSubmatch(text, -1) {
		frag.Relations = append(frag.Relations, RelationDecl{
			SourceName:  m[1],
			TargetName:  m[2],
			SourceAttr:  m[3],
			Cardinality: schema.ManyToOne,
		})
	}

	if len(frag.Entities) == 0 {
		return nil, fmt.Errorf("ingest: no sequelize model definitions extracted")
	}
	return frag, nil
}
