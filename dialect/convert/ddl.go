package convert

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/morphedb/morphe/dialect"
	"github.com/morphedb/morphe/schema"
)

// ddlWriter synthesizes dialect DDL from a canonical model, recording one
// mapping explanation per attribute as it goes.
type ddlWriter struct {
	model        *schema.Model
	source       string
	target       string
	sb           strings.Builder
	explanations []Explanation
}

func newDDLWriter(m *schema.Model, source, target string) *ddlWriter {
	return &ddlWriter{model: m, source: source, target: target}
}

func (w *ddlWriter) render() *Result {
	w.explanations = make([]Explanation, 0, attributeCount(w.model))
	for i := range w.model.Entities {
		if i > 0 {
			w.sb.WriteString("\n")
		}
		e := &w.model.Entities[i]
		if w.target == dialect.MongoDB {
			w.renderCollection(e)
		} else {
			w.renderTable(e)
		}
	}
	return &Result{DDL: w.sb.String(), Explanations: w.explanations}
}

func (w *ddlWriter) renderTable(e *schema.Entity) {
	table := tableName(e)
	fmt.Fprintf(&w.sb, "CREATE TABLE %s (\n", w.quote(table))

	pk := e.PrimaryKey()
	var lines []string
	for _, a := range e.Attributes {
		lines = append(lines, "  "+w.columnDef(e, a, len(pk)))
	}
	if len(pk) > 1 {
		cols := make([]string, len(pk))
		for i, a := range pk {
			cols[i] = w.quote(columnName(a.Name))
		}
		lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", strings.Join(cols, ", ")))
	}
	for _, r := range w.model.Relationships {
		if r.SourceID != e.ID {
			continue
		}
		target, ok := w.model.Entity(r.TargetID)
		if !ok {
			continue
		}
		col := columnName(r.SourceAttr)
		lines = append(lines, fmt.Sprintf(
			"  CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			w.quote(fmt.Sprintf("fk_%s_%s", table, col)),
			w.quote(col),
			w.quote(tableName(target)),
			w.quote(columnName(r.TargetAttr)),
		))
	}
	w.sb.WriteString(strings.Join(lines, ",\n"))
	w.sb.WriteString("\n);\n")
}

// columnDef renders one column line and records its explanation.
// pkCount distinguishes a single identity column from a composite key,
// which renders as a table-level constraint instead.
func (w *ddlWriter) columnDef(e *schema.Entity, a schema.Attribute, pkCount int) string {
	col := columnName(a.Name)

	if a.PrimaryKey && pkCount == 1 {
		idiom, reason := w.identityIdiom(a)
		w.explain(e, a, idiom, reason)
		return fmt.Sprintf("%s %s", w.quote(col), idiom)
	}

	sqlType, ok := Lookup(w.source, w.target, a.Type)
	reason := fmt.Sprintf("mapped %s to %s by the %s-to-%s table", a.Type, sqlType, w.source, w.target)
	if !ok {
		sqlType = GenericType
		reason = fmt.Sprintf("no %s-to-%s mapping for %s; using generic string type", w.source, w.target, a.Type)
	}
	def := fmt.Sprintf("%s %s", w.quote(col), sqlType)
	if a.PrimaryKey {
		def += " NOT NULL"
	} else {
		if !a.Nullable {
			def += " NOT NULL"
		}
		if a.Unique {
			def += " UNIQUE"
			reason += "; unique constraint preserved"
		}
	}
	w.explain(e, a, sqlType, reason)
	return def
}

// identityIdiom renders the target dialect's auto-increment or identity
// form for a single-column primary key. Integer keys get the native
// identity column; UUID keys get the dialect's generated-UUID idiom;
// anything else keeps its mapped type with an inline PRIMARY KEY.
func (w *ddlWriter) identityIdiom(a schema.Attribute) (idiom, reason string) {
	switch {
	case a.Type == schema.TypeInt:
		switch w.target {
		case dialect.MySQL:
			idiom = "INT AUTO_INCREMENT PRIMARY KEY"
		case dialect.Postgres:
			idiom = "SERIAL PRIMARY KEY"
		case dialect.SQLite:
			idiom = "INTEGER PRIMARY KEY AUTOINCREMENT"
		}
		reason = fmt.Sprintf("primary key rendered with the %s identity idiom", w.target)
	case a.Type == schema.TypeUUID:
		switch w.target {
		case dialect.MySQL:
			idiom = "CHAR(36) PRIMARY KEY"
		case dialect.Postgres:
			idiom = "UUID PRIMARY KEY DEFAULT gen_random_uuid()"
		case dialect.SQLite:
			idiom = "TEXT PRIMARY KEY"
		}
		reason = fmt.Sprintf("uuid primary key rendered with the %s generated-key idiom", w.target)
	default:
		mapped, ok := Lookup(w.source, w.target, a.Type)
		if !ok {
			mapped = GenericType
		}
		idiom = mapped + " PRIMARY KEY"
		reason = fmt.Sprintf("primary key kept its mapped type %s", mapped)
	}
	return idiom, reason
}

// renderCollection emits a createCollection call with a $jsonSchema
// validator, plus unique indexes for primary-key and unique attributes.
// MongoDB has no foreign keys; relationships stay application-enforced.
func (w *ddlWriter) renderCollection(e *schema.Entity) {
	coll := tableName(e)
	var required []string
	var props []string
	var uniqueCols []string
	for _, a := range e.Attributes {
		bsonType, ok := Lookup(w.source, w.target, a.Type)
		reason := fmt.Sprintf("BSON type for the %s document validator", coll)
		if !ok {
			bsonType = "string"
			reason = fmt.Sprintf("no %s-to-%s mapping for %s; validating as string", w.source, w.target, a.Type)
		}
		col := columnName(a.Name)
		props = append(props, fmt.Sprintf("        %s: { bsonType: %q }", col, bsonType))
		if !a.Nullable || a.PrimaryKey {
			required = append(required, fmt.Sprintf("%q", col))
		}
		if a.PrimaryKey || a.Unique {
			uniqueCols = append(uniqueCols, col)
		}
		w.explain(e, a, bsonType, reason)
	}

	fmt.Fprintf(&w.sb, "db.createCollection(%q, {\n", coll)
	w.sb.WriteString("  validator: {\n    $jsonSchema: {\n      bsonType: \"object\",\n")
	fmt.Fprintf(&w.sb, "      required: [%s],\n", strings.Join(required, ", "))
	w.sb.WriteString("      properties: {\n")
	w.sb.WriteString(strings.Join(props, ",\n"))
	w.sb.WriteString("\n      }\n    }\n  }\n});\n")
	for _, col := range uniqueCols {
		fmt.Fprintf(&w.sb, "db.%s.createIndex({ %s: 1 }, { unique: true });\n", coll, col)
	}
}

func (w *ddlWriter) explain(e *schema.Entity, a schema.Attribute, targetType, reason string) {
	w.explanations = append(w.explanations, Explanation{
		Entity:     e.Name,
		Attribute:  a.Name,
		SourceType: a.Type.String(),
		TargetType: targetType,
		Reason:     reason,
	})
}

// quote wraps an identifier in the target dialect's quoting style.
func (w *ddlWriter) quote(ident string) string {
	if w.target == dialect.MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

func tableName(e *schema.Entity) string {
	return inflect.Underscore(e.Name)
}

func columnName(name string) string {
	return inflect.Underscore(name)
}

func attributeCount(m *schema.Model) int {
	n := 0
	for _, e := range m.Entities {
		n += len(e.Attributes)
	}
	return n
}
