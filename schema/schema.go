// Package schema defines the canonical model: a dialect-neutral graph of
// entities, attributes and relationships shared by ingestion, conversion
// and diffing. Models are value types; transformations return new models
// and never mutate their input.
package schema

// Cardinality labels the directionality of a relationship. The source
// entity owns the foreign-key attribute.
type Cardinality string

// Supported cardinality labels.
const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToOne  Cardinality = "many-to-one"
	ManyToMany Cardinality = "many-to-many"
)

// Attribute is a single typed field of an entity. Name is unique within
// the owning entity. A primary-key attribute is never nullable in
// validated input.
type Attribute struct {
	Name       string `json:"name"`
	Type       Type   `json:"type"`
	PrimaryKey bool   `json:"primaryKey,omitempty"`
	Nullable   bool   `json:"nullable,omitempty"`
	Unique     bool   `json:"unique,omitempty"`
}

// Entity is a table or collection in the canonical graph. ID is
// caller-assigned and stable across edits; Name is the display name.
// Position is an opaque layout hint carried for external tooling and not
// interpreted by any component.
type Entity struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Attributes []Attribute `json:"attributes"`
	Position   string      `json:"position,omitempty"`
}

// Attribute returns the attribute with the given name and whether it exists.
func (e *Entity) Attribute(name string) (Attribute, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// PrimaryKey returns the entity's primary-key attributes.
func (e *Entity) PrimaryKey() []Attribute {
	var pk []Attribute
	for _, a := range e.Attributes {
		if a.PrimaryKey {
			pk = append(pk, a)
		}
	}
	return pk
}

// Relationship is a directed edge between two entities. SourceAttr names
// the foreign-key attribute on the source entity; TargetAttr names the
// referenced attribute on the target entity.
type Relationship struct {
	SourceID    string      `json:"sourceId"`
	TargetID    string      `json:"targetId"`
	SourceAttr  string      `json:"sourceAttr"`
	TargetAttr  string      `json:"targetAttr"`
	Cardinality Cardinality `json:"cardinality"`
}

// Model is the canonical schema graph: a set of entities keyed by id plus
// a set of relationships between them.
type Model struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Entity returns the entity with the given id and whether it exists.
func (m *Model) Entity(id string) (*Entity, bool) {
	for i := range m.Entities {
		if m.Entities[i].ID == id {
			return &m.Entities[i], true
		}
	}
	return nil, false
}

// EntityByName returns the first entity with the given display name and
// whether it exists.
func (m *Model) EntityByName(name string) (*Entity, bool) {
	for i := range m.Entities {
		if m.Entities[i].Name == name {
			return &m.Entities[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the model. Transformations operate on a
// clone so the input model stays immutable within a request.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	c := &Model{
		Entities:      make([]Entity, len(m.Entities)),
		Relationships: make([]Relationship, len(m.Relationships)),
	}
	copy(c.Relationships, m.Relationships)
	for i, e := range m.Entities {
		ce := e
		ce.Attributes = make([]Attribute, len(e.Attributes))
		copy(ce.Attributes, e.Attributes)
		c.Entities[i] = ce
	}
	return c
}
