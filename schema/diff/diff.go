// Package diff computes structural differences between two canonical model
// snapshots for versioning and change review.
package diff

import (
	"sort"

	"github.com/morphedb/morphe"
	"github.com/morphedb/morphe/schema"
)

// EntityChange records a modified entity with its attribute sets before
// and after the change.
type EntityChange struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Before []schema.Attribute `json:"before"`
	After  []schema.Attribute `json:"after"`
}

// RelationshipChange records a modified relationship, matched by its
// (source id, target id) pair.
type RelationshipChange struct {
	Before schema.Relationship `json:"before"`
	After  schema.Relationship `json:"after"`
}

// ChangeSet is the categorized output of a diff. All collections are
// order-irrelevant sets.
type ChangeSet struct {
	EntitiesAdded    []schema.Entity `json:"entitiesAdded"`
	EntitiesRemoved  []schema.Entity `json:"entitiesRemoved"`
	EntitiesModified []EntityChange  `json:"entitiesModified"`

	RelationshipsAdded    []schema.Relationship `json:"relationshipsAdded"`
	RelationshipsRemoved  []schema.Relationship `json:"relationshipsRemoved"`
	RelationshipsModified []RelationshipChange  `json:"relationshipsModified"`
}

// Empty reports whether the change set records no differences.
func (c *ChangeSet) Empty() bool {
	return len(c.EntitiesAdded) == 0 && len(c.EntitiesRemoved) == 0 &&
		len(c.EntitiesModified) == 0 && len(c.RelationshipsAdded) == 0 &&
		len(c.RelationshipsRemoved) == 0 && len(c.RelationshipsModified) == 0
}

// pairKey matches relationships across snapshots. Multiple relationships
// sharing one (source, target) pair collapse under this key; only one is
// tracked per pair. This is a documented precision limit of the diff, not
// something the engine tries to disambiguate.
type pairKey struct {
	source, target string
}

// Diff compares two model snapshots and returns the categorized change
// set from before to after. Both inputs are validated at this boundary;
// the comparison itself is pure and insensitive to entity and
// relationship ordering within each model.
//
// Entities are matched by id, relationships by (source id, target id).
// Swapping the inputs swaps the added and removed categories, and
// diffing a model against itself yields an empty change set.
func Diff(before, after *schema.Model) (*ChangeSet, error) {
	if before == nil || after == nil {
		return nil, morphe.NewInvalidRequestError("diff requires two models", nil)
	}
	if err := schema.Validate(before); err != nil {
		return nil, err
	}
	if err := schema.Validate(after); err != nil {
		return nil, err
	}

	cs := &ChangeSet{}
	diffEntities(before, after, cs)
	diffRelationships(before, after, cs)
	return cs, nil
}

func diffEntities(before, after *schema.Model, cs *ChangeSet) {
	beforeByID := make(map[string]schema.Entity, len(before.Entities))
	for _, e := range before.Entities {
		beforeByID[e.ID] = e
	}
	afterByID := make(map[string]schema.Entity, len(after.Entities))
	for _, e := range after.Entities {
		afterByID[e.ID] = e
	}

	for _, e := range before.Entities {
		if _, ok := afterByID[e.ID]; !ok {
			cs.EntitiesRemoved = append(cs.EntitiesRemoved, e)
		}
	}
	for _, e := range after.Entities {
		prev, ok := beforeByID[e.ID]
		if !ok {
			cs.EntitiesAdded = append(cs.EntitiesAdded, e)
			continue
		}
		if !attributesEqual(prev.Attributes, e.Attributes) {
			cs.EntitiesModified = append(cs.EntitiesModified, EntityChange{
				ID:     e.ID,
				Name:   e.Name,
				Before: prev.Attributes,
				After:  e.Attributes,
			})
		}
	}
}

func diffRelationships(before, after *schema.Model, cs *ChangeSet) {
	beforeByPair := relationshipsByPair(before)
	afterByPair := relationshipsByPair(after)

	seenBefore := make(map[pairKey]bool, len(before.Relationships))
	for _, r := range before.Relationships {
		key := pairKey{r.SourceID, r.TargetID}
		if seenBefore[key] {
			continue
		}
		seenBefore[key] = true
		if _, ok := afterByPair[key]; !ok {
			cs.RelationshipsRemoved = append(cs.RelationshipsRemoved, beforeByPair[key])
		}
	}
	seen := make(map[pairKey]bool, len(after.Relationships))
	for _, r := range after.Relationships {
		key := pairKey{r.SourceID, r.TargetID}
		if seen[key] {
			continue
		}
		seen[key] = true
		prev, ok := beforeByPair[key]
		if !ok {
			cs.RelationshipsAdded = append(cs.RelationshipsAdded, r)
			continue
		}
		if prev != afterByPair[key] {
			cs.RelationshipsModified = append(cs.RelationshipsModified, RelationshipChange{
				Before: prev,
				After:  afterByPair[key],
			})
		}
	}
}

// relationshipsByPair indexes relationships by their endpoint pair. The
// first relationship wins for a duplicated pair, mirroring how removed
// relationships are reported at most once per pair.
func relationshipsByPair(m *schema.Model) map[pairKey]schema.Relationship {
	byPair := make(map[pairKey]schema.Relationship, len(m.Relationships))
	for _, r := range m.Relationships {
		key := pairKey{r.SourceID, r.TargetID}
		if _, ok := byPair[key]; !ok {
			byPair[key] = r
		}
	}
	return byPair
}

// attributesEqual compares two attribute sets by value, independent of
// declaration order.
func attributesEqual(a, b []schema.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]schema.Attribute, len(a))
	bs := make([]schema.Attribute, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Slice(as, func(i, j int) bool { return as[i].Name < as[j].Name })
	sort.Slice(bs, func(i, j int) bool { return bs[i].Name < bs[j].Name })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
