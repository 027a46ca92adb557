package schema

import (
	"fmt"

	"github.com/morphedb/morphe"
)

// Validate checks the structural integrity of a canonical model. Checks
// run in classes, in order:
//
//  1. every entity has a non-empty id and a non-empty attribute set
//  2. every attribute has a non-empty name and a recognized logical type,
//     and primary-key attributes are not nullable
//  3. no duplicate attribute names within one entity
//  4. every relationship's source and target resolve to an existing
//     entity and an existing attribute on that entity
//
// The first class that produces violations short-circuits the pass, but
// all violations of that class are collected and returned together.
// Validation is pure: it never repairs or drops invalid parts.
//
// Every component re-validates externally supplied models at its own
// boundary; ingestion, conversion and diffing all gate on this function.
func Validate(m *Model) error {
	if m == nil {
		return morphe.NewInvalidRequestError("model is nil", nil)
	}
	for _, check := range []func(*Model) []*morphe.ValidationError{
		checkEntities,
		checkAttributes,
		checkDuplicateAttributes,
		checkRelationships,
	} {
		if errs := check(m); len(errs) > 0 {
			return morphe.NewValidationErrors(errs...)
		}
	}
	return nil
}

func checkEntities(m *Model) []*morphe.ValidationError {
	var errs []*morphe.ValidationError
	for _, e := range m.Entities {
		if e.ID == "" {
			errs = append(errs, &morphe.ValidationError{
				Entity:  e.Name,
				Message: "entity has empty id",
			})
		}
		if len(e.Attributes) == 0 {
			errs = append(errs, &morphe.ValidationError{
				Entity:  locate(e),
				Message: "entity has no attributes",
			})
		}
	}
	return errs
}

func checkAttributes(m *Model) []*morphe.ValidationError {
	var errs []*morphe.ValidationError
	for _, e := range m.Entities {
		for _, a := range e.Attributes {
			if a.Name == "" {
				errs = append(errs, &morphe.ValidationError{
					Entity:  locate(e),
					Message: "attribute has empty name",
				})
				continue
			}
			if !a.Type.Valid() {
				errs = append(errs, &morphe.ValidationError{
					Entity:    locate(e),
					Attribute: a.Name,
					Message:   "unrecognized logical type",
				})
			}
			if a.PrimaryKey && a.Nullable {
				errs = append(errs, &morphe.ValidationError{
					Entity:    locate(e),
					Attribute: a.Name,
					Message:   "primary key cannot be nullable",
				})
			}
		}
	}
	return errs
}

func checkDuplicateAttributes(m *Model) []*morphe.ValidationError {
	var errs []*morphe.ValidationError
	for _, e := range m.Entities {
		seen := make(map[string]bool, len(e.Attributes))
		for _, a := range e.Attributes {
			if seen[a.Name] {
				errs = append(errs, &morphe.ValidationError{
					Entity:    locate(e),
					Attribute: a.Name,
					Message:   "duplicate attribute name",
				})
			}
			seen[a.Name] = true
		}
	}
	return errs
}

func checkRelationships(m *Model) []*morphe.ValidationError {
	var errs []*morphe.ValidationError
	byID := make(map[string]*Entity, len(m.Entities))
	for i := range m.Entities {
		byID[m.Entities[i].ID] = &m.Entities[i]
	}
	for _, r := range m.Relationships {
		src, ok := byID[r.SourceID]
		if !ok {
			errs = append(errs, &morphe.ValidationError{
				Entity:  r.SourceID,
				Message: fmt.Sprintf("relationship source entity %q does not exist", r.SourceID),
			})
			continue
		}
		tgt, ok := byID[r.TargetID]
		if !ok {
			errs = append(errs, &morphe.ValidationError{
				Entity:  r.TargetID,
				Message: fmt.Sprintf("relationship target entity %q does not exist", r.TargetID),
			})
			continue
		}
		if _, ok := src.Attribute(r.SourceAttr); !ok {
			errs = append(errs, &morphe.ValidationError{
				Entity:    src.Name,
				Attribute: r.SourceAttr,
				Message:   "relationship references non-existent source attribute",
			})
		}
		if _, ok := tgt.Attribute(r.TargetAttr); !ok {
			errs = append(errs, &morphe.ValidationError{
				Entity:    tgt.Name,
				Attribute: r.TargetAttr,
				Message:   "relationship references non-existent target attribute",
			})
		}
	}
	return errs
}

// locate prefers the display name for error context, falling back to id.
func locate(e Entity) string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}
