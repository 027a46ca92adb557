package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/morphedb/morphe"
	"github.com/morphedb/morphe/schema"
)

// File is one raw model-definition source.
type File struct {
	Path    string
	Content string
}

// Result is the output of ingesting a batch of files.
type Result struct {
	Model *schema.Model
	// Contributed counts the files whose content actually produced
	// entities, before cross-file de-duplication.
	Contributed int
	// Warnings records skipped files: unrecognized dialects and failed
	// extractions. The batch never aborts because of one bad file.
	Warnings []morphe.Warning
}

// Ingester merges model-definition files into one canonical model.
type Ingester struct {
	log *zap.Logger
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(ing *Ingester) {
		ing.log = log
	}
}

// New creates an Ingester.
func New(opts ...Option) *Ingester {
	ing := &Ingester{log: zap.NewNop()}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// parsed is the per-file outcome, kept slot-per-file so concurrent
// parsing cannot perturb merge order.
type parsed struct {
	fragment *Fragment
	warning  *morphe.Warning
}

// Ingest detects, parses and merges the given files. Files parse
// concurrently but merge strictly in input order, so the same file set in
// the same order always yields the same model; de-duplicated entities are
// keyed by display name with the first occurrence winning. Relationship
// endpoints re-resolve to allocated entity ids after the whole batch has
// merged; candidates that do not resolve are dropped.
func (ing *Ingester) Ingest(ctx context.Context, files []File) (*Result, error) {
	slots := make([]parsed, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i] = ing.parseFile(f)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Model: &schema.Model{}}
	byName := map[string]int{}
	var relations []RelationDecl
	for i, slot := range slots {
		if slot.warning != nil {
			res.Warnings = append(res.Warnings, *slot.warning)
			ing.log.Warn("skipping file",
				zap.String("path", files[i].Path),
				zap.String("reason", slot.warning.Message),
			)
			continue
		}
		res.Contributed++
		for _, decl := range slot.fragment.Entities {
			if _, ok := byName[decl.Name]; ok {
				// First occurrence wins across files.
				continue
			}
			byName[decl.Name] = len(res.Model.Entities)
			res.Model.Entities = append(res.Model.Entities, schema.Entity{
				ID:         uuid.NewString(),
				Name:       decl.Name,
				Attributes: decl.Attributes,
			})
		}
		relations = append(relations, slot.fragment.Relations...)
	}

	res.Model.Relationships = ing.resolve(relations, res.Model.Entities, byName)

	if err := schema.Validate(res.Model); err != nil {
		return nil, err
	}
	ing.log.Info("ingested model",
		zap.Int("files", len(files)),
		zap.Int("contributed", res.Contributed),
		zap.Int("entities", len(res.Model.Entities)),
		zap.Int("relationships", len(res.Model.Relationships)),
	)
	return res, nil
}

func (ing *Ingester) parseFile(f File) parsed {
	d, ok := DetectDialect(f.Content)
	if !ok {
		return parsed{warning: &morphe.Warning{
			Path:    f.Path,
			Message: "unrecognized source dialect",
		}}
	}
	frag, err := Parse(d, f.Content)
	if err != nil {
		return parsed{warning: &morphe.Warning{
			Path:    f.Path,
			Message: fmt.Sprintf("%s extraction failed: %v", d, err),
		}}
	}
	return parsed{fragment: frag}
}

// resolve turns display-name relationship candidates into id-addressed
// relationships. A candidate whose source side does not fully resolve is
// dropped; a missing target attribute falls back to the target's primary
// key before giving up. Exact duplicates collapse.
func (ing *Ingester) resolve(candidates []RelationDecl, entities []schema.Entity, byName map[string]int) []schema.Relationship {
	var out []schema.Relationship
	seen := map[schema.Relationship]bool{}
	for _, c := range candidates {
		si, ok := byName[c.SourceName]
		if !ok {
			continue
		}
		ti, ok := byName[c.TargetName]
		if !ok {
			continue
		}
		src, tgt := &entities[si], &entities[ti]
		if _, ok := src.Attribute(c.SourceAttr); !ok {
			continue
		}
		targetAttr := c.TargetAttr
		if _, ok := tgt.Attribute(targetAttr); !ok {
			pk := tgt.PrimaryKey()
			if len(pk) == 0 {
				continue
			}
			targetAttr = pk[0].Name
		}
		r := schema.Relationship{
			SourceID:    src.ID,
			TargetID:    tgt.ID,
			SourceAttr:  c.SourceAttr,
			TargetAttr:  targetAttr,
			Cardinality: c.Cardinality,
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
