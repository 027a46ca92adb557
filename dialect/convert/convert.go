// Package convert turns a canonical model into another database dialect's
// DDL. Conversion is table-driven for clean relational shapes and
// delegates to the generative collaborator when the translation is
// inherently lossy (a document-dialect endpoint) or the graph exceeds the
// complexity a blind lookup can serve; any collaborator failure degrades
// back to the deterministic path.
package convert

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/morphedb/morphe"
	"github.com/morphedb/morphe/assist"
	"github.com/morphedb/morphe/dialect"
	"github.com/morphedb/morphe/schema"
)

// Complexity thresholds above which the table-driven path is not trusted:
// it assumes a clean relational shape, and larger or looser graphs need a
// reasoning pass instead of blind lookup.
const (
	maxDeterministicRelationships = 10
	maxDeterministicEntities      = 15
)

// Explanation is one per-attribute mapping record. The collaborator
// returns the same shape, so both paths produce interchangeable output.
type Explanation = assist.Explanation

// Result is the output of a conversion: the rendered DDL plus one
// explanation per attribute.
type Result struct {
	DDL          string        `json:"ddl"`
	Explanations []Explanation `json:"explanations"`
}

// Converter converts canonical models between dialects. The zero value
// (via New) converts deterministically; attach a provider to enable the
// AI-assisted path.
type Converter struct {
	provider assist.Provider
	log      *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithProvider sets the generative collaborator used for AI-assisted
// conversions. Without one, every conversion takes the deterministic path.
func WithProvider(p assist.Provider) Option {
	return func(c *Converter) {
		c.provider = p
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		c.log = log
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert renders the model as DDL for the target dialect. Source and
// target tags are normalized case-insensitively and must differ after
// normalization. The model is validated at this boundary. An empty model
// yields empty DDL and an empty explanation list.
func (c *Converter) Convert(ctx context.Context, m *schema.Model, sourceDialect, targetDialect string) (*Result, error) {
	source, err := dialect.Normalize(sourceDialect)
	if err != nil {
		return nil, err
	}
	target, err := dialect.Normalize(targetDialect)
	if err != nil {
		return nil, err
	}
	if source == target {
		return nil, morphe.NewInvalidRequestError(
			fmt.Sprintf("source and target dialect are both %q", source),
			morphe.ErrSameDialect,
		)
	}
	if err := schema.Validate(m); err != nil {
		return nil, err
	}
	if len(m.Entities) == 0 {
		return &Result{DDL: "", Explanations: []Explanation{}}, nil
	}

	if c.needsAssist(m, source, target) {
		if res, err := c.assisted(ctx, m, target); err == nil {
			return res, nil
		} else {
			// Recoverable by design: the deterministic path is the retry
			// policy. Surface the failure only if that path cannot run.
			c.log.Warn("assisted conversion failed, falling back to deterministic mapping",
				zap.String("source", source),
				zap.String("target", target),
				zap.Error(err),
			)
			if !HasTable(source, target) {
				return nil, morphe.NewCollaboratorError(err)
			}
		}
	}
	return c.deterministic(m, source, target)
}

// needsAssist decides the conversion strategy. The document dialect on
// either end makes structural translation lossy and ambiguous, and graphs
// past the complexity thresholds are out of the lookup table's depth.
func (c *Converter) needsAssist(m *schema.Model, source, target string) bool {
	if c.provider == nil || !c.provider.IsConfigured() {
		return false
	}
	if source == dialect.MongoDB || target == dialect.MongoDB {
		return true
	}
	return len(m.Relationships) > maxDeterministicRelationships ||
		len(m.Entities) > maxDeterministicEntities
}

// assisted makes the one-shot collaborator call. There is no retry loop;
// the caller falls back to the deterministic path on any error.
func (c *Converter) assisted(ctx context.Context, m *schema.Model, target string) (*Result, error) {
	prompt, err := assist.BuildConversionPrompt(m, target)
	if err != nil {
		return nil, err
	}
	raw, err := c.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	resp, err := assist.ParseResponse(raw)
	if err != nil {
		return nil, err
	}
	c.log.Debug("assisted conversion succeeded",
		zap.String("target", target),
		zap.Int("explanations", len(resp.Explanations)),
	)
	return &Result{DDL: resp.DDL, Explanations: resp.Explanations}, nil
}

// deterministic renders the model through the dialect-pair lookup table.
func (c *Converter) deterministic(m *schema.Model, source, target string) (*Result, error) {
	if !HasTable(source, target) {
		return nil, morphe.NewInvalidRequestError(
			fmt.Sprintf("no type-mapping table for %s to %s", source, target),
			morphe.ErrUnsupportedDialect,
		)
	}
	w := newDDLWriter(m, source, target)
	return w.render(), nil
}
