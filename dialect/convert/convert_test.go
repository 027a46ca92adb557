package convert_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphedb/morphe"
	"github.com/morphedb/morphe/dialect/convert"
	"github.com/morphedb/morphe/schema"
)

// stubProvider scripts the collaborator: a canned reply, an error, or
// unconfigured.
type stubProvider struct {
	reply      string
	err        error
	configured bool
	calls      int
}

func (p *stubProvider) Complete(_ context.Context, _ string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *stubProvider) IsConfigured() bool { return p.configured }

func userOrderModel() *schema.Model {
	return &schema.Model{
		Entities: []schema.Entity{
			{
				ID:   "ent-user",
				Name: "User",
				Attributes: []schema.Attribute{
					{Name: "id", Type: schema.TypeInt, PrimaryKey: true},
					{Name: "email", Type: schema.TypeString, Unique: true},
				},
			},
			{
				ID:   "ent-order",
				Name: "Order",
				Attributes: []schema.Attribute{
					{Name: "id", Type: schema.TypeInt, PrimaryKey: true},
					{Name: "user_id", Type: schema.TypeInt},
				},
			},
		},
		Relationships: []schema.Relationship{
			{
				SourceID:    "ent-order",
				TargetID:    "ent-user",
				SourceAttr:  "user_id",
				TargetAttr:  "id",
				Cardinality: schema.ManyToOne,
			},
		},
	}
}

func TestConvertDeterministic(t *testing.T) {
	t.Parallel()

	res, err := convert.New().Convert(context.Background(), userOrderModel(), "mysql", "postgres")
	require.NoError(t, err)

	assert.Contains(t, res.DDL, `CREATE TABLE "user"`)
	assert.Contains(t, res.DDL, `CREATE TABLE "order"`)
	// The target dialect's identity idiom, not the source's.
	assert.Contains(t, res.DDL, `"id" SERIAL PRIMARY KEY`)
	assert.NotContains(t, res.DDL, "AUTO_INCREMENT")
	assert.Contains(t, res.DDL, `"email" TEXT NOT NULL UNIQUE`)
	assert.Contains(t, res.DDL, `CONSTRAINT "fk_order_user_id" FOREIGN KEY ("user_id") REFERENCES "user" ("id")`)

	// One explanation per attribute.
	assert.Len(t, res.Explanations, 4)
	for _, e := range res.Explanations {
		assert.NotEmpty(t, e.Entity)
		assert.NotEmpty(t, e.TargetType)
		assert.NotEmpty(t, e.Reason)
	}
}

func TestConvertIdentityIdioms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		want   string
	}{
		{"mysql", "INT AUTO_INCREMENT PRIMARY KEY"},
		{"sqlite", "INTEGER PRIMARY KEY AUTOINCREMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			source := "postgres"
			res, err := convert.New().Convert(context.Background(), userOrderModel(), source, tt.target)
			require.NoError(t, err)
			assert.Contains(t, res.DDL, tt.want)
		})
	}
}

func TestConvertUUIDPrimaryKey(t *testing.T) {
	t.Parallel()

	m := &schema.Model{Entities: []schema.Entity{{
		ID:   "ent-session",
		Name: "Session",
		Attributes: []schema.Attribute{
			{Name: "id", Type: schema.TypeUUID, PrimaryKey: true},
			{Name: "token", Type: schema.TypeString},
		},
	}}}
	res, err := convert.New().Convert(context.Background(), m, "mysql", "postgres")
	require.NoError(t, err)
	assert.Contains(t, res.DDL, `"id" UUID PRIMARY KEY DEFAULT gen_random_uuid()`)
}

func TestConvertCompositePrimaryKey(t *testing.T) {
	t.Parallel()

	m := &schema.Model{Entities: []schema.Entity{{
		ID:   "ent-membership",
		Name: "Membership",
		Attributes: []schema.Attribute{
			{Name: "user_id", Type: schema.TypeInt, PrimaryKey: true},
			{Name: "team_id", Type: schema.TypeInt, PrimaryKey: true},
		},
	}}}
	res, err := convert.New().Convert(context.Background(), m, "mysql", "postgres")
	require.NoError(t, err)
	assert.Contains(t, res.DDL, `PRIMARY KEY ("user_id", "team_id")`)
	assert.NotContains(t, res.DDL, "SERIAL")
}

// An unmapped logical type degrades to the generic string type with an
// explanation noting the fallback; the conversion never aborts.
func TestConvertUnmappedTypeFallsBack(t *testing.T) {
	t.Parallel()

	m := userOrderModel()
	m.Entities[0].Attributes = append(m.Entities[0].Attributes,
		schema.Attribute{Name: "settings", Type: schema.TypeUnstructured, Nullable: true})

	res, err := convert.New().Convert(context.Background(), m, "mysql", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, res.DDL, `"settings" VARCHAR(255)`)

	var found bool
	for _, e := range res.Explanations {
		if e.Attribute == "settings" {
			found = true
			assert.Equal(t, convert.GenericType, e.TargetType)
			assert.Contains(t, e.Reason, "generic string type")
		}
	}
	assert.True(t, found)
}

func TestConvertEmptyModel(t *testing.T) {
	t.Parallel()

	res, err := convert.New().Convert(context.Background(), &schema.Model{}, "mysql", "postgres")
	require.NoError(t, err)
	assert.Empty(t, res.DDL)
	assert.NotNil(t, res.Explanations)
	assert.Empty(t, res.Explanations)
}

func TestConvertInvalidRequests(t *testing.T) {
	t.Parallel()

	c := convert.New()
	m := userOrderModel()

	_, err := c.Convert(context.Background(), m, "postgres", "PostgreSQL")
	require.Error(t, err)
	assert.True(t, morphe.IsInvalidRequest(err))
	assert.ErrorIs(t, err, morphe.ErrSameDialect)

	_, err = c.Convert(context.Background(), m, "oracle", "postgres")
	require.Error(t, err)
	assert.ErrorIs(t, err, morphe.ErrUnsupportedDialect)

	bad := userOrderModel()
	bad.Entities[0].ID = ""
	_, err = c.Convert(context.Background(), bad, "mysql", "postgres")
	assert.True(t, morphe.IsValidation(err))
}

// A document-dialect endpoint triggers the AI-assisted path; an
// unreachable collaborator silently degrades to the deterministic
// mapping, which still renders both tables and the foreign key.
func TestConvertFallbackOnUnreachableCollaborator(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{err: errors.New("connection refused"), configured: true}
	c := convert.New(convert.WithProvider(provider))

	res, err := c.Convert(context.Background(), userOrderModel(), "mongodb", "mysql")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 2, strings.Count(res.DDL, "CREATE TABLE"))
	assert.Contains(t, res.DDL, "FOREIGN KEY (`user_id`)")
	assert.Len(t, res.Explanations, 4)
}

func TestConvertAssistedSuccess(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		reply:      `{"ddl": "db.createCollection(\"user\");", "explanations": [{"entity": "User", "attribute": "id", "sourceType": "integer", "targetType": "int", "reason": "document key"}]}`,
		configured: true,
	}
	c := convert.New(convert.WithProvider(provider))

	res, err := c.Convert(context.Background(), userOrderModel(), "mysql", "mongodb")
	require.NoError(t, err)
	assert.Equal(t, `db.createCollection("user");`, res.DDL)
	require.Len(t, res.Explanations, 1)
	assert.Equal(t, "User", res.Explanations[0].Entity)
}

// A shape-invalid collaborator reply falls back to the deterministic
// path, which renders document validators for a mongodb target.
func TestConvertAssistedBadShapeFallsBack(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{reply: `{"ddl": "CREATE TABLE x ();"}`, configured: true}
	c := convert.New(convert.WithProvider(provider))

	res, err := c.Convert(context.Background(), userOrderModel(), "mysql", "mongodb")
	require.NoError(t, err)
	assert.Contains(t, res.DDL, `db.createCollection("user"`)
	assert.Contains(t, res.DDL, "$jsonSchema")
	assert.Contains(t, res.DDL, `db.user.createIndex({ email: 1 }, { unique: true });`)
	assert.Len(t, res.Explanations, 4)
}

// The complexity threshold routes big graphs to the collaborator even
// for relational pairs.
func TestConvertComplexityTriggersAssist(t *testing.T) {
	t.Parallel()

	m := &schema.Model{}
	for i := 0; i < 16; i++ {
		m.Entities = append(m.Entities, schema.Entity{
			ID:   fmt.Sprintf("ent-%d", i),
			Name: fmt.Sprintf("Entity%d", i),
			Attributes: []schema.Attribute{
				{Name: "id", Type: schema.TypeInt, PrimaryKey: true},
			},
		})
	}

	provider := &stubProvider{err: errors.New("unreachable"), configured: true}
	c := convert.New(convert.WithProvider(provider))
	res, err := c.Convert(context.Background(), m, "mysql", "postgres")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 16, strings.Count(res.DDL, "CREATE TABLE"))

	// At or below the threshold, the collaborator is not consulted.
	small := userOrderModel()
	provider.calls = 0
	_, err = c.Convert(context.Background(), small, "mysql", "postgres")
	require.NoError(t, err)
	assert.Zero(t, provider.calls)
}

// An unconfigured provider never routes to the AI path.
func TestConvertUnconfiguredProviderIsDeterministic(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{reply: `{"ddl": "x", "explanations": []}`}
	c := convert.New(convert.WithProvider(provider))

	res, err := c.Convert(context.Background(), userOrderModel(), "mysql", "mongodb")
	require.NoError(t, err)
	assert.Zero(t, provider.calls)
	assert.Contains(t, res.DDL, "$jsonSchema")
}
