package ingest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphedb/morphe/ingest"
	"github.com/morphedb/morphe/schema"
)

func TestIngestSingleFile(t *testing.T) {
	t.Parallel()

	ing := ingest.New()
	res, err := ing.Ingest(context.Background(), []ingest.File{
		{Path: "schema.prisma", Content: prismaBlog},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Model)
	assert.Equal(t, 1, res.Contributed)
	assert.Empty(t, res.Warnings)

	require.Len(t, res.Model.Entities, 2)
	for _, e := range res.Model.Entities {
		assert.NotEmpty(t, e.ID, "merge allocates entity ids")
	}
	require.Len(t, res.Model.Relationships, 1)

	post, ok := res.Model.EntityByName("Post")
	require.True(t, ok)
	rel := res.Model.Relationships[0]
	assert.Equal(t, post.ID, rel.SourceID)
	assert.Equal(t, "authorId", rel.SourceAttr)
	assert.Equal(t, "id", rel.TargetAttr)
}

func TestIngestSkipsGarbageWithWarning(t *testing.T) {
	t.Parallel()

	ing := ingest.New()
	res, err := ing.Ingest(context.Background(), []ingest.File{
		{Path: "schema.prisma", Content: prismaBlog},
		{Path: "notes.txt", Content: "meeting notes, nothing to see here"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Contributed)
	assert.Len(t, res.Model.Entities, 2, "only the well-formed file contributes")

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "notes.txt", res.Warnings[0].Path)
	assert.Contains(t, res.Warnings[0].Message, "unrecognized")
}

func TestIngestRecognizedButUnextractable(t *testing.T) {
	t.Parallel()

	// Detects as prisma but carries no complete model block.
	broken := "datasource db { provider = \"postgresql\" }\n// model User @id @relation\n"
	ing := ingest.New()
	res, err := ing.Ingest(context.Background(), []ingest.File{
		{Path: "ok.prisma", Content: "model Tag {\n  id Int @id\n  name String @unique\n}\n"},
		{Path: "broken.prisma", Content: broken},
	})
	require.NoError(t, err)
	assert.Len(t, res.Model.Entities, 1)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "extraction failed")
}

func TestIngestMergesAcrossDialects(t *testing.T) {
	t.Parallel()

	// The sequelize file references a User defined only in the prisma
	// file; endpoints resolve after the whole batch merges.
	orders := `
const Order = sequelize.define('Order', {
  id: { type: DataTypes.INTEGER, primaryKey: true, autoIncrement: true },
  userId: {
    type: DataTypes.INTEGER,
    references: { model: 'User', key: 'id' }
  }
});
`
	ing := ingest.New()
	res, err := ing.Ingest(context.Background(), []ingest.File{
		{Path: "schema.prisma", Content: prismaBlog},
		{Path: "order.js", Content: orders},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Contributed)
	require.Len(t, res.Model.Entities, 3)

	order, ok := res.Model.EntityByName("Order")
	require.True(t, ok)
	user, ok := res.Model.EntityByName("User")
	require.True(t, ok)
	var found bool
	for _, r := range res.Model.Relationships {
		if r.SourceID == order.ID {
			found = true
			assert.Equal(t, user.ID, r.TargetID)
			assert.Equal(t, "userId", r.SourceAttr)
			assert.Equal(t, "id", r.TargetAttr)
		}
	}
	assert.True(t, found, "cross-file relationship resolved")
}

func TestIngestFirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	first := "model User {\n  id    Int    @id\n  email String @unique\n}\n"
	second := "model User {\n  id   Int    @id\n  name String\n}\n"

	ing := ingest.New()
	res, err := ing.Ingest(context.Background(), []ingest.File{
		{Path: "a.prisma", Content: first},
		{Path: "b.prisma", Content: second},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Contributed)
	require.Len(t, res.Model.Entities, 1)

	user := res.Model.Entities[0]
	_, hasEmail := user.Attribute("email")
	_, hasName := user.Attribute("name")
	assert.True(t, hasEmail)
	assert.False(t, hasName, "later duplicate must not merge attributes in")
}

func TestIngestDeterministicAcrossParseOrder(t *testing.T) {
	t.Parallel()

	files := []ingest.File{
		{Path: "schema.prisma", Content: prismaBlog},
		{Path: "user.js", Content: mongooseBlog},
		{Path: "shop.js", Content: sequelizeShop},
	}

	ing := ingest.New()
	var names [][]string
	for run := 0; run < 3; run++ {
		res, err := ing.Ingest(context.Background(), files)
		require.NoError(t, err)
		var got []string
		for _, e := range res.Model.Entities {
			got = append(got, e.Name)
		}
		names = append(names, got)
	}
	// Concurrent parsing must not perturb merge order.
	assert.Equal(t, names[0], names[1])
	assert.Equal(t, names[1], names[2])
	assert.Equal(t, []string{"User", "Post", "Order"}, names[0])
}

func TestIngestEntitySetStableAcrossFileOrder(t *testing.T) {
	t.Parallel()

	a := []ingest.File{
		{Path: "schema.prisma", Content: prismaBlog},
		{Path: "shop.js", Content: sequelizeShop},
	}
	b := []ingest.File{a[1], a[0]}

	ing := ingest.New()
	entityNames := func(files []ingest.File) map[string]bool {
		res, err := ing.Ingest(context.Background(), files)
		require.NoError(t, err)
		names := make(map[string]bool, len(res.Model.Entities))
		for _, e := range res.Model.Entities {
			names[e.Name] = true
		}
		return names
	}
	assert.Equal(t, entityNames(a), entityNames(b))
}

func TestIngestPrimaryKeyFallback(t *testing.T) {
	t.Parallel()

	// belongsTo carries no target attribute; resolution falls back to the
	// target's primary key.
	src := `
const User = sequelize.define('User', {
  uid: { type: DataTypes.UUID, primaryKey: true }
});
const Post = sequelize.define('Post', {
  id: { type: DataTypes.INTEGER, primaryKey: true },
  authorId: { type: DataTypes.UUID }
});
Post.belongsTo(User, { foreignKey: 'authorId' });
`
	ing := ingest.New()
	res, err := ing.Ingest(context.Background(), []ingest.File{{Path: "models.js", Content: src}})
	require.NoError(t, err)
	require.Len(t, res.Model.Relationships, 1)
	assert.Equal(t, "uid", res.Model.Relationships[0].TargetAttr)
	assert.Equal(t, schema.ManyToOne, res.Model.Relationships[0].Cardinality)
}

func TestIngestDropsUnresolvableCandidates(t *testing.T) {
	t.Parallel()

	// The referenced model never appears in the batch.
	src := "model Post {\n  id       Int  @id\n  author   User @relation(fields: [authorId], references: [id])\n  authorId Int\n}\n"
	ing := ingest.New()
	res, err := ing.Ingest(context.Background(), []ingest.File{{Path: "post.prisma", Content: src}})
	require.NoError(t, err)
	require.Len(t, res.Model.Entities, 1)
	assert.Empty(t, res.Model.Relationships)
}

func TestIngestEmptyBatch(t *testing.T) {
	t.Parallel()

	ing := ingest.New()
	res, err := ing.Ingest(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Model.Entities)
	assert.Empty(t, res.Warnings)
}
