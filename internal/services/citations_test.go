package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashodhanketkar/citenote/internal/types"
)

func article() map[string]string {
	return map[string]string{
		"type":    "article",
		"author":  "Hopper",
		"title":   "Compilers",
		"journal": "JACM",
		"year":    "1952",
		"doi":     "10.1/x",
	}
}

func newPaper(t *testing.T, f *fixture, name string) uint {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.papers.Create(ctx, name, ""))
	p, err := f.papers.Get(ctx, name)
	require.NoError(t, err)
	return p.ID
}

func TestCitationCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := newPaper(t, f, "p")

	require.NoError(t, f.citations.Create(ctx, id, article()))

	c, err := f.citations.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Paper_1", c.Name)
	assert.Equal(t, "Hopper", c.Author)
	assert.Equal(t, "10.1/x", c.Field("doi"))

	err = f.citations.Create(ctx, id, article())
	assert.ErrorIs(t, err, types.AlreadyExists(types.Citation))

	err = f.citations.Create(ctx, 42, article())
	assert.ErrorIs(t, err, types.NotFound(types.Paper))
}

func TestCitationValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := newPaper(t, f, "p")

	fields := article()
	delete(fields, "journal")
	assert.ErrorIs(t, f.citations.Create(ctx, id, fields), types.ErrValidationFailure)

	assert.ErrorIs(t, f.citations.Create(ctx, id, map[string]string{"type": "poem"}), types.ErrValidationFailure)

	fields = article()
	fields["school"] = "MIT"
	assert.ErrorIs(t, f.citations.Create(ctx, id, fields), types.ErrValidationFailure)

	_, err := f.citations.Get(ctx, id)
	assert.ErrorIs(t, err, types.NotFound(types.Citation))
}

func TestCitationUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := newPaper(t, f, "p")
	require.NoError(t, f.citations.Create(ctx, id, article()))

	applied, err := f.citations.Update(ctx, id, PartialUpdate, map[string]string{"volume": "3"})
	require.NoError(t, err)
	assert.True(t, applied)

	_, err = f.citations.Update(ctx, id, PartialUpdate, map[string]string{"volume": "3"})
	assert.ErrorIs(t, err, types.NoEffectiveChange(types.Citation, "volume"))

	_, err = f.citations.Update(ctx, id, PartialUpdate, map[string]string{"id": "9"})
	assert.ErrorIs(t, err, types.ErrValidationFailure)

	// switching type must satisfy the new type
	_, err = f.citations.Update(ctx, id, PartialUpdate, map[string]string{"type": "book"})
	assert.ErrorIs(t, err, types.ErrValidationFailure)

	applied, err = f.citations.Update(ctx, id, PartialUpdate, map[string]string{})
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestCitationReplace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := newPaper(t, f, "p")
	require.NoError(t, f.citations.Create(ctx, id, article()))

	// replace without name is skipped
	applied, err := f.citations.Update(ctx, id, FullReplace, map[string]string{"type": "misc"})
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = f.citations.Update(ctx, id, FullReplace, map[string]string{
		"name":  "Hopper52",
		"type":  "misc",
		"title": "A-0",
	})
	require.NoError(t, err)
	assert.True(t, applied)

	c, err := f.citations.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hopper52", c.Name)
	assert.Equal(t, "A-0", c.Title)
	assert.Empty(t, c.Author)
	assert.Empty(t, c.Journal)
	assert.Empty(t, c.Field("doi"))
}

func TestCitationDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := newPaper(t, f, "p")
	require.NoError(t, f.citations.Create(ctx, id, map[string]string{"type": "misc", "name": "custom"}))

	require.NoError(t, f.citations.Delete(ctx, id))
	assert.ErrorIs(t, f.citations.Delete(ctx, id), types.NotFound(types.Citation))
}

func TestCitationCatalogue(t *testing.T) {
	f := newFixture(t)

	cat := f.citations.Catalogue()
	assert.Contains(t, cat.Types, "article")
	assert.Contains(t, cat.Columns, "citation_key")
	assert.ElementsMatch(t, []string{"doi", "eprint", "isbn", "issn", "url"}, cat.Extras)
}
