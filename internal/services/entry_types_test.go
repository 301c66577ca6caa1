package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashodhanketkar/citenote/data"
	"github.com/yashodhanketkar/citenote/internal/models"
)

func TestEntryTypesCatalogue(t *testing.T) {
	et, err := ParseEntryTypes(data.EntryTypes)
	require.NoError(t, err)

	article, ok := et.Lookup("article")
	require.True(t, ok)
	assert.Equal(t, []string{"author", "title", "journal", "year"}, article.Required)

	assert.Contains(t, et.Names(), "techreport")
	assert.True(t, et.Accepts("article", "crossref"))
	assert.False(t, et.Accepts("article", "school"))
	assert.False(t, et.Accepts("poem", "title"))

	// every field is either a column or an extra
	for _, f := range et.Fields() {
		if !models.IsCitationColumn(f) {
			assert.Contains(t, []string{"doi", "url", "isbn", "issn", "eprint"}, f)
		}
	}
}

func TestParseEntryTypesErrors(t *testing.T) {
	_, err := ParseEntryTypes([]byte("types: {}"))
	assert.Error(t, err)

	_, err = ParseEntryTypes([]byte("types: [unterminated"))
	assert.Error(t, err)
}
