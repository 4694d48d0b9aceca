package ustc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDataPage(t *testing.T) {
	content := `<html><body><div id="app" data-page="{&quot;props&quot;:{&quot;edition&quot;:{&quot;title&quot;:&quot;A &amp; B&quot;}}}"></div></body></html>`
	data, err := extractDataPage(content)
	require.NoError(t, err)
	assert.Equal(t, `{"props":{"edition":{"title":"A & B"}}}`, string(data))

	_, err = extractDataPage("<html><body>nothing here</body></html>")
	assert.Error(t, err)
}

const editionJSON = `{
  "props": {
    "edition": {
      "id": 5,
      "std_title": "Arithmetica, libri duo",
      "type": "book",
      "author_1": "Ramus, Petrus",
      "role_1": "Principal Author",
      "author_2": "Schoner, Lazarus",
      "role_2": "Editor",
      "female_1": false,
      "created": "2020-01-01",
      "country": "Belgium",
      "place": "Antwerp",
      "printer": "Plantin",
      "date": "1569",
      "language": "Latin",
      "classification": "Mathematics",
      "format": "4to"
    },
    "digitisations": [
      {"url": "https://example.com/scan"}
    ],
    "copies": [
      {"name": "Basel UB", "city": "Basel", "country": "Switzerland", "shelfmark": "kr II 23"}
    ]
  }
}`

func TestParseEditionPage(t *testing.T) {
	records, err := parseEditionPage("804919", []byte(editionJSON))
	require.NoError(t, err)
	require.Len(t, records, 2)

	digitised := records[0]
	assert.Equal(t, "804919", digitised["sn"])
	assert.Equal(t, "Arithmetica, libri duo", digitised["title"])
	assert.Equal(t, "book", digitised["type"])
	assert.Equal(t, "Ramus, Petrus", digitised["author"])
	assert.Equal(t, "Schoner, Lazarus", digitised["editor"])
	assert.Equal(t, "Plantin", digitised["printer"])
	assert.Equal(t, "true", digitised["is_digitised"])
	assert.Equal(t, "true", digitised["has_copies"])
	assert.Equal(t, "https://example.com/scan", digitised["digitised_url"])
	assert.Equal(t, "", digitised["copy_location"])
	// bookkeeping fields never leak into the record
	assert.Equal(t, "", digitised["female"])
	assert.Equal(t, "", digitised["created"])

	copyRecord := records[1]
	assert.Equal(t, "Basel UB (Basel, Switzerland)", copyRecord["copy_location"])
	assert.Equal(t, "kr II 23", copyRecord["copy_shelfmark"])
	assert.Equal(t, "", copyRecord["digitised_url"])
}

func TestParseEditionPageLost(t *testing.T) {
	records, err := parseEditionPage("42", []byte(`{"props":{"edition":{"std_title":"Gone"}}}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "true", records[0]["is_lost"])
	assert.Equal(t, "false", records[0]["is_digitised"])
	assert.Equal(t, "false", records[0]["has_copies"])
}

// records written by the crawler must come back unchanged through the
// converter csv path
func TestRecordsRoundTrip(t *testing.T) {
	records, err := parseEditionPage("804919", []byte(editionJSON))
	require.NoError(t, err)

	csv := ustcRecordsCSV(t, records)
	conv := NewConverter(testLogger)
	items, relations, err := conv.Convert(csv)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Arithmetica, libri duo", items[0].Title)
	assert.Equal(t, "Ramus", items[0].Authors[0].LastName)
	assert.Equal(t, "Petrus", items[0].Authors[0].FirstName)

	// both rows share the sn, the relations table keeps the pair
	require.Len(t, relations, 1)
	assert.Equal(t, []string{"1", "2"}, relations["804919"])
}

func ustcRecordsCSV(t *testing.T, records []Record) string {
	t.Helper()
	csv := WriteRecordsCSV(records)
	require.True(t, strings.HasPrefix(csv, `"sn","type"`))
	return csv
}
