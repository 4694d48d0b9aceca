package ustc

import (
	"fmt"
	"testing"

	"github.com/je4/ustc2zotero/pkg/bibliography"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = logging.MustGetLogger("test")

func TestConvertRowCount(t *testing.T) {
	raw := "sn,type,title\n" +
		"1001,book,First\n" +
		"\n" +
		"1002,book,Second,extra-field\n" +
		"1003,broadsheet,Third\n"
	conv := NewConverter(testLogger)
	items, _, err := conv.Convert(raw)
	require.NoError(t, err)
	// the malformed row is dropped, the blank line contributes nothing
	require.Len(t, items, 2)
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, "Third", items[1].Title)
}

func TestConvertEmptyInput(t *testing.T) {
	conv := NewConverter(testLogger)
	for _, raw := range []string{"", "sn,type,title\n"} {
		items, relations, err := conv.Convert(raw)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Empty(t, relations)
	}
}

func TestConvertIdentifiers(t *testing.T) {
	raw := "sn,title\n42,one\n42,two\n7,three\n"
	conv := NewConverter(testLogger)
	items, relations, err := conv.Convert(raw)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// items get consecutive ids in row order, attachments follow after
	assert.Equal(t, "1", items[0].Id)
	assert.Equal(t, "2", items[1].Id)
	assert.Equal(t, "3", items[2].Id)
	require.Len(t, items[0].Attachments, 1)
	assert.Equal(t, "4", items[0].Attachments[0].Id)
	assert.Equal(t, "5", items[1].Attachments[0].Id)
	assert.Equal(t, "6", items[2].Attachments[0].Id)

	// only true duplicates survive in the relations table
	require.Len(t, relations, 1)
	assert.Equal(t, []string{"1", "2"}, relations["42"])

	// a second run yields the same identifiers
	again, _, err := conv.Convert(raw)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestConvertItemFields(t *testing.T) {
	raw := `sn,type,title,short_title,author,editor,printer,country,place,region,date,language,classification,digitised_url,copy_location,copy_shelfmark
804919,book,"Arithmetica, libri duo",Arithmetica,"Ramus, Petrus;Schoner",Snellius,Plantin,Belgium,Antwerp,,1569,Latin,Mathematics;Education,https://example.com/scan,"Basel UB (Basel, Switzerland)",kr II 23
`
	conv := NewConverter(testLogger)
	items, _, err := conv.Convert(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	item := items[0]

	assert.Equal(t, "book", item.ItemType)
	assert.Equal(t, "Arithmetica, libri duo", item.Title)
	assert.Equal(t, "Arithmetica", item.ShortTitle)
	assert.Equal(t, "1569", item.Date)
	assert.Equal(t, "Latin", item.Language)
	assert.Equal(t, LibraryCatalog, item.LibraryCatalog)
	assert.Equal(t, "https://example.com/scan", item.Url)
	assert.Equal(t, "Basel UB (Basel, Switzerland)", item.Archive)
	assert.Equal(t, "kr II 23", item.ArchiveLocation)

	require.Len(t, item.Authors, 2)
	assert.Equal(t, bibliography.Person{LastName: "Ramus", FirstName: "Petrus"}, item.Authors[0])
	assert.Equal(t, bibliography.Person{LastName: "Schoner", FirstName: ""}, item.Authors[1])
	require.Len(t, item.Editors, 1)
	assert.Equal(t, "Snellius", item.Editors[0].LastName)

	assert.Equal(t, []string{"ustc:Mathematics", "ustc:Education"}, item.Subjects)

	require.NotNil(t, item.Publisher)
	assert.Equal(t, "Plantin", item.Publisher.Name)
	assert.Equal(t, "Belgium, Antwerp", item.Publisher.Location)

	require.Len(t, item.Attachments, 1)
	attachment := item.Attachments[0]
	assert.Equal(t, "USTC record", attachment.Title)
	assert.Equal(t, fmt.Sprintf(EditionUrl, "804919"), attachment.Url)
	assert.Equal(t, "text/html", attachment.MimeType)
	assert.Equal(t, "linked_url", attachment.LinkMode)
}

func TestConvertItemTypes(t *testing.T) {
	raw := "sn,type\n1,book\n2,broadsheet\n3,pamphlet\n4,\n"
	conv := NewConverter(testLogger)
	items, _, err := conv.Convert(raw)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "book", items[0].ItemType)
	assert.Equal(t, "document", items[1].ItemType)
	assert.Equal(t, "book", items[2].ItemType)
	assert.Equal(t, "book", items[3].ItemType)
}

func TestConvertExtra(t *testing.T) {
	raw := "sn,colophon,format,is_lost,pagination\n" +
		"42,Excudebat Plantinus,4to,true,[8] 120 p.\n"
	conv := NewConverter(testLogger)
	items, _, err := conv.Convert(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t,
		"USTC ID: 42\nColophon: Excudebat Plantinus\nFormat: 4to\nLost: true\nPagination: [8] 120 p.",
		items[0].Extra)
}

func TestConvertStripsControlCharacters(t *testing.T) {
	raw := "sn,title\n42,bad\x01title\n"
	conv := NewConverter(testLogger)
	items, _, err := conv.Convert(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "badtitle", items[0].Title)
}
