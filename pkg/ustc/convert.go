package ustc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/je4/ustc2zotero/pkg/bibliography"
	"github.com/je4/ustc2zotero/pkg/zoterordf"
	"github.com/op/go-logging"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// EditionUrl is the catalog page every row derived item gets linked to.
	EditionUrl = "https://www.ustc.ac.uk/editions/%s"

	LibraryCatalog = "Universal Short Title Catalogue (USTC)"

	subjectPrefix = "ustc:"
)

// itemTypes maps the source type column onto the intermediate item type.
// Anything unknown is treated as a book.
var itemTypes = map[string]string{
	"book":       "book",
	"broadsheet": "document",
}

const defaultItemType = "book"

// Relations maps an original source identifier (the USTC sn) to the
// synthesized item identifiers sharing it. Only true duplicates survive,
// single member groups are pruned.
type Relations map[string][]string

// Converter builds the intermediate item collection from a crawler CSV
// export. The identifier counter belongs to the converter and is reset at
// the start of every Convert call, repeated conversions yield the same
// identifiers.
type Converter struct {
	logger   *logging.Logger
	collator *collate.Collator
	nextId   int64
}

func NewConverter(logger *logging.Logger) *Converter {
	return &Converter{
		logger:   logger,
		collator: collate.New(language.Und),
	}
}

func (conv *Converter) newId() string {
	id := strconv.FormatInt(conv.nextId, 10)
	conv.nextId++
	return id
}

// Convert parses the raw tabular export. Rows whose field count disagrees
// with the header are dropped silently, blank lines contribute nothing. The
// returned items are sorted ascending by their synthesized identifier.
func (conv *Converter) Convert(raw string) ([]bibliography.Item, Relations, error) {
	conv.nextId = 1

	lines := splitLines(zoterordf.StripInvalid(raw))
	items := []bibliography.Item{}
	relations := Relations{}
	if len(lines) == 0 {
		return items, relations, nil
	}

	headerFields := splitRow(lines[0])
	columns := map[string]int{}
	for idx, name := range headerFields {
		columns[strings.ToLower(strings.TrimSpace(name))] = idx
	}

	for _, line := range lines[1:] {
		fields := splitRow(line)
		if len(fields) != len(headerFields) {
			conv.logger.Debugf("dropping row with %v fields, header has %v", len(fields), len(headerFields))
			continue
		}
		column := func(name string) string {
			idx, ok := columns[name]
			if !ok {
				return ""
			}
			return strings.TrimSpace(fields[idx])
		}

		item := conv.buildItem(column)
		if sn := column("sn"); sn != "" {
			relations[sn] = append(relations[sn], item.Id)
		}
		items = append(items, item)
	}

	// attachments get their identifiers after all items, the row items stay
	// a consecutive sequence and the #item_ reference space stays collision
	// free
	for idx := range items {
		for adx := range items[idx].Attachments {
			items[idx].Attachments[adx].Id = conv.newId()
		}
	}

	for sn, ids := range relations {
		if len(ids) < 2 {
			delete(relations, sn)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return conv.collator.CompareString(items[i].Id, items[j].Id) < 0
	})

	return items, relations, nil
}

func (conv *Converter) buildItem(column func(string) string) bibliography.Item {
	item := bibliography.Item{
		Id:              conv.newId(),
		ItemType:        mapItemType(column("type")),
		Title:           column("title"),
		ShortTitle:      column("short_title"),
		Date:            column("date"),
		Language:        column("language"),
		LibraryCatalog:  LibraryCatalog,
		Url:             column("digitised_url"),
		Archive:         column("copy_location"),
		ArchiveLocation: column("copy_shelfmark"),
		Authors:         parsePersons(column("author")),
		Editors:         parsePersons(column("editor")),
		Contributors:    parsePersons(column("contributor")),
		Translators:     parsePersons(column("translator")),
		Subjects:        parseSubjects(column("classification")),
		Extra:           buildExtra(column),
	}

	location := joinLocation(column("country"), column("place"), column("region"))
	if printer := column("printer"); printer != "" || location != "" {
		item.Publisher = &bibliography.Publisher{
			Name:     printer,
			Location: location,
		}
	}

	// every row links back to its catalog page
	item.Attachments = append(item.Attachments, bibliography.Attachment{
		Title:    "USTC record",
		Url:      fmt.Sprintf(EditionUrl, column("sn")),
		MimeType: "text/html",
		LinkMode: "linked_url",
	})

	return item
}

func mapItemType(sourceType string) string {
	if itemType, ok := itemTypes[strings.ToLower(sourceType)]; ok {
		return itemType
	}
	return defaultItemType
}

// parsePersons splits a ";" separated creator list. An entry containing a
// comma splits into (lastName, firstName) around the first comma, otherwise
// the whole entry is the last name.
func parsePersons(value string) []bibliography.Person {
	persons := []bibliography.Person{}
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		person := bibliography.Person{LastName: entry}
		if pos := strings.Index(entry, ","); pos >= 0 {
			person.LastName = strings.TrimSpace(entry[:pos])
			person.FirstName = strings.TrimSpace(entry[pos+1:])
		}
		persons = append(persons, person)
	}
	if len(persons) == 0 {
		return nil
	}
	return persons
}

func parseSubjects(value string) []string {
	subjects := []string{}
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		subjects = append(subjects, subjectPrefix+entry)
	}
	if len(subjects) == 0 {
		return nil
	}
	return subjects
}

func joinLocation(parts ...string) string {
	locality := []string{}
	for _, part := range parts {
		if part != "" {
			locality = append(locality, part)
		}
	}
	return strings.Join(locality, ", ")
}

// buildExtra assembles the labeled extra block. An absent sub field
// contributes no line.
func buildExtra(column func(string) string) string {
	lines := []string{}
	appendLine := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	appendLine("USTC ID", column("sn"))
	appendLine("Colophon", column("colophon"))
	appendLine("Colophon source", column("colophon_source"))
	appendLine("Format", column("format"))
	appendLine("Heading", column("heading"))
	appendLine("Imprint", column("imprint"))
	appendLine("Lost", column("is_lost"))
	appendLine("Pagination", column("pagination"))
	appendLine("Signatures", column("signatures"))
	appendLine("Digitised", column("is_digitised"))
	appendLine("Has copies", column("has_copies"))
	return strings.Join(lines, "\n")
}
