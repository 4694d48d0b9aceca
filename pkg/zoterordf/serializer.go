package zoterordf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/je4/ustc2zotero/pkg/bibliography"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF
 xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
 xmlns:z="http://www.zotero.org/namespaces/export#"
 xmlns:dcterms="http://purl.org/dc/terms/"
 xmlns:bib="http://purl.org/net/biblio#"
 xmlns:foaf="http://xmlns.com/foaf/0.1/"
 xmlns:link="http://purl.org/rss/1.0/modules/link/"
 xmlns:dc="http://purl.org/dc/elements/1.1/"
 xmlns:vcard="http://nwalsh.com/rdf/vCard#"
 xmlns:prism="http://prismstandard.org/namespaces/1.2/basic/">
`

const footer = `</rdf:RDF>
`

// elementTypes maps the intermediate itemType onto the RDF element emitted
// for the item node. Unmapped types fall back to defaultElement.
var elementTypes = map[string]string{
	"book":           "bib:Book",
	"journalArticle": "bib:Article",
	"bookSection":    "bib:BookSection",
	"webpage":        "bib:Document",
	"attachment":     "z:Attachment",
	"note":           "bib:Memo",
}

const defaultElement = "bib:Document"

// Serializer turns an item collection into one zotero compatible RDF/XML
// document. It holds no per run state, serializing the same collection twice
// yields byte identical output.
type Serializer struct {
	collator *collate.Collator
}

func NewSerializer() *Serializer {
	return &Serializer{
		collator: collate.New(language.Und),
	}
}

// Serialize renders the complete document. The input collection is not
// modified, ordering happens on copies.
func (ser *Serializer) Serialize(items []bibliography.Item) string {
	sorted := make([]bibliography.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ser.collator.CompareString(sorted[i].Id, sorted[j].Id) < 0
	})

	sb := &strings.Builder{}
	sb.WriteString(header)
	for _, item := range sorted {
		ser.writeItem(sb, &item)
	}
	sb.WriteString(footer)
	return sb.String()
}

func (ser *Serializer) writeItem(sb *strings.Builder, item *bibliography.Item) {
	element, ok := elementTypes[item.ItemType]
	if !ok {
		element = defaultElement
	}

	attachments := make([]bibliography.Attachment, len(item.Attachments))
	copy(attachments, item.Attachments)
	sort.SliceStable(attachments, func(i, j int) bool {
		return ser.collator.CompareString(attachments[i].Id, attachments[j].Id) < 0
	})
	memos := make([]bibliography.Memo, len(item.Memos))
	copy(memos, item.Memos)
	sort.SliceStable(memos, func(i, j int) bool {
		return ser.collator.CompareString(memos[i].Id, memos[j].Id) < 0
	})

	fmt.Fprintf(sb, "    <%s rdf:about=\"#item_%s\">\n", element, Escape(item.Id))
	writeText(sb, "        ", "z:itemType", item.ItemType)
	ser.writeSeries(sb, item.Series)
	ser.writePublisher(sb, item.Publisher)
	ser.writePersons(sb, "bib:authors", item.Authors)
	ser.writePersons(sb, "bib:contributors", item.Contributors)
	ser.writePersons(sb, "bib:editors", item.Editors)
	ser.writePersons(sb, "z:seriesEditors", item.SeriesEditors)
	ser.writePersons(sb, "z:translators", item.Translators)
	writeText(sb, "        ", "dc:title", item.Title)
	writeText(sb, "        ", "dcterms:abstract", item.Abstract)
	writeText(sb, "        ", "prism:volume", item.Volume)
	writeText(sb, "        ", "z:numberOfVolumes", item.NumberOfVolumes)
	writeText(sb, "        ", "prism:edition", item.Edition)
	writeText(sb, "        ", "dc:date", item.Date)
	writeText(sb, "        ", "z:numPages", item.NumPages)
	writeText(sb, "        ", "z:language", item.Language)
	if item.ISBN != "" {
		writeText(sb, "        ", "dc:identifier", "ISBN "+item.ISBN)
	}
	writeText(sb, "        ", "z:shortTitle", item.ShortTitle)
	writeURI(sb, "        ", item.Url)
	writeText(sb, "        ", "dcterms:dateSubmitted", item.DateSubmitted)
	writeText(sb, "        ", "z:archive", item.Archive)
	writeText(sb, "        ", "dc:coverage", item.ArchiveLocation)
	writeText(sb, "        ", "z:libraryCatalog", item.LibraryCatalog)
	if item.CallNumber != "" {
		sb.WriteString("        <dc:subject>\n")
		sb.WriteString("            <dcterms:LCC><rdf:value>" + Escape(item.CallNumber) + "</rdf:value></dcterms:LCC>\n")
		sb.WriteString("        </dc:subject>\n")
	}
	writeText(sb, "        ", "dc:rights", item.Rights)

	// extra wins over description, never both
	if item.Extra != "" {
		writeText(sb, "        ", "dc:description", item.Extra)
	} else {
		writeText(sb, "        ", "dc:description", item.Description)
	}

	subjects := make([]string, len(item.Subjects))
	copy(subjects, item.Subjects)
	ser.collator.SortStrings(subjects)
	for _, subject := range subjects {
		writeText(sb, "        ", "dc:subject", subject)
	}

	references := make([]string, len(item.IsReferencedBy))
	copy(references, item.IsReferencedBy)
	ser.collator.SortStrings(references)
	for _, ref := range references {
		fmt.Fprintf(sb, "        <dcterms:isReferencedBy rdf:resource=\"#item_%s\"/>\n", Escape(ref))
	}
	for _, memo := range memos {
		fmt.Fprintf(sb, "        <dcterms:isReferencedBy rdf:resource=\"#item_%s\"/>\n", Escape(memo.Id))
	}
	for _, attachment := range attachments {
		fmt.Fprintf(sb, "        <link:link rdf:resource=\"#item_%s\"/>\n", Escape(attachment.Id))
	}
	fmt.Fprintf(sb, "    </%s>\n", element)

	for _, attachment := range attachments {
		ser.writeAttachment(sb, &attachment)
	}
	for _, memo := range memos {
		ser.writeMemo(sb, &memo)
	}
}

func (ser *Serializer) writeSeries(sb *strings.Builder, series *bibliography.Series) {
	if series == nil {
		return
	}
	sb.WriteString("        <dcterms:isPartOf>\n")
	sb.WriteString("            <bib:Series>\n")
	writeText(sb, "                ", "dc:title", series.Title)
	writeText(sb, "                ", "dc:identifier", series.Number)
	sb.WriteString("            </bib:Series>\n")
	sb.WriteString("        </dcterms:isPartOf>\n")
}

func (ser *Serializer) writePublisher(sb *strings.Builder, publisher *bibliography.Publisher) {
	if publisher == nil {
		return
	}
	sb.WriteString("        <dc:publisher>\n")
	sb.WriteString("            <foaf:Organization>\n")
	if publisher.Location != "" {
		sb.WriteString("                <vcard:adr>\n")
		sb.WriteString("                    <vcard:Address>\n")
		writeText(sb, "                        ", "vcard:locality", publisher.Location)
		sb.WriteString("                    </vcard:Address>\n")
		sb.WriteString("                </vcard:adr>\n")
	}
	writeText(sb, "                ", "foaf:name", publisher.Name)
	sb.WriteString("            </foaf:Organization>\n")
	sb.WriteString("        </dc:publisher>\n")
}

// writePersons renders a creator list as an rdf:Seq of foaf:Person nodes,
// ordered by (lastName, firstName) independent of the input order.
func (ser *Serializer) writePersons(sb *strings.Builder, wrapper string, persons []bibliography.Person) {
	if len(persons) == 0 {
		return
	}
	sorted := make([]bibliography.Person, len(persons))
	copy(sorted, persons)
	sort.SliceStable(sorted, func(i, j int) bool {
		if cmp := ser.collator.CompareString(sorted[i].LastName, sorted[j].LastName); cmp != 0 {
			return cmp < 0
		}
		return ser.collator.CompareString(sorted[i].FirstName, sorted[j].FirstName) < 0
	})
	fmt.Fprintf(sb, "        <%s>\n", wrapper)
	sb.WriteString("            <rdf:Seq>\n")
	for _, person := range sorted {
		sb.WriteString("                <rdf:li>\n")
		sb.WriteString("                    <foaf:Person>\n")
		writeText(sb, "                        ", "foaf:surname", person.LastName)
		writeText(sb, "                        ", "foaf:givenName", person.FirstName)
		sb.WriteString("                    </foaf:Person>\n")
		sb.WriteString("                </rdf:li>\n")
	}
	sb.WriteString("            </rdf:Seq>\n")
	fmt.Fprintf(sb, "        </%s>\n", wrapper)
}

func (ser *Serializer) writeAttachment(sb *strings.Builder, attachment *bibliography.Attachment) {
	fmt.Fprintf(sb, "    <z:Attachment rdf:about=\"#item_%s\">\n", Escape(attachment.Id))
	writeText(sb, "        ", "z:itemType", "attachment")
	writeText(sb, "        ", "dc:title", attachment.Title)
	writeURI(sb, "        ", attachment.Url)
	writeText(sb, "        ", "dcterms:dateSubmitted", attachment.DateSubmitted)
	writeText(sb, "        ", "z:linkMode", attachment.LinkMode)
	writeText(sb, "        ", "link:type", attachment.MimeType)
	sb.WriteString("    </z:Attachment>\n")
}

func (ser *Serializer) writeMemo(sb *strings.Builder, memo *bibliography.Memo) {
	fmt.Fprintf(sb, "    <bib:Memo rdf:about=\"#item_%s\">\n", Escape(memo.Id))
	writeText(sb, "        ", "rdf:value", memo.Value)
	sb.WriteString("    </bib:Memo>\n")
}

// writeText emits one element with escaped text content, nothing for an
// empty value.
func writeText(sb *strings.Builder, indent, tag, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s<%s>%s</%s>\n", indent, tag, Escape(value), tag)
}

// writeURI emits a url as the nested dcterms:URI identifier node zotero
// expects.
func writeURI(sb *strings.Builder, indent string, url string) {
	if url == "" {
		return
	}
	sb.WriteString(indent + "<dc:identifier>\n")
	sb.WriteString(indent + "    <dcterms:URI><rdf:value>" + Escape(url) + "</rdf:value></dcterms:URI>\n")
	sb.WriteString(indent + "</dc:identifier>\n")
}
