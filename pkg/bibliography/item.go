package bibliography

// Person is one creator entry. FirstName stays empty when the source only
// carries a single name.
type Person struct {
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
}

type Publisher struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
}

type Series struct {
	Title  string `json:"title,omitempty"`
	Number string `json:"number,omitempty"`
}

// Attachment is rendered as an independent top level RDF node linked from its
// parent item. Its Id lives in the same identifier space as the items.
type Attachment struct {
	Id            string `json:"id"`
	Title         string `json:"title,omitempty"`
	Url           string `json:"url,omitempty"`
	MimeType      string `json:"mimeType,omitempty"`
	DateSubmitted string `json:"dateSubmitted,omitempty"`
	LinkMode      string `json:"linkMode,omitempty"`
}

// Memo gets the same sibling node treatment as Attachment.
type Memo struct {
	Id    string `json:"id"`
	Value string `json:"value,omitempty"`
}

// Item is one bibliographic record of the intermediate model. Field names
// follow the zotero vocabulary.
type Item struct {
	Id              string       `json:"id"`
	ItemType        string       `json:"itemType"`
	Title           string       `json:"title,omitempty"`
	ShortTitle      string       `json:"shortTitle,omitempty"`
	Abstract        string       `json:"abstract,omitempty"`
	Date            string       `json:"date,omitempty"`
	Language        string       `json:"language,omitempty"`
	LibraryCatalog  string       `json:"libraryCatalog,omitempty"`
	NumPages        string       `json:"numPages,omitempty"`
	NumberOfVolumes string       `json:"numberOfVolumes,omitempty"`
	Edition         string       `json:"edition,omitempty"`
	Extra           string       `json:"extra,omitempty"`
	Description     string       `json:"description,omitempty"`
	Volume          string       `json:"volume,omitempty"`
	Archive         string       `json:"archive,omitempty"`
	ArchiveLocation string       `json:"archiveLocation,omitempty"`
	CallNumber      string       `json:"callNumber,omitempty"`
	Rights          string       `json:"rights,omitempty"`
	ISBN            string       `json:"isbn,omitempty"`
	Publisher       *Publisher   `json:"publisher,omitempty"`
	Series          *Series      `json:"series,omitempty"`
	Authors         []Person     `json:"authors,omitempty"`
	Editors         []Person     `json:"editors,omitempty"`
	SeriesEditors   []Person     `json:"seriesEditors,omitempty"`
	Contributors    []Person     `json:"contributors,omitempty"`
	Translators     []Person     `json:"translators,omitempty"`
	Subjects        []string     `json:"subjects,omitempty"`
	DateSubmitted   string       `json:"dateSubmitted,omitempty"`
	Url             string       `json:"url,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Memos           []Memo       `json:"memos,omitempty"`
	IsReferencedBy  []string     `json:"isReferencedBy,omitempty"`
}

// Collection is accepted on structured input for completeness. The RDF
// serializer does not consume it.
type Collection struct {
	Id               string   `json:"id"`
	Name             string   `json:"name,omitempty"`
	Items            []string `json:"items,omitempty"`
	ParentCollection string   `json:"parentCollection,omitempty"`
}
