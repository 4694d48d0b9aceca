package ustc

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"emperror.dev/errors"
	"github.com/bluele/gcache"
	"github.com/op/go-logging"
	"gopkg.in/resty.v1"
)

const DefaultBaseUrl = "https://www.ustc.ac.uk"

// the ustc site is an inertia application, the interesting payload sits in
// the data-page attribute of the app container
var dataPageRegexp = regexp.MustCompile(`data-page="(.*?)"`)

// roleTypes folds the catalog creator roles into the four person columns of
// the record export.
var roleTypes = map[string]string{
	"Commentator":      "contributor",
	"Contributor":      "contributor",
	"Defendant":        "contributor",
	"Editor":           "editor",
	"Engraver":         "contributor",
	"Illustrator":      "contributor",
	"Principal Author": "author",
	"Proponent":        "contributor",
	"Pseudonym":        "author",
	"Respondent":       "contributor",
	"Translator":       "translator",
}

// RecordHeader is the column order of the crawler CSV export. The converter
// reads columns by name, the order only has to stay stable.
var RecordHeader = []string{
	"sn", "type", "title", "short_title",
	"author", "editor", "contributor", "translator",
	"printer", "country", "place", "region",
	"date", "language", "classification",
	"colophon", "colophon_source", "format", "heading", "imprint",
	"is_lost", "pagination", "signatures",
	"is_digitised", "has_copies",
	"digitised_url", "copy_location", "copy_shelfmark",
}

// Record is one flattened edition row. One edition yields one row per
// digitisation and per holding copy, or a single lost row when it has
// neither.
type Record map[string]string

// Fields returns the record values in RecordHeader order.
func (rec Record) Fields() []string {
	fields := make([]string, 0, len(RecordHeader))
	for _, name := range RecordHeader {
		fields = append(fields, rec[name])
	}
	return fields
}

// Crawler walks the catalog explore pages and edition pages. Everything runs
// sequentially, failures on single editions are logged and skipped.
type Crawler struct {
	client  *resty.Client
	cache   gcache.Cache
	logger  *logging.Logger
	baseUrl string
}

func NewCrawler(baseUrl string, logger *logging.Logger) *Crawler {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	return &Crawler{
		client:  resty.New().SetHostURL(baseUrl),
		cache:   gcache.New(500).LRU().Build(),
		logger:  logger,
		baseUrl: baseUrl,
	}
}

// extractDataPage pulls the data-page JSON out of an inertia page.
func extractDataPage(content string) ([]byte, error) {
	match := dataPageRegexp.FindStringSubmatch(content)
	if match == nil {
		return nil, errors.New("no data-page attribute in page")
	}
	return []byte(html.UnescapeString(match[1])), nil
}

type explorePage struct {
	Props struct {
		Results struct {
			Data []struct {
				Attributes struct {
					Sn interface{} `json:"sn"`
				} `json:"attributes"`
			} `json:"data"`
			Meta struct {
				Pagination struct {
					Next string `json:"next"`
				} `json:"pagination"`
			} `json:"meta"`
		} `json:"results"`
	} `json:"props"`
}

// CrawlIds collects the edition identifiers of one explore filter across all
// result pages. The returned list is deduplicated and sorted.
func (craw *Crawler) CrawlIds(filter string) ([]string, error) {
	seen := map[string]bool{}
	for page := 1; ; page++ {
		resp, err := craw.client.R().
			SetQueryParam("fqs", filter).
			SetQueryParam("pg", fmt.Sprintf("%v", page)).
			Get("/explore")
		if err != nil {
			return nil, errors.Wrapf(err, "cannot fetch explore page %v", page)
		}
		data, err := extractDataPage(string(resp.Body()))
		if err != nil {
			return nil, errors.Wrapf(err, "explore page %v", page)
		}
		result := &explorePage{}
		if err := json.Unmarshal(data, result); err != nil {
			return nil, errors.Wrapf(err, "cannot unmarshal explore page %v", page)
		}
		if len(result.Props.Results.Data) == 0 {
			break
		}
		for _, entry := range result.Props.Results.Data {
			if sn := stringValue(entry.Attributes.Sn); sn != "" {
				seen[sn] = true
			}
		}
		craw.logger.Infof("explore page %v: %v ids", page, len(result.Props.Results.Data))
		if result.Props.Results.Meta.Pagination.Next == "" {
			break
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type editionPage struct {
	Props struct {
		Edition       map[string]interface{} `json:"edition"`
		Digitisations []struct {
			Url string `json:"url"`
		} `json:"digitisations"`
		Copies []struct {
			Name      string `json:"name"`
			City      string `json:"city"`
			Country   string `json:"country"`
			Shelfmark string `json:"shelfmark"`
		} `json:"copies"`
	} `json:"props"`
}

// FetchEdition loads one edition page and flattens it into record rows.
// Results are cached by sn so duplicate identifiers are fetched once.
func (craw *Crawler) FetchEdition(sn string) ([]Record, error) {
	if cached, err := craw.cache.Get(sn); err == nil {
		return cached.([]Record), nil
	}
	resp, err := craw.client.R().Get(fmt.Sprintf("/editions/%s", sn))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot fetch edition %s", sn)
	}
	if resp.StatusCode() != 200 {
		return nil, errors.Errorf("edition %s: status %s", sn, resp.Status())
	}
	data, err := extractDataPage(string(resp.Body()))
	if err != nil {
		return nil, errors.Wrapf(err, "edition %s", sn)
	}
	records, err := parseEditionPage(sn, data)
	if err != nil {
		return nil, errors.Wrapf(err, "edition %s", sn)
	}
	craw.cache.Set(sn, records)
	return records, nil
}

// CrawlRecords fetches all editions, skipping the ones that fail.
func (craw *Crawler) CrawlRecords(ids []string) []Record {
	records := []Record{}
	for _, id := range ids {
		recs, err := craw.FetchEdition(id)
		if err != nil {
			craw.logger.Errorf("skipping edition %s: %v", id, err)
			continue
		}
		records = append(records, recs...)
	}
	return records
}

// parseEditionPage flattens the edition props of one page. Suffix numbered
// creator fields (author_1/role_1, ...) are grouped by role and joined with
// ";", everything else maps straight onto a record column.
func parseEditionPage(sn string, data []byte) ([]Record, error) {
	page := &editionPage{}
	if err := json.Unmarshal(data, page); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal edition data")
	}
	if page.Props.Edition == nil {
		return nil, errors.New("no edition props in page")
	}

	base := Record{"sn": sn}
	groups := map[string][]string{}
	for key, value := range page.Props.Edition {
		str := stringValue(value)
		key = strings.TrimPrefix(key, "std_")
		name, suffix, found := strings.Cut(key, "_")
		if found && isDigits(suffix) {
			if name == "role" {
				continue
			}
			if name == "author" {
				role := stringValue(page.Props.Edition["role_"+suffix])
				if mapped, ok := roleTypes[role]; ok {
					name = mapped
				}
			}
			if str != "" {
				groups[name] = append(groups[name], str)
			}
			continue
		}
		if str == "" {
			continue
		}
		for _, column := range RecordHeader {
			if column == key {
				base[column] = str
				break
			}
		}
	}
	for name, values := range groups {
		sort.Strings(values)
		for _, column := range RecordHeader {
			if column == name {
				base[column] = strings.Join(values, ";")
				break
			}
		}
	}

	base["is_digitised"] = fmt.Sprintf("%v", len(page.Props.Digitisations) > 0)
	base["has_copies"] = fmt.Sprintf("%v", len(page.Props.Copies) > 0)

	records := []Record{}
	if len(page.Props.Digitisations) == 0 && len(page.Props.Copies) == 0 {
		record := base.clone()
		record["is_lost"] = "true"
		records = append(records, record)
	}
	for _, digitisation := range page.Props.Digitisations {
		if digitisation.Url == "" {
			continue
		}
		record := base.clone()
		record["digitised_url"] = digitisation.Url
		records = append(records, record)
	}
	for _, holding := range page.Props.Copies {
		record := base.clone()
		record["copy_location"] = fmt.Sprintf("%s (%s, %s)", holding.Name, holding.City, holding.Country)
		record["copy_shelfmark"] = holding.Shelfmark
		records = append(records, record)
	}
	return records, nil
}

func (rec Record) clone() Record {
	clone := Record{}
	for key, value := range rec {
		clone[key] = value
	}
	return clone
}

func stringValue(value interface{}) string {
	switch val := value.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case bool:
		return fmt.Sprintf("%v", val)
	}
	return ""
}

func isDigits(str string) bool {
	if str == "" {
		return false
	}
	for _, r := range str {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// WriteRecordsCSV renders records in the export format the converter reads,
// quoting every field so embedded commas and quotes survive.
func WriteRecordsCSV(records []Record) string {
	sb := &strings.Builder{}
	writeRow := func(fields []string) {
		for idx, field := range fields {
			if idx > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`"` + strings.ReplaceAll(field, `"`, `""`) + `"`)
		}
		sb.WriteString("\n")
	}
	writeRow(RecordHeader)
	for _, record := range records {
		writeRow(record.Fields())
	}
	return sb.String()
}
