package bibliography

import (
	"encoding/json"

	"emperror.dev/errors"
)

// Library is the root of a structured (JSON) ingest document.
type Library struct {
	Items       []Item       `json:"items"`
	Collections []Collection `json:"collections,omitempty"`
}

// LoadLibrary parses a structured ingest document. Identifiers are taken as
// given in the source, no synthesis happens here.
func LoadLibrary(data []byte) (*Library, error) {
	library := &Library{}
	if err := json.Unmarshal(data, library); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal library document")
	}
	return library, nil
}
