package entity

import "github.com/medclaims/claims-pipeline/constants"

// Page is one scanned page after classification. DocumentID is assigned by the
// grouper and identifies the document instance the page belongs to; pages are
// treated as immutable once grouped.
type Page struct {
	PageNumber   int                    `json:"page_number"`
	RawText      string                 `json:"raw_text"`
	DocumentType constants.DocumentType `json:"document_type"`
	DocumentID   string                 `json:"document_id,omitempty"`
	Confidence   float64                `json:"confidence"`
}

// DocumentGroup is one logical document instance: the ordered pages sharing a
// (document_type, document_id) key.
type DocumentGroup struct {
	DocumentType constants.DocumentType
	DocumentID   string
	Pages        []Page
}

// PageTexts returns the raw text of each page in order.
func (g DocumentGroup) PageTexts() []string {
	texts := make([]string, 0, len(g.Pages))
	for _, p := range g.Pages {
		texts = append(texts, p.RawText)
	}
	return texts
}
