package classifier

import (
	"fmt"

	"github.com/medclaims/claims-pipeline/constants"
	"github.com/medclaims/claims-pipeline/internal/entity"
)

// GroupPages assigns a document ID to every classified page. All claim_form
// pages collapse into the single group "claim_form_1" (a multi-page claim form
// is one document, never several). For every other type the current heuristic
// is one page per document instance: each page bumps a per-type counter.
//
// Real multi-page grouping needs layout continuity signals not available at
// this layer; downstream stages only see the (type, id) keys, so the heuristic
// can be replaced here without touching them.
func GroupPages(pages []entity.Page) []entity.Page {
	grouped := make([]entity.Page, 0, len(pages))
	counters := map[constants.DocumentType]int{}

	for _, page := range pages {
		if page.DocumentType == constants.ClaimForm {
			page.DocumentID = "claim_form_1"
		} else {
			counters[page.DocumentType]++
			page.DocumentID = fmt.Sprintf("%s_%d", page.DocumentType, counters[page.DocumentType])
		}
		grouped = append(grouped, page)
	}
	return grouped
}

// BuildGroups collects grouped pages into document groups, preserving the
// order in which each (type, id) key is first seen. That discovery order is
// the order extracted records are assembled in, which the entity aggregator's
// first-non-null rules rely on.
func BuildGroups(pages []entity.Page) []entity.DocumentGroup {
	index := map[string]int{}
	groups := make([]entity.DocumentGroup, 0, len(pages))

	for _, page := range pages {
		key := string(page.DocumentType) + "/" + page.DocumentID
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, entity.DocumentGroup{
				DocumentType: page.DocumentType,
				DocumentID:   page.DocumentID,
			})
		}
		groups[i].Pages = append(groups[i].Pages, page)
	}
	return groups
}
