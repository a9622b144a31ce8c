package services

import "kasiBack/internal/models"

// buildPagination computes page metadata. With a single type, hasNext means
// the page did not reach that type's count. With several types every bucket
// is paged independently, so hasNext is true while any bucket still has
// unseen matches.
func buildPagination(req models.SearchRequest, total int64, perType []typeResult) models.Pagination {
	skip := int64(req.Skip())
	hasNext := false
	if len(perType) == 1 {
		hasNext = skip+int64(len(perType[0].items)) < total
	} else {
		for _, r := range perType {
			if skip+int64(len(r.items)) < r.count {
				hasNext = true
				break
			}
		}
	}

	return models.Pagination{
		Current: req.Page,
		Total:   totalPages(total, req.Limit),
		HasNext: hasNext,
		HasPrev: req.Page > 1,
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}
