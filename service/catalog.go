package service

import (
	"time"

	"github.com/chatia-cau/ofertas/model"
)

// ExampleOffers returns the two sample offers shown by the listing endpoint.
// Ids and dates are regenerated on every call; nothing is stored.
func ExampleOffers(now time.Time) []model.OfferSummary {
	created := now.Format(time.RFC3339)
	return []model.OfferSummary{
		{
			OfferID:     offerID("202412151200"),
			RFPName:     "Pliego_Transformacion_Digital.pdf",
			Status:      model.StatusCompleted,
			OfferType:   model.OfferDigitalTransformation,
			ClientType:  model.ClientPublic,
			CreatedDate: created,
		},
		{
			OfferID:     offerID("202412141500"),
			RFPName:     "Pliego_Cloud_Migration.pdf",
			Status:      model.StatusProcessed,
			OfferType:   model.OfferCloud,
			ClientType:  model.ClientPrivate,
			CreatedDate: created,
		},
	}
}

// Page holds one slice of a paginated listing.
type Page[T any] struct {
	Items   []T
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

// Paginate returns items[offset:offset+limit], clamped to the slice bounds.
// limit and offset must be non-negative.
func Paginate[T any](items []T, limit, offset int) Page[T] {
	total := len(items)
	start := min(offset, total)
	remaining := total - start
	end := start + min(limit, remaining)
	return Page[T]{
		Items:   items[start:end],
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: limit < remaining,
	}
}
