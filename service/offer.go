package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const offerIDTimeLayout = "200601021504"

// NewOfferID returns an id of the form OFF-<8 hex>-<YYYYMMDDHHMM>.
func NewOfferID(now time.Time) string {
	return offerID(now.Format(offerIDTimeLayout))
}

func offerID(suffix string) string {
	// the first group of a canonical UUID is 8 lowercase hex characters
	return fmt.Sprintf("OFF-%s-%s", uuid.New().String()[:8], suffix)
}
