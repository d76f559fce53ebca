package model

import (
	"encoding/json"
	"strings"
	"time"
)

// TagList is a product tag collection. The frontend sometimes submits tags
// as a comma separated string instead of an array, so unmarshalling accepts
// both forms; marshalling always emits an array.
type TagList []string

func (t *TagList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*t = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*t = out
	return nil
}

// Product is a merchandise item listed by a storekeeper. StoreKeeperID is
// the owner field consulted by the ownership checks; product names are
// unique per store (case-insensitive).
type Product struct {
	ID            string    `json:"id"`
	StoreKeeperID string    `json:"storeKeeperId"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Tags          TagList   `json:"tags"`
	ImageURL      string    `json:"imageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}
