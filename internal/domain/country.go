package domain

import "time"

// Country is a single catalog record. The catalog is read-only input to the
// recommendation engine and is never mutated.
type Country struct {
	Code      string   `json:"code"` // ISO 3166-1 alpha-2
	Name      string   `json:"name"`
	Region    string   `json:"region"`
	Interests []string `json:"interests"`
}

// HasInterest reports whether the country satisfies the given interest tag.
func (c Country) HasInterest(tag string) bool {
	for _, t := range c.Interests {
		if t == tag {
			return true
		}
	}
	return false
}

// Coordinate is a decimal-degree lat/lng pair. A country without a coordinate
// entry is ineligible both as a home location and as a destination.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Traveler struct {
	ID          int64     `json:"id"`
	HomeCountry string    `json:"home_country"`
	CreatedAt   time.Time `json:"created_at"`
}
