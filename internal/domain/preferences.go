package domain

import "math"

// FlightDurationBucket is one of four ordinal travel-tolerance categories.
type FlightDurationBucket string

const (
	DurationUnder3h FlightDurationBucket = "under-3h"
	Duration3to6h   FlightDurationBucket = "3-6h"
	Duration6to12h  FlightDurationBucket = "6-12h"
	Duration12hPlus FlightDurationBucket = "12h+"
)

// CeilingHours returns the hour ceiling for the bucket. The 12h+ bucket is
// unbounded. ok is false for an unrecognized bucket.
func (b FlightDurationBucket) CeilingHours() (hours float64, ok bool) {
	switch b {
	case DurationUnder3h:
		return 3, true
	case Duration3to6h:
		return 6, true
	case Duration6to12h:
		return 12, true
	case Duration12hPlus:
		return math.Inf(1), true
	}
	return 0, false
}

// Preferences are the traveler-supplied inputs to one generation run.
// An empty interest set is valid and yields non-personalized scoring.
// The order of Interests matters: the first one is treated as primary
// when composing reason text.
type Preferences struct {
	HomeLocation      string               `json:"home_location"`
	Interests         []string             `json:"interests"`
	MaxFlightDuration FlightDurationBucket `json:"max_flight_duration"`
}
