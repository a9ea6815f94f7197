// Package phrase produces the human-readable justification text and playful
// action verbs attached to each recommendation.
package phrase

import (
	"fmt"
	"math/rand"
)

// Generator picks reason templates and batch verbs using an injectable random
// source so tests can run deterministically. Not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Templates are keyed by interest tag. Each tag has several variants so
// repeated generations within a session don't read identically. %s is the
// country name.
var reasonTemplates = map[string][]string{
	"weather": {
		"%s is blessed with the kind of weather people write postcards about",
		"Sun-chasers rate %s among their favorite escapes",
		"The forecast in %s practically begs you to pack light",
		"%s delivers blue skies when you need them most",
	},
	"relaxation": {
		"%s was made for doing absolutely nothing, beautifully",
		"Unwinding is a national pastime in %s",
		"%s has perfected the art of the slow afternoon",
		"Nobody rushes anybody in %s",
	},
	"culture": {
		"%s is layered with history you can wander through for days",
		"The museums and markets of %s reward the curious",
		"%s wears its traditions proudly and shares them generously",
		"Every street corner in %s has a story attached",
	},
	"action": {
		"%s is an open invitation to get your heart rate up",
		"Adrenaline comes standard in %s",
		"%s packs more adventure per square kilometer than most",
		"Thrill-seekers keep %s on speed dial",
	},
}

const genericReasonTemplate = "%s offers diverse experiences for every kind of traveler"

// Reason returns justification text for a country. With an empty interest
// set it falls back to the generic diverse-experiences sentence; otherwise
// the first interest in caller order is primary and one of its template
// variants is chosen at random.
func (g *Generator) Reason(countryName string, interests []string) string {
	if len(interests) == 0 {
		return fmt.Sprintf(genericReasonTemplate, countryName)
	}

	variants, ok := reasonTemplates[interests[0]]
	if !ok {
		return fmt.Sprintf(genericReasonTemplate, countryName)
	}

	return fmt.Sprintf(variants[g.rng.Intn(len(variants))], countryName)
}
