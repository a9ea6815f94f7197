package phrase

import (
	"fmt"

	"github.com/wanderpick/recommendation-service/internal/domain"
)

// The full verb vocabulary. Batches larger than this cannot be assigned
// pairwise-distinct verbs and are rejected outright.
var verbVocabulary = []string{
	"Romp", "Galavant", "Feast", "Revel", "Embrace",
	"Wander", "Frolic", "Saunter", "Bask", "Explore",
	"Roam", "Savor", "Chase", "Drift", "Meander",
	"Venture", "Soak", "Traverse", "Mosey", "Jaunt",
}

// Per-region preferred verb subsets. Regions missing from this table always
// draw from the global shuffled vocabulary.
var regionPreferredVerbs = map[string][]string{
	"Europe & Central Asia":      {"Romp", "Galavant", "Feast", "Revel", "Embrace"},
	"East Asia & Pacific":        {"Wander", "Savor", "Soak", "Venture", "Drift"},
	"Latin America & Caribbean":  {"Frolic", "Bask", "Revel", "Saunter", "Chase"},
	"Middle East & North Africa": {"Traverse", "Wander", "Feast", "Roam", "Meander"},
	"Sub-Saharan Africa":         {"Venture", "Roam", "Explore", "Chase", "Traverse"},
	"South Asia":                 {"Savor", "Meander", "Embrace", "Soak", "Jaunt"},
	"North America":              {"Mosey", "Jaunt", "Explore", "Drift", "Saunter"},
}

const regionalPreferenceChance = 0.7

// BatchCountry is the minimal country view needed for verb assignment.
type BatchCountry struct {
	Code   string
	Region string
}

// VerbsForBatch assigns one verb per input country, in input order, all
// pairwise distinct. With 70% probability a country draws an unused verb from
// its region's preferred subset; otherwise it takes the next unused verb from
// a globally shuffled copy of the vocabulary.
func (g *Generator) VerbsForBatch(countries []BatchCountry) ([]string, error) {
	if len(countries) > len(verbVocabulary) {
		return nil, fmt.Errorf("batch of %d verbs requested, vocabulary has %d: %w",
			len(countries), len(verbVocabulary), domain.ErrVerbVocabularyExhausted)
	}

	shuffled := make([]string, len(verbVocabulary))
	copy(shuffled, verbVocabulary)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	used := make(map[string]bool, len(countries))
	verbs := make([]string, 0, len(countries))

	for _, c := range countries {
		if g.rng.Float64() < regionalPreferenceChance {
			if v, ok := g.pickRegional(c.Region, used); ok {
				used[v] = true
				verbs = append(verbs, v)
				continue
			}
		}

		v, ok := nextUnused(shuffled, used)
		if !ok {
			// Unreachable given the size check above, but the distinctness
			// guarantee must never degrade to silent reuse.
			return nil, domain.ErrVerbVocabularyExhausted
		}
		used[v] = true
		verbs = append(verbs, v)
	}

	return verbs, nil
}

func (g *Generator) pickRegional(region string, used map[string]bool) (string, bool) {
	var available []string
	for _, v := range regionPreferredVerbs[region] {
		if !used[v] {
			available = append(available, v)
		}
	}
	if len(available) == 0 {
		return "", false
	}
	return available[g.rng.Intn(len(available))], true
}

func nextUnused(shuffled []string, used map[string]bool) (string, bool) {
	for _, v := range shuffled {
		if !used[v] {
			return v, true
		}
	}
	return "", false
}
