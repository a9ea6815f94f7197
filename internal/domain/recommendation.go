package domain

// CostBreakdown holds USD-equivalent costs for a fixed 7-night trip.
// Total is always Flight + 7*Hotel + 7*Daily.
type CostBreakdown struct {
	Flight int `json:"flight"`
	Hotel  int `json:"hotel"`
	Daily  int `json:"daily"`
	Total  int `json:"total"`
}

type TierCosts struct {
	Budget CostBreakdown `json:"budget"`
	Modest CostBreakdown `json:"modest"`
	Bougie CostBreakdown `json:"bougie"`
}

// CountryRecommendation is one entry in a generated batch. ImageURL is always
// nil at this layer; the photo-fetch collaborator fills it in later.
type CountryRecommendation struct {
	CountryCode string    `json:"country_code"`
	CountryName string    `json:"country_name"`
	Reason      string    `json:"reason"`
	MatchScore  int       `json:"match_score"`
	Costs       TierCosts `json:"costs"`
	ActionVerb  string    `json:"action_verb"`
	ImageURL    *string   `json:"image_url"`
}

type RecommendationMeta struct {
	CacheHit     bool   `json:"cache_hit"`
	GeneratedAt  string `json:"generated_at"`
	GenerationID string `json:"generation_id"`
	TotalCount   int    `json:"total_count"`
}

type RecommendationResult struct {
	Recommendations []CountryRecommendation
	CacheHit        bool
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

type BatchTravelerResult struct {
	TravelerID      int64                   `json:"traveler_id"`
	Recommendations []CountryRecommendation `json:"recommendations,omitempty"`
	Status          string                  `json:"status"`
	Error           string                  `json:"error,omitempty"`
	Message         string                  `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Page           int                   `json:"page"`
	Limit          int                   `json:"limit"`
	TotalTravelers int                   `json:"total_travelers"`
	Results        []BatchTravelerResult `json:"results"`
	Summary        BatchSummary          `json:"summary"`
	Metadata       BatchMeta             `json:"metadata"`
}
