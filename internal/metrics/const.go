package metrics

const Namespace = "certportal"

const (
	MatchExact    = "exact"
	MatchAlias    = "alias"
	MatchFuzzy    = "fuzzy"
	MatchNotFound = "not_found"
)

const (
	OutcomeSuccess  = "success"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)

const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)
