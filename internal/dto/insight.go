package dto

// InsightResponse carries the generated financial comment. The text is
// opaque: it is returned exactly as the generator produced it.
type InsightResponse struct {
	Insight string `json:"insight"`
}
