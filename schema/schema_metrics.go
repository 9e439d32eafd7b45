package schema

// MetricsView describes how one leaderboard view is scored, for display purposes.
type MetricsView struct {
	Name     string `json:"name"`
	Purpose  string `json:"purpose"`
	Formula  string `json:"formula"`
	Sort     string `json:"sort"`
	TieBreak string `json:"tie_break"`
	Minimum  string `json:"minimum"`
}

// MetricsRenderModel contains all processed data needed for displaying metric definitions.
type MetricsRenderModel struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Timezone    string        `json:"timezone"`
	Params      RatingParams  `json:"params"`
	Rating      []string      `json:"rating"` // Rating formula lines with active parameters
	Views       []MetricsView `json:"views"`
}
