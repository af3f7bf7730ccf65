package domain

// BlendMeta echoes the parameters the backend used for a compromise query.
type BlendMeta struct {
	Alpha    float64 `json:"alpha"`
	Limit    int     `json:"limit"`
	Returned int     `json:"returned"`
}

// BlendResult is one ranked compromise candidate. Results arrive ordered by
// score as the backend ranked them; the client never re-sorts.
type BlendResult struct {
	Film    Film     `json:"film"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// BlendResponse is the body of POST /compromise/.
type BlendResponse struct {
	Meta    BlendMeta     `json:"meta"`
	Results []BlendResult `json:"results"`
}
