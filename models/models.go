package models

// AnalysisResult is the community detection summary reported to clients.
type AnalysisResult struct {
	ModularityScore          float64 `json:"modularity_score"`
	TotalCommunitiesDetected int     `json:"total_communities_detected"`
	TotalNodes               int     `json:"total_nodes"`
}

// AnalysisResponse is the /analyze payload.
type AnalysisResponse struct {
	Status    string         `json:"status"`
	Algorithm string         `json:"algorithm"`
	Results   AnalysisResult `json:"results"`
}

// APIResponse is the generic envelope for non-analysis endpoints and
// error responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
