package models

// SearchRequest holds the parameters for a semantic search query
type SearchRequest struct {
	Query     string            `json:"query"`
	TopK      int               `json:"top_k,omitempty"`
	Threshold float64           `json:"threshold,omitempty"`
	Filters   map[string]string `json:"filters,omitempty"`
}

// SearchResult is a single document chunk matched by a query
type SearchResult struct {
	DocumentID string                 `json:"document_id"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	Score      float64                `json:"score"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// SearchResponse is the API response for a search query
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
	QueryTimeMs  float64        `json:"query_time_ms"`
}

// AskRequest holds the parameters for a question-answering call
type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// Citation points at a document passage supporting an answer
type Citation struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Excerpt    string  `json:"excerpt"`
	Score      float64 `json:"score"`
}

// AskResponse is the API response for a question-answering call
type AskResponse struct {
	Answer     string     `json:"answer"`
	Citations  []Citation `json:"citations"`
	Model      string     `json:"model"`
	TokensUsed int        `json:"tokens_used"`
}
