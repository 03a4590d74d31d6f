package models

import "time"

// Document describes an indexed document
type Document struct {
	DocumentID  string                 `json:"document_id"`
	Title       string                 `json:"title"`
	Source      string                 `json:"source"`
	ContentType string                 `json:"content_type"`
	ChunkCount  int                    `json:"chunk_count"`
	CreatedAt   time.Time              `json:"created_at"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ListDocumentsRequest holds pagination parameters for document listing
type ListDocumentsRequest struct {
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Source   string `json:"source,omitempty"`
}

// ListDocumentsResponse is a page of indexed documents
type ListDocumentsResponse struct {
	Documents []Document `json:"documents"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

// HealthStatus is the API health report
type HealthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	DocumentCount int    `json:"document_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
