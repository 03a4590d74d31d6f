package models

import "time"

// AuditEntry is a single remote audit trail record
type AuditEntry struct {
	EntryID   string                 `json:"entry_id"`
	Timestamp time.Time              `json:"timestamp"`
	Actor     string                 `json:"actor"`
	Action    string                 `json:"action"`
	Resource  string                 `json:"resource"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// AuditLogsRequest filters the audit log listing
type AuditLogsRequest struct {
	Since  *time.Time `json:"since,omitempty"`
	Until  *time.Time `json:"until,omitempty"`
	Action string     `json:"action,omitempty"`
	Limit  int        `json:"limit,omitempty"`
}

// AuditLogsResponse is a page of audit entries
type AuditLogsResponse struct {
	Entries []AuditEntry `json:"entries"`
	Total   int          `json:"total"`
}

// AuditStats summarizes API usage
type AuditStats struct {
	TotalQueries   int      `json:"total_queries"`
	TotalDocuments int      `json:"total_documents"`
	QueriesLast24h int      `json:"queries_last_24h"`
	AvgQueryTimeMs float64  `json:"avg_query_time_ms"`
	TopSources     []string `json:"top_sources,omitempty"`
}
