package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vectorgov/vectorgov-go/internal/models"
)

// AuditLogs returns remote audit trail entries matching the filter
func (c *Client) AuditLogs(ctx context.Context, req models.AuditLogsRequest) (*models.AuditLogsResponse, error) {
	query := url.Values{}
	if req.Since != nil {
		query.Set("since", req.Since.UTC().Format(time.RFC3339))
	}
	if req.Until != nil {
		query.Set("until", req.Until.UTC().Format(time.RFC3339))
	}
	if req.Action != "" {
		query.Set("action", req.Action)
	}
	if req.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", req.Limit))
	}

	var resp models.AuditLogsResponse
	if err := c.do(ctx, http.MethodGet, "/audit/logs", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AuditStats returns aggregate usage statistics
func (c *Client) AuditStats(ctx context.Context) (*models.AuditStats, error) {
	var stats models.AuditStats
	if err := c.do(ctx, http.MethodGet, "/audit/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
