package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vectorgov/vectorgov-go/internal/models"
	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

// GetDocument fetches a single indexed document by ID
func (c *Client) GetDocument(ctx context.Context, documentID string) (*models.Document, error) {
	if documentID == "" {
		return nil, utils.NewAppError(utils.ErrCodeValidation, "document ID is required")
	}

	var doc models.Document
	if err := c.do(ctx, http.MethodGet, "/documents/"+url.PathEscape(documentID), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns a page of indexed documents
func (c *Client) ListDocuments(ctx context.Context, req models.ListDocumentsRequest) (*models.ListDocumentsResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", req.Page))
	query.Set("page_size", fmt.Sprintf("%d", req.PageSize))
	if req.Source != "" {
		query.Set("source", req.Source)
	}

	var resp models.ListDocumentsResponse
	if err := c.do(ctx, http.MethodGet, "/documents", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health reports the API health status
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
