package client

import (
	"context"
	"net/http"

	"github.com/vectorgov/vectorgov-go/internal/models"
	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

// Search runs a semantic search query against the document index
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	if req.Query == "" {
		return nil, utils.NewAppError(utils.ErrCodeValidation, "search query is required")
	}
	if req.TopK == 0 {
		req.TopK = 10
	}

	var resp models.SearchResponse
	if err := c.do(ctx, http.MethodPost, "/search", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ask answers a natural-language question grounded on the indexed
// documents, returning the answer with supporting citations
func (c *Client) Ask(ctx context.Context, req models.AskRequest) (*models.AskResponse, error) {
	if req.Question == "" {
		return nil, utils.NewAppError(utils.ErrCodeValidation, "question is required")
	}
	if req.TopK == 0 {
		req.TopK = 5
	}

	var resp models.AskResponse
	if err := c.do(ctx, http.MethodPost, "/ask", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
