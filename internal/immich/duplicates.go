package immich

import (
	"context"
	"fmt"
	"net/http"

	"github.com/immich-janitor/immich-janitor/internal/models"
)

// GetDuplicates lists the duplicate groups the server has detected
func (c *Client) GetDuplicates(ctx context.Context) ([]models.DuplicateGroup, error) {
	groups := make([]models.DuplicateGroup, 0)
	if err := c.doRequest(ctx, http.MethodGet, "/duplicates", nil, &groups); err != nil {
		return nil, fmt.Errorf("failed to list duplicates: %w", err)
	}
	return groups, nil
}

// DeleteDuplicateGroup dismisses a duplicate group without touching its assets
func (c *Client) DeleteDuplicateGroup(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodDelete, "/duplicates/"+id, nil, nil)
}
