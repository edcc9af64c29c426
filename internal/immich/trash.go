package immich

import (
	"context"
	"fmt"
	"net/http"

	"github.com/immich-janitor/immich-janitor/internal/models"
)

// GetTrashAssets lists every trashed asset
func (c *Client) GetTrashAssets(ctx context.Context) ([]models.Asset, error) {
	assets := make([]models.Asset, 0)
	if err := c.doRequest(ctx, http.MethodGet, "/trash", nil, &assets); err != nil {
		return nil, fmt.Errorf("failed to list trash: %w", err)
	}
	return assets, nil
}

// RestoreFromTrash restores the given assets in batches
func (c *Client) RestoreFromTrash(ctx context.Context, ids []string) error {
	for i, batch := range Batches(ids, c.cfg.BatchSize) {
		body := models.TrashRequest{IDs: batch}
		if err := c.doRequest(ctx, http.MethodPost, "/trash/restore/assets", body, nil); err != nil {
			return fmt.Errorf("failed to restore batch %d: %w", i+1, err)
		}
	}
	return nil
}

// EmptyTrash permanently deletes the given trashed assets. With no IDs the
// whole trash is emptied.
func (c *Client) EmptyTrash(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		if err := c.doRequest(ctx, http.MethodPost, "/trash/empty", nil, nil); err != nil {
			return fmt.Errorf("failed to empty trash: %w", err)
		}
		return nil
	}

	for i, batch := range Batches(ids, c.cfg.BatchSize) {
		body := models.TrashRequest{IDs: batch}
		if err := c.doRequest(ctx, http.MethodPost, "/trash/empty", body, nil); err != nil {
			return fmt.Errorf("failed to empty trash batch %d: %w", i+1, err)
		}
	}
	return nil
}
