package immich

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/immich-janitor/immich-janitor/internal/models"
	"github.com/immich-janitor/immich-janitor/internal/utils"
)

// progressEvery is how many pages pass between progress reports
const progressEvery = 10

// AssetQuery narrows GetAllAssets
type AssetQuery struct {
	Limit    int              // Keep at most this many after filtering, 0 for all
	Pattern  string           // Filename regex, searched
	WithExif bool             // Request EXIF data (sizes, capture time)
	Progress func(fetched int) // Called every progressEvery pages
}

type searchMetadataRequest struct {
	Page     int  `json:"page"`
	Size     int  `json:"size"`
	WithExif bool `json:"withExif"`
}

type searchMetadataResponse struct {
	Assets struct {
		Items []models.Asset `json:"items"`
		Total int            `json:"total"`
	} `json:"assets"`
}

// GetAllAssets pages through the metadata search endpoint until a short
// page, then applies the pattern filter and limit
func (c *Client) GetAllAssets(ctx context.Context, q AssetQuery) ([]models.Asset, error) {
	var re *regexp.Regexp
	if q.Pattern != "" {
		var err error
		re, err = regexp.Compile(q.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", q.Pattern, err)
		}
	}

	all := make([]models.Asset, 0)
	for page := 1; ; page++ {
		var resp searchMetadataResponse
		req := searchMetadataRequest{Page: page, Size: c.cfg.PageSize, WithExif: q.WithExif}
		if err := c.doRequest(ctx, http.MethodPost, "/search/metadata", req, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch assets page %d: %w", page, err)
		}

		items := resp.Assets.Items
		all = append(all, items...)
		if len(items) < c.cfg.PageSize {
			break
		}

		if page%progressEvery == 0 {
			utils.Info("fetched %d assets so far", len(all))
			if q.Progress != nil {
				q.Progress(len(all))
			}
		}
	}

	set := models.NewAssetSet(all)
	if re != nil {
		set = set.FilterPattern(re)
	}
	if q.Limit > 0 {
		set = set.Limit(q.Limit)
	}
	utils.Debug("loaded %d assets", set.Len())
	return set.Assets, nil
}

// GetAsset fetches a single asset by UUID
func (c *Client) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid asset id %q: %w", id, err)
	}

	var asset models.Asset
	if err := c.doRequest(ctx, http.MethodGet, "/assets/"+id, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAssets moves assets to the trash, or removes them permanently when
// force is set. IDs are sent in batches of BatchSize.
func (c *Client) DeleteAssets(ctx context.Context, ids []string, force bool) error {
	for i, batch := range Batches(ids, c.cfg.BatchSize) {
		body := models.AssetBulkDeleteRequest{IDs: batch, Force: force}
		if err := c.doRequest(ctx, http.MethodDelete, "/assets", body, nil); err != nil {
			return fmt.Errorf("failed to delete batch %d: %w", i+1, err)
		}
	}
	return nil
}
