package remote

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"shiftdesk/models"

	"go.uber.org/zap"
)

// DemandService is the remote source of truth for per-date staffing demand.
type DemandService interface {
	GetDemand(ctx context.Context, date string) ([]models.DemandSlot, error)
	ReplaceDemand(ctx context.Context, date string, slots []models.DemandSlot) error
}

type demandClient struct {
	httpClient
}

// NewDemandClient returns a DemandService speaking the /demand/{date} contract at baseURL.
func NewDemandClient(baseURL string, timeout time.Duration, logger *zap.Logger) DemandService {
	return &demandClient{httpClient: newHTTPClient(baseURL, timeout, logger)}
}

func (c *demandClient) GetDemand(ctx context.Context, date string) ([]models.DemandSlot, error) {
	var slots []models.DemandSlot
	if err := c.do(ctx, "get demand", http.MethodGet, "/demand/"+url.PathEscape(date), nil, &slots, nil); err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []models.DemandSlot{}
	}
	return slots, nil
}

func (c *demandClient) ReplaceDemand(ctx context.Context, date string, slots []models.DemandSlot) error {
	if slots == nil {
		slots = []models.DemandSlot{}
	}
	return c.do(ctx, "replace demand", http.MethodPost, "/demand/"+url.PathEscape(date), slots, nil, nil)
}
