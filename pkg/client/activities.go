package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"actman/pkg/model"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ActivitiesClient talks to the upstream Activities API, the system of
// record for prisons, activities, schedules and allocations. Regime
// tables change rarely and are read on almost every wizard step, so they
// sit behind a small LRU keyed by prison code; writes invalidate the
// entry so the next read sees the saved table.
type ActivitiesClient struct {
	httpClient  *HttpClient
	regimeCache *lru.Cache[string, []model.RegimeDay]
}

func NewActivitiesClient(baseURL string, timeout time.Duration, regimeCacheSize int) (*ActivitiesClient, error) {
	cache, err := lru.New[string, []model.RegimeDay](regimeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create regime cache: %w", err)
	}
	return &ActivitiesClient{
		httpClient:  NewHttpClient(baseURL, timeout),
		regimeCache: cache,
	}, nil
}

// GetPrisonRegime fetches the seven-day regime table for a prison. A 404
// is not an error: a prison with no saved regime yet gets the all-"-"
// create-mode table, which is not cached so the first save shows up.
func (c *ActivitiesClient) GetPrisonRegime(ctx context.Context, prisonCode string) ([]model.RegimeDay, error) {
	if regime, ok := c.regimeCache.Get(prisonCode); ok {
		return regime, nil
	}

	resp, err := c.httpClient.GET(ctx, "/prison/prison-regime/"+url.PathEscape(prisonCode))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return model.EmptyRegime(prisonCode), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get prison regime: %s", GetErrorMessage(resp))
	}

	var regime []model.RegimeDay
	if err := resp.DecodeJSON(&regime); err != nil {
		return nil, fmt.Errorf("failed to decode prison regime: %w", err)
	}

	c.regimeCache.Add(prisonCode, regime)
	return regime, nil
}

// UpdatePrisonRegime overwrites the whole seven-day table. All seven
// records go up together, keyed by day name; there is no single-day
// update upstream.
func (c *ActivitiesClient) UpdatePrisonRegime(ctx context.Context, prisonCode string, regime []model.RegimeDay) ([]model.RegimeDay, error) {
	resp, err := c.httpClient.PUT(ctx, "/prison/prison-regime/"+url.PathEscape(prisonCode), regime)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("update prison regime: %s", GetErrorMessage(resp))
	}

	var saved []model.RegimeDay
	if err := resp.DecodeJSON(&saved); err != nil {
		return nil, fmt.Errorf("failed to decode saved regime: %w", err)
	}

	c.regimeCache.Remove(prisonCode)
	return saved, nil
}

func (c *ActivitiesClient) GetActivitySchedule(ctx context.Context, scheduleID int) (*model.ActivitySchedule, error) {
	resp, err := c.httpClient.GET(ctx, fmt.Sprintf("/schedules/%d", scheduleID))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get activity schedule: %s", GetErrorMessage(resp))
	}

	var activitySchedule model.ActivitySchedule
	if err := resp.DecodeJSON(&activitySchedule); err != nil {
		return nil, fmt.Errorf("failed to decode activity schedule: %w", err)
	}
	return &activitySchedule, nil
}

// ActivityUpdateRequest is the slice of an activity this service edits.
type ActivityUpdateRequest struct {
	Slots         []model.Slot `json:"slots"`
	ScheduleWeeks int          `json:"scheduleWeeks"`
}

func (c *ActivitiesClient) UpdateActivity(ctx context.Context, prisonCode string, activityID int, update ActivityUpdateRequest) error {
	path := fmt.Sprintf("/activities/%s/activityId/%d", url.PathEscape(prisonCode), activityID)
	resp, err := c.httpClient.PATCH(ctx, path, update)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("update activity: %s", GetErrorMessage(resp))
	}
	return nil
}

// AllocationUpdateRequest carries the full replacement exclusion set for
// one allocation.
type AllocationUpdateRequest struct {
	Exclusions []model.Slot `json:"exclusions"`
}

func (c *ActivitiesClient) UpdateAllocation(ctx context.Context, prisonCode string, allocationID int, update AllocationUpdateRequest) error {
	path := fmt.Sprintf("/allocations/%s/allocationId/%d", url.PathEscape(prisonCode), allocationID)
	resp, err := c.httpClient.PATCH(ctx, path, update)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("update allocation: %s", GetErrorMessage(resp))
	}
	return nil
}

// GetAllocation reads one allocation with its current exclusions.
func (c *ActivitiesClient) GetAllocation(ctx context.Context, allocationID int) (*model.Allocation, error) {
	resp, err := c.httpClient.GET(ctx, fmt.Sprintf("/allocations/id/%d", allocationID))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get allocation: %s", GetErrorMessage(resp))
	}

	var allocation model.Allocation
	if err := resp.DecodeJSON(&allocation); err != nil {
		return nil, fmt.Errorf("failed to decode allocation: %w", err)
	}
	return &allocation, nil
}
