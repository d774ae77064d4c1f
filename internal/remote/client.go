package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hillandale/walksync/internal/config"
	"github.com/hillandale/walksync/internal/models"
)

// Client is the listing contract consumed by the reconciliation core.
type Client interface {
	// ListSummaries issues a date-ranged or ID-scoped query and returns
	// summary records.
	ListSummaries(ctx context.Context, query models.RemoteQuery) ([]models.RemoteWalkSummary, error)

	// ListRaw returns full raw records for import or direct viewing.
	ListRaw(ctx context.Context, query models.RemoteQuery) ([]models.RemoteWalkRaw, error)
}

// UnavailableError indicates the listing call failed at the network or auth
// level. The core performs no local mutation when it sees this.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("walks platform unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// HTTPClient talks to the walks-and-events platform over HTTP with
// transport-level retries.
type HTTPClient struct {
	cfg    config.RemoteConfig
	http   *http.Client
	policy RetryPolicy
	logger *slog.Logger
	now    func() time.Time
}

// NewHTTPClient constructs a platform client.
func NewHTTPClient(cfg config.RemoteConfig, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
		policy: DefaultRetryPolicy(),
		logger: logger,
		now:    time.Now,
	}
}

type summaryResponse struct {
	Data []models.RemoteWalkSummary `json:"data"`
}

type rawResponse struct {
	Data []models.RemoteWalkRaw `json:"data"`
}

// ListSummaries fetches summary records for the query.
func (c *HTTPClient) ListSummaries(ctx context.Context, query models.RemoteQuery) ([]models.RemoteWalkSummary, error) {
	query.Raw = false

	body, err := c.get(ctx, query)
	if err != nil {
		return nil, err
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("decode listing response: %w", err)}
	}

	c.logger.Debug("listed remote walk summaries", "count", len(resp.Data))
	return resp.Data, nil
}

// ListRaw fetches full raw records for the query.
func (c *HTTPClient) ListRaw(ctx context.Context, query models.RemoteQuery) ([]models.RemoteWalkRaw, error) {
	query.Raw = true

	body, err := c.get(ctx, query)
	if err != nil {
		return nil, err
	}

	var resp rawResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("decode raw listing response: %w", err)}
	}

	c.logger.Debug("listed remote walks raw", "count", len(resp.Data))
	return resp.Data, nil
}

func (c *HTTPClient) get(ctx context.Context, query models.RemoteQuery) ([]byte, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/walks-events?%s", strings.TrimSuffix(c.cfg.BaseURL, "/"), c.buildValues(query).Encode())

	var body []byte
	err := Retry(ctx, c.policy, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		if c.cfg.APIKey != "" {
			req.Header.Set("x-api-key", c.cfg.APIKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return NewRetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests:
			return NewRetryableErrorWithDelay(fmt.Errorf("rate limited"), retryAfter(resp))
		case resp.StatusCode >= 500:
			return NewRetryableError(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		default:
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return NewRetryableError(fmt.Errorf("failed to read body: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	return body, nil
}

// buildValues maps a query onto the platform's request parameters, applying
// the default two-year horizon when neither ids nor date bounds were given.
func (c *HTTPClient) buildValues(query models.RemoteQuery) url.Values {
	values := url.Values{}

	if query.ItemType != "" {
		values.Set("types", query.ItemType)
	}

	if len(query.IDs) > 0 {
		values.Set("ids", strings.Join(query.IDs, ","))
	} else {
		date, dateEnd := query.Date, query.DateEnd
		if date == "" {
			from, to := DefaultDateRange(c.now())
			date = CalendarDate(from)
			dateEnd = CalendarDate(to)
		}
		values.Set("date", date)
		if dateEnd != "" {
			values.Set("date-end", dateEnd)
		}
	}

	values.Set("sort", string(query.Sort))
	values.Set("order", string(query.Order))
	values.Set("limit", strconv.Itoa(query.Limit))

	if query.Raw {
		values.Set("raw", "true")
	}

	groupCode := query.GroupCode
	if groupCode == "" {
		groupCode = c.cfg.GroupCode
	}
	if groupCode != "" {
		values.Set("groups", groupCode)
	}

	return values
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}
