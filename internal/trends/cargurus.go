package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/carworth/carworth/internal/dates"
	apperrors "github.com/carworth/carworth/internal/errors"
)

const (
	// DefaultBaseURL is the CarGurus price-trends endpoint.
	DefaultBaseURL = "https://www.cargurus.com/research/price-trends"

	// dataRoute selects the Remix data document instead of the HTML page.
	dataRoute = "routes/($intl).research.price-trends.$makeModelSlug"

	// userAgent mirrors a desktop browser; the feed serves a login page to
	// unknown agents.
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	// Request configuration
	defaultRequestTimeout  = 30 * time.Second
	defaultRequestInterval = time.Second

	// Retry configuration for transient failures
	initialRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 30 * time.Second
	retryMultiplier   = 2.0
	retryJitter       = 0.5
	maxRetryElapsed   = 2 * time.Minute
)

// CarGurusConfig configures the price-trends client. The zero value works:
// every field has a sensible default.
type CarGurusConfig struct {
	// BaseURL overrides the provider endpoint, mainly for tests.
	BaseURL string
	// RequestInterval is the minimum spacing between successive requests.
	RequestInterval time.Duration
	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration
	// Transport overrides the HTTP transport, for example to install the
	// daily disk cache. Nil uses http.DefaultTransport.
	Transport http.RoundTripper
	// Logger receives per-request debug logging. Nil uses slog.Default.
	Logger *slog.Logger
}

// CarGurus is the price-trends feed client. It paces requests with a rate
// limiter so successive window fetches respect the provider's throttling,
// and retries transient transport failures with exponential backoff.
// Authentication rejections, rate-limit responses and malformed responses
// are never retried; they surface as typed fetch errors.
type CarGurus struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	logger     *slog.Logger
}

// NewCarGurus creates a price-trends client from cfg.
func NewCarGurus(cfg CarGurusConfig) *CarGurus {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = defaultRequestInterval
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &CarGurus{
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: cfg.Transport,
		},
		limiter: rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  cfg.Logger.With("component", "cargurus"),
	}
}

// Fetch implements Source against the live feed.
func (c *CarGurus) Fetch(ctx context.Context, req FetchRequest) ([]Point, error) {
	window := req.Window.Range()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewFetchError(apperrors.FetchNetwork, window,
			fmt.Errorf("waiting for request slot: %w", err))
	}

	requestURL := c.buildURL(req)
	c.logger.Debug("fetching price trends",
		"window", window.String(),
		"entity_id", req.EntityID,
		"model_path", req.ModelPath)

	body, err := c.get(ctx, requestURL, req.SessionCookie)
	if err != nil {
		if fe := apperrors.AsFetch(err); fe != nil {
			fe.Window = window
			return nil, fe
		}
		return nil, apperrors.NewFetchError(apperrors.FetchNetwork, window, err)
	}

	points, err := parsePricePoints(body)
	if err != nil {
		return nil, apperrors.NewFetchError(apperrors.FetchParse, window, err)
	}

	c.logger.Debug("fetched price trends", "window", window.String(), "points", len(points))
	return points, nil
}

// buildURL composes the window query for one fetch.
func (c *CarGurus) buildURL(req FetchRequest) string {
	params := url.Values{}
	params.Set("entityIds", req.EntityID)
	params.Set("startDate", strconv.FormatInt(req.Window.StartMs, 10))
	params.Set("endDate", strconv.FormatInt(req.Window.EndMs, 10))
	params.Set("_data", dataRoute)

	return c.baseURL + "/" + strings.TrimLeft(req.ModelPath, "/") + "?" + params.Encode()
}

// get performs the HTTP request with retry for transient failures. Fatal
// conditions (auth, rate limit, client errors) come back as *FetchError
// without the window set; Fetch fills it in.
func (c *CarGurus) get(ctx context.Context, requestURL, cookie string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialRetryDelay
	policy.MaxInterval = maxRetryDelay
	policy.Multiplier = retryMultiplier
	policy.RandomizationFactor = retryJitter
	policy.MaxElapsedTime = maxRetryElapsed

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("building request: %w", err))
		}
		req.Header.Set("Cookie", "JSESSIONID="+cookie)
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Debug("request failed, retrying", "error", err)
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		// The feed answers an expired or invalid session with a redirect
		// to its login page rather than a plain 401.
		if resp.StatusCode == http.StatusUnauthorized || isLoginRedirect(resp) {
			return backoff.Permanent(apperrors.NewFetchError(apperrors.FetchAuth, dates.Range{},
				fmt.Errorf("session cookie rejected (status %d)", resp.StatusCode)))
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			cause := fmt.Errorf("provider rate limit (status 429)")
			if after := resp.Header.Get("Retry-After"); after != "" {
				cause = fmt.Errorf("provider rate limit (status 429, retry after %s)", after)
			}
			return backoff.Permanent(apperrors.NewFetchError(apperrors.FetchRateLimit, dates.Range{}, cause))
		}

		if resp.StatusCode >= 500 {
			c.logger.Debug("server error, retrying", "status", resp.StatusCode)
			return fmt.Errorf("server error: status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(apperrors.NewFetchError(apperrors.FetchNetwork, dates.Range{},
				fmt.Errorf("unexpected status %d", resp.StatusCode)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

// isLoginRedirect reports whether the request was redirected to a login
// page, which the feed does for anonymous or expired sessions.
func isLoginRedirect(resp *http.Response) bool {
	final := resp.Request.URL
	return final != nil && strings.Contains(strings.ToLower(final.Path), "login")
}

// parsePricePoints extracts dated prices from the Remix data document:
//
//	{"pricePointsEntities": [{"pricePoints": [{"date": 1704067200000, "price": 24995.0}, ...]}]}
//
// A missing or mis-typed field anywhere is a parse failure; points are
// never silently dropped. An empty entity or point list is a defined-empty
// window and yields no points and no error.
func parsePricePoints(body []byte) ([]Point, error) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}

	rawEntities, err := jsonpath.Get("$.pricePointsEntities", doc)
	if err != nil {
		return nil, fmt.Errorf("response has no pricePointsEntities: %w", err)
	}
	entities, ok := rawEntities.([]interface{})
	if !ok {
		return nil, fmt.Errorf("pricePointsEntities is not a list")
	}
	if len(entities) == 0 {
		return nil, nil
	}

	rawPoints, err := jsonpath.Get("$.pricePoints", entities[0])
	if err != nil {
		return nil, fmt.Errorf("entity has no pricePoints: %w", err)
	}
	list, ok := rawPoints.([]interface{})
	if !ok {
		return nil, fmt.Errorf("pricePoints is not a list")
	}

	points := make([]Point, 0, len(list))
	for i, raw := range list {
		point, err := parsePoint(raw)
		if err != nil {
			return nil, fmt.Errorf("price point %d: %w", i, err)
		}
		points = append(points, point)
	}
	return points, nil
}

// parsePoint reads one {date, price} object.
func parsePoint(raw interface{}) (Point, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return Point{}, fmt.Errorf("not an object")
	}

	dateVal, ok := obj["date"].(float64)
	if !ok {
		return Point{}, fmt.Errorf("date is missing or not a number")
	}
	if dateVal != math.Trunc(dateVal) || dateVal < 0 {
		return Point{}, fmt.Errorf("date %v is not an epoch millisecond timestamp", dateVal)
	}

	priceVal, ok := obj["price"].(float64)
	if !ok {
		return Point{}, fmt.Errorf("price is missing or not a number")
	}
	if priceVal < 0 {
		return Point{}, fmt.Errorf("price %v is negative", priceVal)
	}

	return Point{
		DateMs: int64(dateVal),
		Price:  decimal.NewFromFloat(priceVal),
	}, nil
}
