package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/ephemeris"
	"github.com/oshokin/almanac/internal/logger"
)

const (
	// askGeoDefaultURL is the public AskGeo web API root.
	askGeoDefaultURL = "http://api.askgeo.com/v1"
	// askGeoDefaultTimeout is used when no timeout is configured.
	askGeoDefaultTimeout = 30 * time.Second
	// askGeoStatusOK is the message AskGeo sends with successful responses.
	askGeoStatusOK = "ok"
	// askGeoMaxBody caps the response size read into memory.
	askGeoMaxBody = 1 << 20
)

// askGeoResponse is the envelope of an AskGeo query.
type askGeoResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    []askGeoResult `json:"data"`
}

// askGeoResult holds the databases requested for one point.
type askGeoResult struct {
	Astronomy *askGeoAstronomy `json:"Astronomy"`
}

// askGeoAstronomy is the part of the Astronomy database this provider reads.
type askGeoAstronomy struct {
	TodaySunriseIso8601   string `json:"TodaySunriseIso8601"`
	TodaySolarNoonIso8601 string `json:"TodaySolarNoonIso8601"`
	TodaySunsetIso8601    string `json:"TodaySunsetIso8601"`
}

// AskGeo looks up today's sunrise and sunset from the AskGeo astronomy
// database. It only knows the official zenith and the current date at the
// queried location.
type AskGeo struct {
	httpClient *http.Client
	baseURL    string
	accountID  string
	apiKey     string
}

// NewAskGeo creates the AskGeo provider.
func NewAskGeo(opts Options) (*AskGeo, error) {
	if opts.AskGeoAccountID == "" || opts.AskGeoAPIKey == "" {
		return nil, ErrMissingCredentials
	}

	baseURL := opts.AskGeoBaseURL
	if baseURL == "" {
		baseURL = askGeoDefaultURL
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid askgeo base URL: %w", err)
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = askGeoDefaultTimeout
		}

		client = &http.Client{Timeout: timeout}
	}

	return &AskGeo{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountID:  opts.AskGeoAccountID,
		apiKey:     opts.AskGeoAPIKey,
	}, nil
}

// Name implements Provider.
func (*AskGeo) Name() string {
	return string(KindAskGeo)
}

// Event implements Provider.
func (a *AskGeo) Event(ctx context.Context, q solar.Query) (solar.Result, error) {
	if err := q.Validate(); err != nil {
		return solar.Result{}, err
	}

	if q.Zenith != solar.ZenithOfficial {
		return solar.Result{}, fmt.Errorf("%w: askgeo only reports %s", ErrUnsupportedZenith, solar.ZenithOfficial)
	}

	astronomy, err := a.query(ctx, q.Coordinate)
	if err != nil {
		return solar.Result{}, err
	}

	noon, err := parseAskGeoTime("TodaySolarNoonIso8601", astronomy.TodaySolarNoonIso8601)
	if err != nil {
		return solar.Result{}, err
	}

	// AskGeo answers for the current day in the location's own time zone.
	if today := solar.DateOf(noon); today != q.Date {
		return solar.Result{}, fmt.Errorf("%w: askgeo reports %s, asked for %s", ErrUnsupportedDate, today, q.Date)
	}

	field, raw := "TodaySunsetIso8601", astronomy.TodaySunsetIso8601
	if q.Event == solar.EventRise {
		field, raw = "TodaySunriseIso8601", astronomy.TodaySunriseIso8601
	}

	if raw == "" {
		return a.degenerate(ctx, q, field)
	}

	value, err := parseAskGeoTime(field, raw)
	if err != nil {
		return solar.Result{}, err
	}

	local := fractionalHours(value.In(offsetZone(q.UTCOffset)))

	return solar.Result{
		Event:      q.Event,
		Zenith:     q.Zenith,
		Clock:      ephemeris.SplitHours(local),
		Degenerate: solar.DegenerateNone,
		LocalHours: local,
		UTCHours:   fractionalHours(value.UTC()),
	}, nil
}

// degenerate handles a response without the requested event. AskGeo does not
// say which way the sun stays, so the almanac algorithm decides.
func (a *AskGeo) degenerate(ctx context.Context, q solar.Query, field string) (solar.Result, error) {
	local, err := ephemeris.Solve(q)
	if err != nil {
		return solar.Result{}, err
	}

	if local.Occurs() {
		return solar.Result{}, &PayloadError{Reason: field + " is empty"}
	}

	logger.DebugKV(ctx, "AskGeo reports no event", "field", field, "degenerate", local.Degenerate.String())

	return local, nil
}

// query fetches the Astronomy database for one point.
func (a *AskGeo) query(ctx context.Context, coord solar.GeoCoordinate) (*askGeoAstronomy, error) {
	reqURL, err := a.buildURL(coord)
	if err != nil {
		return nil, fmt.Errorf("build askgeo URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create askgeo request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Operation: "askgeo query", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, askGeoMaxBody))
	if err != nil {
		return nil, &NetworkError{Operation: "read askgeo response", Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var envelope askGeoResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &PayloadError{Reason: "decode askgeo response", Err: err}
	}

	if envelope.Message != askGeoStatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("askgeo code %d: %s", envelope.Code, envelope.Message),
		}
	}

	if len(envelope.Data) == 0 || envelope.Data[0].Astronomy == nil {
		return nil, &PayloadError{Reason: "response has no Astronomy data"}
	}

	return envelope.Data[0].Astronomy, nil
}

// buildURL constructs the query URL: {base}/{account}/{key}/query.json.
func (a *AskGeo) buildURL(coord solar.GeoCoordinate) (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", err
	}

	u = u.JoinPath(a.accountID, a.apiKey, "query.json")

	query := u.Query()
	query.Set("databases", "Astronomy")
	query.Set("points", formatFloat(coord.Latitude)+","+formatFloat(coord.Longitude))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// parseAskGeoTime parses one of the ISO 8601 timestamps of the Astronomy database.
func parseAskGeoTime(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &PayloadError{Reason: field + " is empty"}
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000-0700", "2006-01-02T15:04:05-0700"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &PayloadError{Reason: fmt.Sprintf("%s has unexpected format %q", field, value)}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
