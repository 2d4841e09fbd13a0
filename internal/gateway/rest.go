package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dikra-store/internal/logger"
	"dikra-store/internal/order"

	"go.uber.org/zap"
)

const restPath = "/rest/v1/"

var (
	ErrMissingURL = errors.New("gateway: rest driver needs a base url")
	ErrMissingKey = errors.New("gateway: rest driver needs an api key")
)

// APIError is a non-2xx answer from the REST endpoint.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("rest %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("rest %d: %s", e.Status, msg)
}

type restGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

// NewREST talks to a PostgREST endpoint such as a Supabase project.
func NewREST(baseURL, apiKey string) (order.Gateway, error) {
	if baseURL == "" {
		return nil, ErrMissingURL
	}
	if apiKey == "" {
		return nil, ErrMissingKey
	}
	return newRESTWithClient(baseURL, apiKey, &http.Client{Timeout: 15 * time.Second}), nil
}

func newRESTWithClient(baseURL, apiKey string, client *http.Client) *restGateway {
	return &restGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
	}
}

// ----------------- Insert -----------------

func (g *restGateway) Insert(ctx context.Context, table string, r order.Record) ([]order.Record, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("table", table),
		zap.String("order_number", r.OrderNumber),
	)

	if err := validateTable(table); err != nil {
		return nil, err
	}

	body, err := json.Marshal([]order.Record{r})
	if err != nil {
		log.Error("failed to marshal order", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+restPath+table, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	log.Info("sending order to rest gateway")

	return g.do(req, log)
}

// ----------------- Select -----------------

func (g *restGateway) Select(ctx context.Context, table string, q order.Query) ([]order.Record, error) {
	log := logger.FromCtx(ctx).With(zap.String("table", table))

	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("select", "*")
	if q.Column != "" {
		params.Set(q.Column, "eq."+q.Value)
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+restPath+table+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return g.do(req, log)
}

func (g *restGateway) do(req *http.Request, log *zap.Logger) ([]order.Record, error) {
	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("rest gateway request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rest response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(bodyBytes, apiErr); jsonErr != nil {
			apiErr.Message = strings.TrimSpace(string(bodyBytes))
		}
		log.Error("rest gateway returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, apiErr
	}

	records := []order.Record{}
	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(bodyBytes, &records); err != nil {
		log.Error("failed to decode rest response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode rest response: %w", err)
	}

	return records, nil
}
