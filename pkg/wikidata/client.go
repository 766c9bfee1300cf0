package wikidata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"countryname/pkg/logging"
	"countryname/pkg/request"
)

const (
	sparqlEndpoint = "https://query.wikidata.org/sparql"
)

// Client handles SPARQL queries.
type Client struct {
	request        *request.Client
	SPARQLEndpoint string
	Language       string
	Logger         *slog.Logger
}

// NewClient creates a new Wikidata client. An empty endpoint selects the
// public query service.
func NewClient(r *request.Client, endpoint string, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = sparqlEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		request:        r,
		SPARQLEndpoint: endpoint,
		Language:       "en",
		Logger:         logger,
	}
}

// QuerySPARQL executes a SPARQL query and returns the result bindings in
// endpoint order.
func (c *Client) QuerySPARQL(ctx context.Context, query string) ([]Binding, error) {
	u, err := url.Parse(c.SPARQLEndpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: bad endpoint: %v", ErrNetwork, err)
	}

	q := u.Query()
	q.Add("query", query)
	q.Add("format", "json")
	u.RawQuery = q.Encode()

	headers := map[string]string{
		"Accept": "application/sparql-results+json",
	}

	logging.Trace(c.Logger, "SPARQL query", "query", query)

	body, err := c.request.GetWithHeaders(ctx, u.String(), headers)
	if err != nil {
		var se *request.StatusError
		if errors.As(err, &se) && se.Code == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var result sparqlResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode json: %v", ErrParse, err)
	}
	if result.Results == nil {
		return nil, fmt.Errorf("%w: response has no results object", ErrParse)
	}

	return result.Results.Bindings, nil
}
