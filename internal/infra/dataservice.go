package infra

// dataservice.go — base HTTP client for the remote data service that owns
// every domain entity. Resource gateways build on the verbs here; this file
// owns auth, status→error mapping, the single-retry policy for idempotent
// reads, and the circuit breaker hookup.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
)

// DataServiceClient talks to the upstream resource-oriented data service.
// All calls carry the service bearer token and flow through the circuit
// breaker so a downed upstream fast-fails instead of piling up timeouts.
type DataServiceClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewDataServiceClient(baseURL, token string, cb *CircuitBreaker) *DataServiceClient {
	return &DataServiceClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cb:         cb,
	}
}

// Breaker exposes the circuit breaker for the health endpoint.
func (c *DataServiceClient) Breaker() *CircuitBreaker { return c.cb }

// Get performs a GET and decodes the response into out. Reads are idempotent,
// so a transport-level failure is retried once before surfacing.
func (c *DataServiceClient) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	err := c.do(ctx, http.MethodGet, path, query, nil, out)
	if err != nil && apperr.KindOf(err) == apperr.KindTransport && !errors.Is(err, context.Canceled) {
		err = c.do(ctx, http.MethodGet, path, query, nil, out)
	}
	return err
}

// Filter performs a filtered-list read. The data service models these as
// POSTs with a JSON filter body, but they are reads: like Get, a transport
// failure is retried once.
func (c *DataServiceClient) Filter(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	err := c.do(ctx, http.MethodPost, path, query, body, out)
	if err != nil && apperr.KindOf(err) == apperr.KindTransport && !errors.Is(err, context.Canceled) {
		err = c.do(ctx, http.MethodPost, path, query, body, out)
	}
	return err
}

// Post performs a POST with a JSON body. Single attempt — writes are not
// assumed idempotent upstream.
func (c *DataServiceClient) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT with a JSON body.
func (c *DataServiceClient) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE. An optional JSON body is supported — the relation
// resource deletes by (customerId, managerId) pair in the body.
func (c *DataServiceClient) Delete(ctx context.Context, path string, body interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, nil)
}

func (c *DataServiceClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	// Only transport failures trip the breaker; a 404 or 409 means the
	// upstream is alive and answering.
	var domainErr error
	err := c.cb.Execute(func() error {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return apperr.Wrap(apperr.KindTransport, "dataservice: marshal body", err)
			}
			reader = bytes.NewReader(data)
		}

		u := c.baseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return apperr.Wrap(apperr.KindTransport, "dataservice: build request", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return apperr.Wrap(apperr.KindTransport, "dataservice: request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			statusErr := statusError(method, path, resp)
			if apperr.KindOf(statusErr) == apperr.KindTransport {
				return statusErr
			}
			domainErr = statusErr
			return nil
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return apperr.Wrap(apperr.KindTransport, "dataservice: decode response", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCircuitOpen) {
			return apperr.Wrap(apperr.KindTransport, "dataservice: upstream unavailable", err)
		}
		return err
	}
	return domainErr
}

// statusError maps upstream HTTP failures onto the error taxonomy. The body
// is read for the upstream message but never surfaced verbatim to clients.
func statusError(method, path string, resp *http.Response) error {
	var upstream struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&upstream)

	msg := fmt.Sprintf("%s %s: upstream %d", method, path, resp.StatusCode)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperr.New(apperr.KindNotFound, msg)
	case http.StatusConflict:
		return apperr.New(apperr.KindConflict, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.Newf(apperr.KindValidation, "%s: %s", msg, upstream.Message)
	default:
		return apperr.New(apperr.KindTransport, msg)
	}
}
