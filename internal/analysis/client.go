// Package analysis ships a relevé grid to the remote analysis service and
// validates what comes back.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/KaramelBytes/releve-cli/internal/logging"
)

const maxResponseBytes = 32 << 20

// Client posts relevé grids to the analysis endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient returns a client for endpoint. A zero httpTimeout leaves the
// timeout to the network stack.
func NewClient(endpoint string, httpTimeout time.Duration) *Client {
	if httpTimeout < 0 {
		httpTimeout = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: httpTimeout},
		endpoint:   endpoint,
	}
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Submit serializes src and the selected column indices, posts them and
// validates the reply. It never mutates src.
func (c *Client) Submit(ctx context.Context, src Source, indices []int) (*Response, error) {
	req, err := buildRequest(src, indices)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log := logging.Logger()
	log.Debug("analysis request", "endpoint", c.endpoint, "rows", len(req.RelevesData), "selected", req.SelectedIndices)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("http request: %w", err)}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	rid := extractRequestID(resp)
	log.Debug("analysis response", "status", resp.StatusCode, "content_type", resp.Header.Get("Content-Type"), "bytes", len(body), "request_id", rid)
	return decodeResponse(resp.StatusCode, resp.Header.Get("Content-Type"), body, rid)
}

func buildRequest(src Source, indices []int) (Request, error) {
	if len(indices) == 0 {
		return Request{}, &NoSelectionError{}
	}
	return Request{
		RelevesData:     src.ReadAll(),
		SelectedIndices: append([]int(nil), indices...),
	}, nil
}

// decodeResponse applies the reply contract: 2xx and a JSON content type,
// a decodable object, and at least one species record.
func decodeResponse(status int, contentType string, body []byte, requestID string) (*Response, error) {
	body = sanitizeNonFinite(body)
	if status < 200 || status >= 300 || !isJSON(contentType) {
		return nil, &TransportError{
			StatusCode:  status,
			ContentType: contentType,
			Message:     bestEffortMessage(body),
			RequestID:   requestID,
		}
	}
	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &TransportError{StatusCode: status, ContentType: contentType, RequestID: requestID, Err: fmt.Errorf("decode response: %w", err)}
	}
	out.RequestID = requestID
	if msg := errorText(out.Error); msg != "" {
		return nil, &EmptyResultError{Message: msg}
	}
	if out.Message != "" {
		return nil, &EmptyResultError{Message: out.Message}
	}
	if len(out.Species) == 0 {
		return nil, &EmptyResultError{}
	}
	return &out, nil
}

// bestEffortMessage pulls an `error` field out of a failed reply body when it
// parses as JSON; otherwise the caller falls back to the status code.
func bestEffortMessage(body []byte) string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	return errorText(raw["error"])
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// extractRequestID pulls a best-effort request ID from common headers.
func extractRequestID(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	for _, k := range []string{"X-Request-Id", "X-Nf-Request-Id", "X-Amzn-Requestid"} {
		if v := resp.Header.Get(k); v != "" {
			return v
		}
	}
	return ""
}
