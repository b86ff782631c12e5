package logsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/logferry/logferry-go/pkg/streamlog"
)

// Client implements the streamlog.StreamClient interface over the
// aggregation service's HTTP/JSON API.
type Client struct {
	config     Config
	httpClient *http.Client
	baseURL    *url.URL
	tokens     *tokenSource
}

// NewClient creates a new aggregation service HTTP client
func NewClient(config Config) (*Client, error) {
	config.SetDefaults()

	if config.ServerURL == "" {
		return nil, fmt.Errorf("ServerURL is required")
	}

	baseURL, err := url.Parse(config.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ServerURL: %w", err)
	}

	client := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		baseURL: baseURL,
	}
	if config.SigningKey != "" {
		client.tokens = newTokenSource(config.ClientID, config.SigningKey)
	}
	return client, nil
}

// ListGroups returns one page of groups whose names start with prefix.
func (c *Client) ListGroups(ctx context.Context, prefix, pageToken string) (*streamlog.GroupPage, error) {
	req := describeGroupsRequest{
		GroupNamePrefix: prefix,
		NextToken:       pageToken,
	}

	var resp describeGroupsResponse
	if err := c.doQuery(ctx, "/api/v1/groups/describe", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to describe groups: %w", err)
	}

	page := &streamlog.GroupPage{
		Groups:    make([]string, 0, len(resp.Groups)),
		NextToken: resp.NextToken,
	}
	for _, g := range resp.Groups {
		page.Groups = append(page.Groups, g.GroupName)
	}
	return page, nil
}

// CreateGroup creates a group and returns the service's status code.
func (c *Client) CreateGroup(ctx context.Context, name string) (int, error) {
	req := createGroupRequest{GroupName: name}
	return c.doCreate(ctx, "/api/v1/groups", req)
}

// SetRetention sets a group's retention policy in days and returns the
// service's status code.
func (c *Client) SetRetention(ctx context.Context, name string, days int) (int, error) {
	req := putRetentionRequest{RetentionInDays: days}
	path := fmt.Sprintf("/api/v1/groups/%s/retention", url.PathEscape(name))
	return c.doCreate(ctx, path, req)
}

// ListStreams returns one page of streams in group whose names start with
// prefix.
func (c *Client) ListStreams(ctx context.Context, group, prefix, pageToken string) (*streamlog.StreamPage, error) {
	req := describeStreamsRequest{
		StreamNamePrefix: prefix,
		NextToken:        pageToken,
	}

	var resp describeStreamsResponse
	path := fmt.Sprintf("/api/v1/groups/%s/streams/describe", url.PathEscape(group))
	if err := c.doQuery(ctx, path, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to describe streams: %w", err)
	}

	page := &streamlog.StreamPage{
		Streams:   make([]streamlog.StreamInfo, 0, len(resp.Streams)),
		NextToken: resp.NextToken,
	}
	for _, s := range resp.Streams {
		page.Streams = append(page.Streams, streamlog.StreamInfo{
			Name:          s.StreamName,
			SequenceToken: s.UploadSequenceToken,
		})
	}
	return page, nil
}

// CreateStream creates a stream in group and returns the service's status
// code.
func (c *Client) CreateStream(ctx context.Context, group, name string) (int, error) {
	req := createStreamRequest{StreamName: name}
	path := fmt.Sprintf("/api/v1/groups/%s/streams", url.PathEscape(group))
	return c.doCreate(ctx, path, req)
}

// PutEvents appends a batch of events to a stream. A nil result with a nil
// error means the service answered with an empty response; the caller owns
// the policy for that.
func (c *Client) PutEvents(ctx context.Context, group, stream string, events []streamlog.Event, token string) (*streamlog.PutResult, error) {
	req := putEventsRequest{
		Events:        events,
		SequenceToken: token,
	}

	var resp putEventsResponse
	path := fmt.Sprintf("/api/v1/groups/%s/streams/%s/events",
		url.PathEscape(group), url.PathEscape(stream))
	if err := c.doQuery(ctx, path, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to put events: %w", err)
	}

	if resp.NextSequenceToken == "" && resp.RejectedEventsInfo == nil {
		return nil, nil
	}
	result := &streamlog.PutResult{
		NextSequenceToken: resp.NextSequenceToken,
	}
	if resp.RejectedEventsInfo != nil {
		result.Rejected = resp.RejectedEventsInfo.toRejected()
	}
	return result, nil
}

// doQuery performs a request whose error statuses are failures for the
// caller: any 4xx/5xx becomes an error.
func (c *Client) doQuery(ctx context.Context, path string, reqBody, respBody interface{}) error {
	_, err := c.doRequest(ctx, path, reqBody, respBody)
	return err
}

// doCreate performs a provisioning request and reports the service's status
// code instead of turning client errors into Go errors; the provisioning
// protocol owns the failure policy. Transport errors still pass through.
func (c *Client) doCreate(ctx context.Context, path string, reqBody interface{}) (int, error) {
	status, err := c.doRequest(ctx, path, reqBody, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, nil
	}
	if err != nil {
		return 0, err
	}
	return status, nil
}

// doRequest performs an HTTP POST with JSON bodies and bearer
// authentication. It returns the response status code; a 4xx/5xx status
// with a decodable error body is returned as an *APIError.
func (c *Client) doRequest(ctx context.Context, path string, reqBody, respBody interface{}) (int, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	fullURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL.String(), bodyReader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		token, err := c.tokens.bearer()
		if err != nil {
			return 0, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp errorResponse
		if json.Unmarshal(bodyBytes, &errResp) == nil {
			apiErr.Message = errResp.Error
			if apiErr.Message == "" {
				apiErr.Message = errResp.Message
			}
		}
		return resp.StatusCode, apiErr
	}

	if respBody != nil && len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, respBody); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// APIError is a non-2xx answer from the aggregation service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API error (%d)", e.Status)
}

// Verify that Client implements the StreamClient interface at compile time
var _ streamlog.StreamClient = (*Client)(nil)
