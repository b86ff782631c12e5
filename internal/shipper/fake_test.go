package shipper

import (
	"context"
	"strconv"
	"strings"

	"github.com/logferry/logferry-go/pkg/streamlog"
)

// putOutcome is one scripted answer for a PutEvents call.
type putOutcome struct {
	result *streamlog.PutResult
	err    error
}

// putCall records one PutEvents invocation.
type putCall struct {
	group  string
	stream string
	token  string
	events []streamlog.Event
}

// fakeClient is an in-memory StreamClient for handler tests. Listings can
// be paginated via pageSize, and PutEvents answers can be scripted via
// putQueue (defaulting to success).
type fakeClient struct {
	groups  []string
	streams []streamlog.StreamInfo

	pageSize int

	createGroupStatus  int
	retentionStatus    int
	createStreamStatus int

	listGroupsErr  error
	listStreamsErr error

	putQueue []putOutcome

	listGroupCalls    int
	createGroupCalls  int
	retentionCalls    []int
	listStreamCalls   int
	createStreamCalls int
	putCalls          []putCall
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		createGroupStatus:  200,
		retentionStatus:    200,
		createStreamStatus: 200,
	}
}

func (f *fakeClient) ListGroups(_ context.Context, prefix, pageToken string) (*streamlog.GroupPage, error) {
	f.listGroupCalls++
	if f.listGroupsErr != nil {
		return nil, f.listGroupsErr
	}
	var matches []string
	for _, name := range f.groups {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	items, next := pageSlice(matches, pageToken, f.pageSize)
	return &streamlog.GroupPage{Groups: items, NextToken: next}, nil
}

func (f *fakeClient) CreateGroup(_ context.Context, name string) (int, error) {
	f.createGroupCalls++
	if f.createGroupStatus < 400 {
		f.groups = append(f.groups, name)
	}
	return f.createGroupStatus, nil
}

func (f *fakeClient) SetRetention(_ context.Context, _ string, days int) (int, error) {
	f.retentionCalls = append(f.retentionCalls, days)
	return f.retentionStatus, nil
}

func (f *fakeClient) ListStreams(_ context.Context, _, prefix, pageToken string) (*streamlog.StreamPage, error) {
	f.listStreamCalls++
	if f.listStreamsErr != nil {
		return nil, f.listStreamsErr
	}
	var matches []streamlog.StreamInfo
	var names []string
	byName := make(map[string]streamlog.StreamInfo)
	for _, info := range f.streams {
		if strings.HasPrefix(info.Name, prefix) {
			names = append(names, info.Name)
			byName[info.Name] = info
		}
	}
	items, next := pageSlice(names, pageToken, f.pageSize)
	for _, name := range items {
		matches = append(matches, byName[name])
	}
	return &streamlog.StreamPage{Streams: matches, NextToken: next}, nil
}

func (f *fakeClient) CreateStream(_ context.Context, _, name string) (int, error) {
	f.createStreamCalls++
	if f.createStreamStatus < 400 {
		f.streams = append(f.streams, streamlog.StreamInfo{Name: name})
	}
	return f.createStreamStatus, nil
}

func (f *fakeClient) PutEvents(_ context.Context, group, stream string, events []streamlog.Event, token string) (*streamlog.PutResult, error) {
	f.putCalls = append(f.putCalls, putCall{
		group:  group,
		stream: stream,
		token:  token,
		events: append([]streamlog.Event(nil), events...),
	})
	if len(f.putQueue) > 0 {
		outcome := f.putQueue[0]
		f.putQueue = f.putQueue[1:]
		return outcome.result, outcome.err
	}
	return &streamlog.PutResult{NextSequenceToken: strconv.Itoa(len(f.putCalls))}, nil
}

// setToken updates the sequence token reported for an existing stream.
func (f *fakeClient) setToken(stream, token string) {
	for i, info := range f.streams {
		if info.Name == stream {
			f.streams[i].SequenceToken = token
			return
		}
	}
	f.streams = append(f.streams, streamlog.StreamInfo{Name: stream, SequenceToken: token})
}

// pageSlice cuts items into pages of size, using the item index as the
// opaque page token. size <= 0 means everything on one page.
func pageSlice(items []string, pageToken string, size int) ([]string, string) {
	start := 0
	if pageToken != "" {
		start, _ = strconv.Atoi(pageToken)
	}
	if start >= len(items) {
		return nil, ""
	}
	if size <= 0 || start+size >= len(items) {
		return items[start:], ""
	}
	return items[start : start+size], strconv.Itoa(start + size)
}

// Verify that fakeClient implements the StreamClient interface at compile time
var _ streamlog.StreamClient = (*fakeClient)(nil)
