package shipper

import (
	"context"

	"github.com/logferry/logferry-go/pkg/streamlog"
)

// ensureGroup checks for the destination group and creates it when absent.
// The listing is a prefix search, so pages are filtered for an exact name
// match. If this handler creates the group and RetainDays is set, the
// retention policy is applied; a pre-existing group is never updated.
func (h *Handler) ensureGroup(ctx context.Context) error {
	group := h.config.Group
	found, err := h.findGroup(ctx, group)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	status, err := h.client.CreateGroup(ctx, group)
	if err != nil {
		return err
	}
	if status >= 400 {
		return &streamlog.ProvisionError{Op: "create group", Name: group, Status: status}
	}

	if h.config.RetainDays > 0 {
		status, err = h.client.SetRetention(ctx, group, h.config.RetainDays)
		if err != nil {
			return err
		}
		if status >= 400 {
			return &streamlog.ProvisionError{Op: "set retention", Name: group, Status: status}
		}
	}
	return nil
}

// findGroup paginates the group listing until an exact match is found or
// the pages are exhausted.
func (h *Handler) findGroup(ctx context.Context, group string) (bool, error) {
	pageToken := ""
	for {
		page, err := h.client.ListGroups(ctx, group, pageToken)
		if err != nil {
			return false, err
		}
		if page == nil {
			return false, nil
		}
		for _, name := range page.Groups {
			if name == group {
				return true, nil
			}
		}
		if page.NextToken == "" {
			return false, nil
		}
		pageToken = page.NextToken
	}
}

// ensureStream checks for the destination stream and creates it when
// absent, returning the sequence token for the next append. An existing
// stream that has never been written to reports no token; "0" is used
// then, as for a freshly created stream. The token is resolved on every
// flush and never cached, because another writer may advance the stream in
// between.
func (h *Handler) ensureStream(ctx context.Context, stream string) (string, error) {
	group := h.config.Group
	pageToken := ""
	for {
		page, err := h.client.ListStreams(ctx, group, stream, pageToken)
		if err != nil {
			return "", err
		}
		if page == nil {
			break
		}
		for _, info := range page.Streams {
			if info.Name == stream {
				if info.SequenceToken == "" {
					return "0", nil
				}
				return info.SequenceToken, nil
			}
		}
		if page.NextToken == "" {
			break
		}
		pageToken = page.NextToken
	}

	status, err := h.client.CreateStream(ctx, group, stream)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", &streamlog.ProvisionError{Op: "create stream", Name: stream, Status: status}
	}
	return "0", nil
}
