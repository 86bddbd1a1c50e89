package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/domain/notification"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

const (
	listPath        = "/notifications/api/"
	unreadCountPath = "/notifications/api/unread-count/"
	readPath        = "/notifications/api/%d/read/"
	readAllPath     = "/notifications/api/read-all/"
	itemPath        = "/notifications/api/%d/"
)

type NotificationRepository struct {
	transport portal.JSONDoer
}

func NewNotificationRepository(t portal.JSONDoer) *NotificationRepository {
	return &NotificationRepository{transport: t}
}

var _ notification.Repository = (*NotificationRepository)(nil)

// List accepts the paginated {results, count} shape, the
// {success, notifications} shape and a bare array.
func (r *NotificationRepository) List(ctx context.Context, page, pageSize int) ([]notification.Notification, int, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var raw json.RawMessage
	if err := r.transport.DoJSON(ctx, http.MethodGet, listPath, q, nil, &raw); err != nil {
		return nil, 0, errors.Wrap(err, "list notifications")
	}
	items, total, err := httpapi.DecodeList[notification.Notification](raw, "notifications")
	if err != nil {
		return nil, 0, serrors.Transport("decode notifications", err)
	}
	return items, total, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count       *int `json:"count"`
		UnreadCount *int `json:"unread_count"`
	}
	if err := r.transport.DoJSON(ctx, http.MethodGet, unreadCountPath, nil, nil, &resp); err != nil {
		return 0, errors.Wrap(err, "unread count")
	}
	switch {
	case resp.UnreadCount != nil:
		return *resp.UnreadCount, nil
	case resp.Count != nil:
		return *resp.Count, nil
	}
	return 0, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	if err := r.transport.DoJSON(ctx, http.MethodPost, fmt.Sprintf(readPath, id), nil, struct{}{}, nil); err != nil {
		return errors.Wrapf(err, "mark notification %d read", id)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	if err := r.transport.DoJSON(ctx, http.MethodPost, readAllPath, nil, struct{}{}, nil); err != nil {
		return errors.Wrap(err, "mark all notifications read")
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	if err := r.transport.DoJSON(ctx, http.MethodDelete, fmt.Sprintf(itemPath, id), nil, nil, nil); err != nil {
		return errors.Wrapf(err, "delete notification %d", id)
	}
	return nil
}
