package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/paging"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

const (
	AreasPath     = "/area/api/areas/"
	LocationsPath = "/location/api/locations/"
	UsersPath     = "/users/api/users/"
)

// Resource is one CRUD collection under path. Collection and item keys name
// the envelope fields the portal wraps payloads in.
type Resource[T any] struct {
	transport     portal.JSONDoer
	path          string
	collectionKey string
	itemKey       string
}

func NewResource[T any](t portal.JSONDoer, path, collectionKey, itemKey string) *Resource[T] {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return &Resource[T]{transport: t, path: path, collectionKey: collectionKey, itemKey: itemKey}
}

func listQuery(p paging.Params) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		q.Set("search", s)
	}
	return q
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + strconv.FormatInt(id, 10) + "/"
}

func (r *Resource[T]) List(ctx context.Context, p paging.Params) ([]T, int, error) {
	var raw json.RawMessage
	if err := r.transport.DoJSON(ctx, http.MethodGet, r.path, listQuery(p), nil, &raw); err != nil {
		return nil, 0, errors.Wrapf(err, "list %s", r.collectionKey)
	}
	items, total, err := httpapi.DecodeList[T](raw, r.collectionKey)
	if err != nil {
		return nil, 0, serrors.Transport("decode "+r.collectionKey, err)
	}
	return items, total, nil
}

// All follows pages of pageSize until the server count is reached or a page
// comes back empty. Unpaginated endpoints return everything on the first call.
func (r *Resource[T]) All(ctx context.Context, pageSize int) ([]T, error) {
	var out []T
	for page := 1; ; page++ {
		items, total, err := r.List(ctx, paging.Params{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) == 0 || len(out) >= total || page >= listing.PageCount(total, pageSize) {
			break
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	var raw json.RawMessage
	if err := r.transport.DoJSON(ctx, http.MethodGet, r.itemPath(id), nil, nil, &raw); err != nil {
		return zero, errors.Wrapf(err, "get %s %d", r.itemKey, id)
	}
	return r.decodeItem(raw)
}

func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var zero T
	var raw json.RawMessage
	if err := r.transport.DoJSON(ctx, http.MethodPost, r.path, nil, body, &raw); err != nil {
		return zero, errors.Wrapf(err, "create %s", r.itemKey)
	}
	return r.decodeItem(raw)
}

func (r *Resource[T]) Update(ctx context.Context, id int64, body any) (T, error) {
	var zero T
	var raw json.RawMessage
	if err := r.transport.DoJSON(ctx, http.MethodPut, r.itemPath(id), nil, body, &raw); err != nil {
		return zero, errors.Wrapf(err, "update %s %d", r.itemKey, id)
	}
	return r.decodeItem(raw)
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	if err := r.transport.DoJSON(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil); err != nil {
		return errors.Wrapf(err, "delete %s %d", r.itemKey, id)
	}
	return nil
}

func (r *Resource[T]) decodeItem(raw json.RawMessage) (T, error) {
	var zero T
	if len(raw) == 0 {
		return zero, nil
	}
	item, err := httpapi.DecodeItem[T](raw, r.itemKey, "data")
	if err != nil {
		return zero, serrors.Transport(fmt.Sprintf("decode %s", r.itemKey), err)
	}
	return item, nil
}
