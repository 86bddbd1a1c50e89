package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/checkin"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

const (
	SubmitPath   = "/checkin/api/submit/"
	CheckinsPath = "/checkin/api/checkins/"
	HistoryPath  = "/checkin/api/history/"

	PhotoField    = "photo"
	PhotoFilename = "checkin.jpg"
)

type transport interface {
	portal.JSONDoer
	portal.MultipartDoer
}

type CheckinRepository struct {
	transport transport
}

func NewCheckinRepository(t transport) *CheckinRepository {
	return &CheckinRepository{transport: t}
}

var _ checkin.Repository = (*CheckinRepository)(nil)

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (r *CheckinRepository) Submit(ctx context.Context, s checkin.Submission) (checkin.Result, error) {
	form := portal.NewForm().
		Field("latitude", formatCoord(s.Latitude)).
		Field("longitude", formatCoord(s.Longitude)).
		Field("note", s.Note).
		Field("checkin_type", string(s.Type))
	if s.AreaID != nil {
		form.Field("area_id", strconv.FormatInt(*s.AreaID, 10))
	}
	form.File(PhotoField, PhotoFilename, "image/jpeg", s.Photo)

	var resp struct {
		httpapi.Envelope
		Checkin json.RawMessage `json:"checkin"`
	}
	if err := r.transport.DoMultipart(ctx, SubmitPath, form, &resp); err != nil {
		return checkin.Result{}, errors.Wrap(err, "submit checkin")
	}
	res := checkin.Result{Message: resp.Envelope.Message}
	if len(resp.Checkin) > 0 && resp.Checkin[0] == '{' {
		if err := json.Unmarshal(resp.Checkin, &res.Checkin); err != nil {
			return res, serrors.Transport("decode checkin", err)
		}
	}
	return res, nil
}

func (r *CheckinRepository) List(ctx context.Context, p checkin.ListParams) ([]checkin.Checkin, int, error) {
	return r.list(ctx, CheckinsPath, p)
}

func (r *CheckinRepository) History(ctx context.Context, p checkin.ListParams) ([]checkin.Checkin, int, error) {
	return r.list(ctx, HistoryPath, p)
}

func (r *CheckinRepository) list(ctx context.Context, path string, p checkin.ListParams) ([]checkin.Checkin, int, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	var raw json.RawMessage
	if err := r.transport.DoJSON(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, 0, errors.Wrapf(err, "list %s", path)
	}
	items, total, err := httpapi.DecodeList[checkin.Checkin](raw, "checkins", "history")
	if err != nil {
		return nil, 0, serrors.Transport("decode checkins", err)
	}
	return items, total, nil
}
