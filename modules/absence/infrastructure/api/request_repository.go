package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/httpapi"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

const (
	requestsPath = "/absence/api/requests/"
	requestPath  = "/absence/api/requests/%d/"
	approvePath  = "/absence/api/approve/%d/"
	workflowPath = "/absence/api/workflow/%d/"
	historyPath  = "/absence/api/history/%d/"
)

type RequestRepository struct {
	transport portal.JSONDoer
}

func NewRequestRepository(t portal.JSONDoer) *RequestRepository {
	return &RequestRepository{transport: t}
}

var _ absencerequest.Repository = (*RequestRepository)(nil)

func (r *RequestRepository) List(ctx context.Context) ([]absencerequest.Request, error) {
	var raw json.RawMessage
	if err := r.transport.DoJSON(ctx, http.MethodGet, requestsPath, nil, nil, &raw); err != nil {
		return nil, errors.Wrap(err, "list absence requests")
	}
	items, _, err := httpapi.DecodeList[absencerequest.Request](raw, "requests")
	if err != nil {
		return nil, serrors.Transport("decode absence requests", err)
	}
	return items, nil
}

func (r *RequestRepository) Get(ctx context.Context, id int64) (absencerequest.Request, error) {
	var resp struct {
		Request absencerequest.Request `json:"request"`
	}
	if err := r.transport.DoJSON(ctx, http.MethodGet, fmt.Sprintf(requestPath, id), nil, nil, &resp); err != nil {
		return absencerequest.Request{}, errors.Wrapf(err, "get absence request %d", id)
	}
	return resp.Request, nil
}

func (r *RequestRepository) Act(ctx context.Context, id int64, cmd absencerequest.Command) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := r.transport.DoJSON(ctx, http.MethodPost, fmt.Sprintf(approvePath, id), nil, cmd, &resp); err != nil {
		return "", errors.Wrapf(err, "%s absence request %d", cmd.Action, id)
	}
	return resp.Message, nil
}

func (r *RequestRepository) Workflow(ctx context.Context, id int64) (absencerequest.Workflow, error) {
	var resp struct {
		Workflow absencerequest.Workflow `json:"workflow"`
	}
	if err := r.transport.DoJSON(ctx, http.MethodGet, fmt.Sprintf(workflowPath, id), nil, nil, &resp); err != nil {
		return absencerequest.Workflow{}, errors.Wrapf(err, "get workflow for request %d", id)
	}
	return resp.Workflow, nil
}

func (r *RequestRepository) History(ctx context.Context, id int64) ([]absencerequest.HistoryEntry, error) {
	var resp struct {
		History []absencerequest.HistoryEntry `json:"history"`
	}
	if err := r.transport.DoJSON(ctx, http.MethodGet, fmt.Sprintf(historyPath, id), nil, nil, &resp); err != nil {
		return nil, errors.Wrapf(err, "get history for request %d", id)
	}
	return resp.History, nil
}
