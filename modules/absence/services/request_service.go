package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
)

type RequestService struct {
	repo absencerequest.Repository
}

func NewRequestService(repo absencerequest.Repository) *RequestService {
	return &RequestService{repo: repo}
}

func (s *RequestService) List(ctx context.Context) ([]absencerequest.Request, error) {
	return s.repo.List(ctx)
}

func (s *RequestService) Get(ctx context.Context, id int64) (absencerequest.Request, error) {
	return s.repo.Get(ctx, id)
}

// Detail is everything the detail view renders for one request.
type Detail struct {
	Request  absencerequest.Request
	Workflow absencerequest.Workflow
	History  []absencerequest.HistoryEntry
}

// Detail loads the request, its workflow and its history concurrently.
func (s *RequestService) Detail(ctx context.Context, id int64) (Detail, error) {
	var d Detail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.repo.Get(gctx, id)
		d.Request = r
		return err
	})
	g.Go(func() error {
		w, err := s.repo.Workflow(gctx, id)
		d.Workflow = w
		return err
	})
	g.Go(func() error {
		h, err := s.repo.History(gctx, id)
		d.History = h
		return err
	})
	if err := g.Wait(); err != nil {
		return Detail{}, err
	}
	return d, nil
}

// Stats counts requests per status. Unknown statuses are counted apart so
// the six known buckets sum to Total minus Unknown.
type Stats struct {
	Total    int
	ByStatus map[absencerequest.Status]int
	Unknown  int
}

func CountByStatus(requests []absencerequest.Request) Stats {
	st := Stats{
		Total:    len(requests),
		ByStatus: make(map[absencerequest.Status]int, len(absencerequest.Statuses)),
	}
	for _, s := range absencerequest.Statuses {
		st.ByStatus[s] = 0
	}
	for _, r := range requests {
		if !r.Status.Valid() {
			st.Unknown++
			continue
		}
		st.ByStatus[r.Status]++
	}
	return st
}

func (s *RequestService) Stats(ctx context.Context) (Stats, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return CountByStatus(requests), nil
}
