package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/area"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/location"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/paging"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/user"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/presentation/dtos"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

// Validatable is a create/update body that can reject itself before any
// request is made.
type Validatable interface {
	Validate() error
}

// Repository is the CRUD surface of one portal collection.
type Repository[T any] interface {
	List(ctx context.Context, p paging.Params) ([]T, int, error)
	All(ctx context.Context, pageSize int) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, body any) (T, error)
	Update(ctx context.Context, id int64, body any) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Service manages one directory collection. Mutations validate the body
// first, toast the outcome and never retry.
type Service[T any, D Validatable] struct {
	entity     string
	repo       Repository[T]
	bus        eventbus.EventBus
	translator *intl.Translator
	log        *logrus.Logger
	pageSize   int
}

type Options struct {
	EventBus   eventbus.EventBus
	Translator *intl.Translator
	Logger     *logrus.Logger
	PageSize   int
}

func NewService[T any, D Validatable](entity string, repo Repository[T], opts Options) *Service[T, D] {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	size := opts.PageSize
	if size <= 0 {
		size = 100
	}
	return &Service[T, D]{
		entity:     entity,
		repo:       repo,
		bus:        opts.EventBus,
		translator: opts.Translator,
		log:        log,
		pageSize:   size,
	}
}

type (
	AreaService     = Service[area.Area, *dtos.AreaDTO]
	LocationService = Service[location.Location, *dtos.AreaDTO]
	UserService     = Service[user.User, *dtos.UserDTO]
)

func (s *Service[T, D]) Entity() string { return s.entity }

// All fetches the whole collection, following server pages.
func (s *Service[T, D]) All(ctx context.Context) ([]T, error) {
	return s.repo.All(ctx, s.pageSize)
}

func (s *Service[T, D]) Search(ctx context.Context, query string) ([]T, error) {
	items, _, err := s.repo.List(ctx, paging.Params{PageSize: s.pageSize, Search: query})
	return items, err
}

func (s *Service[T, D]) Get(ctx context.Context, id int64) (T, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service[T, D]) Create(ctx context.Context, dto D) (T, error) {
	var zero T
	if err := dto.Validate(); err != nil {
		return zero, s.fail(err)
	}
	out, err := s.repo.Create(ctx, dto)
	if err != nil {
		return zero, s.fail(err)
	}
	s.succeed("Directory.Created", logrus.Fields{})
	return out, nil
}

func (s *Service[T, D]) Update(ctx context.Context, id int64, dto D) (T, error) {
	var zero T
	if err := dto.Validate(); err != nil {
		return zero, s.fail(err)
	}
	out, err := s.repo.Update(ctx, id, dto)
	if err != nil {
		return zero, s.fail(err)
	}
	s.succeed("Directory.Updated", logrus.Fields{"id": id})
	return out, nil
}

func (s *Service[T, D]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(err)
	}
	s.succeed("Directory.Deleted", logrus.Fields{"id": id})
	return nil
}

func (s *Service[T, D]) succeed(key string, fields logrus.Fields) {
	fields["entity"] = s.entity
	s.log.WithFields(fields).Info("directory: " + key)
	s.notify(ui.LevelSuccess, s.translator.T(key, map[string]any{"Entity": s.entity}))
}

func (s *Service[T, D]) fail(err error) error {
	switch serrors.KindOf(err) {
	case serrors.KindValidation:
	case serrors.KindBusiness:
		s.log.WithError(err).WithField("entity", s.entity).Warn("directory: rejected by portal")
	default:
		s.log.WithError(err).WithField("entity", s.entity).Error("directory: request failed")
	}
	s.notify(ui.LevelError, s.translator.Error(err))
	return err
}

func (s *Service[T, D]) notify(level ui.Level, msg string) {
	if s.bus == nil {
		return
	}
	ui.Notify(s.bus, level, msg)
}
