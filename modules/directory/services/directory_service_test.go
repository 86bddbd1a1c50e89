package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/area"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/paging"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/user"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/presentation/dtos"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

type fakeRepo[T any] struct {
	items   []T
	created []any
	updated []any
	deleted []int64
	err     error
}

func (f *fakeRepo[T]) List(context.Context, paging.Params) ([]T, int, error) {
	return f.items, len(f.items), f.err
}

func (f *fakeRepo[T]) All(context.Context, int) ([]T, error) { return f.items, f.err }

func (f *fakeRepo[T]) Get(context.Context, int64) (T, error) {
	var zero T
	if len(f.items) == 0 {
		return zero, f.err
	}
	return f.items[0], f.err
}

func (f *fakeRepo[T]) Create(_ context.Context, body any) (T, error) {
	var zero T
	f.created = append(f.created, body)
	return zero, f.err
}

func (f *fakeRepo[T]) Update(_ context.Context, _ int64, body any) (T, error) {
	var zero T
	f.updated = append(f.updated, body)
	return zero, f.err
}

func (f *fakeRepo[T]) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func setup(t *testing.T) (*ui.Presenter, services.Options) {
	t.Helper()
	bus := eventbus.NewEventPublisher(logging.Nop())
	p := ui.NewPresenter(bus, nil)
	t.Cleanup(p.Close)
	return p, services.Options{EventBus: bus, Translator: intl.NewTranslator(intl.MustLoadBundle(), "vi")}
}

func ptr(v float64) *float64 { return &v }

func TestService_ValidationBlocksRequest(t *testing.T) {
	t.Parallel()

	p, opts := setup(t)
	repo := &fakeRepo[area.Area]{}
	svc := services.NewService[area.Area, *dtos.AreaDTO]("area", repo, opts)

	_, err := svc.Create(context.Background(), &dtos.AreaDTO{Name: "Kho", Latitude: ptr(91), Longitude: ptr(0), Radius: 10})
	require.Error(t, err)
	require.True(t, serrors.IsValidation(err))
	require.Empty(t, repo.created)

	_, err = svc.Update(context.Background(), 4, &dtos.AreaDTO{Name: "Kho", Latitude: ptr(0), Longitude: ptr(0), Radius: 0})
	require.Error(t, err)
	require.Empty(t, repo.updated)

	last, ok := p.Last()
	require.True(t, ok)
	require.Equal(t, ui.LevelError, last.Level)
	require.Equal(t, "Bán kính phải lớn hơn 0 và không quá 10000 mét", last.Message)
}

func TestService_CreateToastsSuccess(t *testing.T) {
	t.Parallel()

	p, opts := setup(t)
	repo := &fakeRepo[user.User]{}
	svc := services.NewService[user.User, *dtos.UserDTO]("user", repo, opts)

	_, err := svc.Create(context.Background(), &dtos.UserDTO{Username: "an.nv", Email: "an@novreco.vn"})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	last, _ := p.Last()
	require.Equal(t, ui.LevelSuccess, last.Level)
	require.Equal(t, "Đã tạo", last.Message)
}

func TestService_BusinessErrorShownVerbatim(t *testing.T) {
	t.Parallel()

	p, opts := setup(t)
	repo := &fakeRepo[user.User]{err: serrors.Business(400, "Tên đăng nhập đã tồn tại")}
	svc := services.NewService[user.User, *dtos.UserDTO]("user", repo, opts)

	err := svc.Delete(context.Background(), 7)
	require.Error(t, err)
	require.Equal(t, []int64{7}, repo.deleted)
	last, _ := p.Last()
	require.Equal(t, "Tên đăng nhập đã tồn tại", last.Message)
	require.True(t, p.HasErrors())
}
