package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/domain/notification"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/listing"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

// NotificationService pages notifications from the portal. Every mutation is
// followed by a re-fetch of the current page and of the unread count.
type NotificationService struct {
	repo       notification.Repository
	bus        eventbus.EventBus
	translator *intl.Translator
	log        *logrus.Logger
	pager      *listing.ServerPager[notification.Notification]
	unread     int
}

func NewNotificationService(repo notification.Repository, bus eventbus.EventBus, tr *intl.Translator, log *logrus.Logger, pageSize int) *NotificationService {
	if log == nil {
		log = logging.Nop()
	}
	s := &NotificationService{repo: repo, bus: bus, translator: tr, log: log}
	s.pager = listing.NewServerPager[notification.Notification](pageSource{repo: repo}, pageSize)
	return s
}

type pageSource struct {
	repo notification.Repository
}

func (p pageSource) Fetch(ctx context.Context, page, size int) ([]notification.Notification, int, error) {
	return p.repo.List(ctx, page, size)
}

func (s *NotificationService) List(ctx context.Context, page int) (listing.Page[notification.Notification], error) {
	return s.pager.Load(ctx, page)
}

func (s *NotificationService) Current() listing.Page[notification.Notification] {
	return s.pager.Current()
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	n, err := s.repo.UnreadCount(ctx)
	if err != nil {
		return s.unread, err
	}
	if n != s.unread {
		prev := s.unread
		s.unread = n
		s.bus.Publish(&notification.UnreadChanged{Count: n, Previous: prev})
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return s.mutate(ctx, "Notifications.MarkedRead", func() error { return s.repo.MarkRead(ctx, id) })
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.mutate(ctx, "Notifications.MarkedAllRead", func() error { return s.repo.MarkAllRead(ctx) })
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return s.mutate(ctx, "Notifications.Deleted", func() error { return s.repo.Delete(ctx, id) })
}

func (s *NotificationService) mutate(ctx context.Context, successKey string, call func() error) error {
	if err := call(); err != nil {
		s.log.WithError(err).Warn("notifications: mutation failed")
		ui.Notify(s.bus, ui.LevelError, s.translator.Error(err))
		return err
	}
	ui.Notify(s.bus, ui.LevelSuccess, s.translator.T(successKey, nil))

	page := s.pager.Current().Number
	if _, err := s.pager.Load(ctx, page); err != nil {
		s.log.WithError(err).Warn("notifications: refresh failed")
	}
	if _, err := s.UnreadCount(ctx); err != nil {
		s.log.WithError(err).Warn("notifications: unread refresh failed")
	}
	return nil
}
