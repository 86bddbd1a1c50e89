package notifications

import (
	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/infrastructure/api"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	repo := api.NewNotificationRepository(app.Client())
	pageSize := 10
	pollOpts := services.PollerOptions{Logger: app.Logger()}
	if conf := app.Config(); conf != nil {
		pageSize = conf.PageSize
		pollOpts.Interval = conf.Notifications.PollInterval
	}
	svc := services.NewNotificationService(repo, app.EventPublisher(), app.Translator(), app.Logger(), pageSize)
	app.RegisterServices(
		svc,
		services.NewPoller(repo, app.EventPublisher(), pollOpts),
	)
	return nil
}

func (m *Module) Name() string {
	return "notifications"
}
