package checkin

import (
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/infrastructure/api"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewCheckinService(
			api.NewCheckinRepository(app.Client()),
			app.EventPublisher(),
			app.Translator(),
			app.Logger(),
		),
	)
	return nil
}

func (m *Module) Name() string {
	return "checkin"
}
