package absence

import (
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/infrastructure/api"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/application"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

type ModuleOptions struct {
	// Prompter asks for a rejection comment when none was given.
	Prompter ui.Prompter
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	repo := api.NewRequestRepository(app.Client())

	var viewer absencerequest.Viewer
	if conf := app.Config(); conf != nil {
		viewer.ID = conf.Portal.UserID
	}

	app.RegisterServices(
		services.NewRequestService(repo),
		services.NewApprovalService(services.ApprovalOptions{
			Repository: repo,
			EventBus:   app.EventPublisher(),
			Translator: app.Translator(),
			Prompter:   m.options.Prompter,
			Viewer:     viewer,
			Logger:     app.Logger(),
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "absence"
}
