package directory

import (
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/area"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/location"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/domain/user"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/infrastructure/api"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/presentation/dtos"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	client := app.Client()
	opts := services.Options{
		EventBus:   app.EventPublisher(),
		Translator: app.Translator(),
		Logger:     app.Logger(),
	}
	if conf := app.Config(); conf != nil {
		opts.PageSize = conf.MaxPageSize
	}
	app.RegisterServices(
		services.NewService[area.Area, *dtos.AreaDTO]("area",
			api.NewResource[area.Area](client, api.AreasPath, "areas", "area"), opts),
		services.NewService[location.Location, *dtos.AreaDTO]("location",
			api.NewResource[location.Location](client, api.LocationsPath, "locations", "location"), opts),
		services.NewService[user.User, *dtos.UserDTO]("user",
			api.NewResource[user.User](client, api.UsersPath, "users", "user"), opts),
	)
	return nil
}

func (m *Module) Name() string {
	return "directory"
}
