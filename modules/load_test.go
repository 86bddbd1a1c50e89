package modules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dungnt1702/NOV-RECO-sub000/modules"
	absencesvc "github.com/dungnt1702/NOV-RECO-sub000/modules/absence/services"
	checkinsvc "github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/services"
	directorysvc "github.com/dungnt1702/NOV-RECO-sub000/modules/directory/services"
	notificationsvc "github.com/dungnt1702/NOV-RECO-sub000/modules/notifications/services"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/application"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/portal"
)

func TestLoad_RegistersEveryService(t *testing.T) {
	t.Parallel()

	client, err := portal.New(portal.Options{BaseURL: "http://portal.invalid"})
	require.NoError(t, err)
	app := application.New(&application.ApplicationOptions{Logger: logging.Nop(), Client: client})

	require.NoError(t, modules.Load(app, modules.BuiltInModules(modules.Options{})...))

	require.NotNil(t, app.Service(absencesvc.RequestService{}))
	require.NotNil(t, app.Service(absencesvc.ApprovalService{}))
	require.NotNil(t, app.Service(notificationsvc.NotificationService{}))
	require.NotNil(t, app.Service(notificationsvc.Poller{}))
	require.NotNil(t, app.Service(directorysvc.AreaService{}))
	require.NotNil(t, app.Service(directorysvc.LocationService{}))
	require.NotNil(t, app.Service(directorysvc.UserService{}))
	require.NotNil(t, app.Service(checkinsvc.CheckinService{}))

	areas := app.Service(directorysvc.AreaService{}).(*directorysvc.AreaService)
	require.Equal(t, "area", areas.Entity())
}
