package modules

import (
	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/directory"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/notifications"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/application"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

type Options struct {
	// Prompter answers interactive questions such as a missing rejection
	// comment. Nil means every prompt gets an empty answer.
	Prompter ui.Prompter
}

// BuiltInModules returns every module the client ships with.
func BuiltInModules(opts Options) []application.Module {
	return []application.Module{
		absence.NewModule(&absence.ModuleOptions{Prompter: opts.Prompter}),
		notifications.NewModule(),
		directory.NewModule(),
		checkin.NewModule(),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
