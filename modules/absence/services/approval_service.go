package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/absence/domain/absencerequest"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

var (
	ErrDelegateRequired = serrors.NewError("DELEGATE_REQUIRED", "Vui lòng chọn người ủy quyền", "Validation.DelegateRequired").WithField("delegate_to")
	ErrActionNotAllowed = serrors.NewError("ACTION_NOT_ALLOWED", "action not allowed for this request", "Validation.ActionNotAllowed")
	ErrInFlight         = serrors.NewError("ACTION_IN_FLIGHT", "an action for this request is already in flight", "Validation.InFlight")
)

var successKeys = map[absencerequest.Action]string{
	absencerequest.ActionApprove:  "Absence.Approved",
	absencerequest.ActionReject:   "Absence.Rejected",
	absencerequest.ActionDelegate: "Absence.Delegated",
	absencerequest.ActionCancel:   "Absence.Cancelled",
}

// ApprovalService runs one approval action end to end: local validation, a
// single POST, then a toast and a re-fetch. It never updates the request
// optimistically and never retries.
type ApprovalService struct {
	repo       absencerequest.Repository
	bus        eventbus.EventBus
	translator *intl.Translator
	prompter   ui.Prompter
	viewer     absencerequest.Viewer
	log        *logrus.Logger
}

type ApprovalOptions struct {
	Repository absencerequest.Repository
	EventBus   eventbus.EventBus
	Translator *intl.Translator
	Prompter   ui.Prompter
	Viewer     absencerequest.Viewer
	Logger     *logrus.Logger
}

func NewApprovalService(opts ApprovalOptions) *ApprovalService {
	prompter := opts.Prompter
	if prompter == nil {
		prompter = ui.StaticPrompter("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &ApprovalService{
		repo:       opts.Repository,
		bus:        opts.EventBus,
		translator: opts.Translator,
		prompter:   prompter,
		viewer:     opts.Viewer,
		log:        logger,
	}
}

func (s *ApprovalService) Viewer() absencerequest.Viewer {
	return s.viewer
}

// Actions returns the buttons to offer for r.
func (s *ApprovalService) Actions(r absencerequest.Request) []*ui.Button {
	actions := r.AvailableActions(s.viewer)
	out := make([]*ui.Button, 0, len(actions))
	for _, a := range actions {
		out = append(out, ui.NewButton(string(a), s.translator.T("Absence.Action."+string(a), nil)))
	}
	return out
}

// Perform executes cmd against r. btn may be nil; when set it is disabled for
// the duration of the call and always re-enabled. On success the re-fetched
// request is returned.
func (s *ApprovalService) Perform(ctx context.Context, r absencerequest.Request, cmd absencerequest.Command, btn *ui.Button) (absencerequest.Request, error) {
	if !r.Allows(s.viewer, cmd.Action) {
		return r, s.fail(ErrActionNotAllowed)
	}
	if cmd.Action == absencerequest.ActionDelegate && (cmd.DelegateTo == nil || *cmd.DelegateTo <= 0) {
		return r, s.fail(ErrDelegateRequired)
	}
	if cmd.Action == absencerequest.ActionReject && cmd.Comment == "" {
		answer, err := s.prompter.Prompt(ctx, s.translator.T("Absence.RejectPrompt", nil))
		if err != nil {
			return r, err
		}
		cmd.Comment = answer
	}

	if btn != nil {
		if !btn.Acquire() {
			return r, s.fail(ErrInFlight)
		}
		defer btn.Enable()
	}

	entry := s.log.WithFields(logrus.Fields{"request_id": r.ID, "action": cmd.Action})
	message, err := s.repo.Act(ctx, r.ID, cmd)
	if err != nil {
		return r, s.fail(err)
	}
	entry.Info("absence: action accepted")

	if message == "" {
		message = s.translator.T(successKeys[cmd.Action], nil)
	}
	ui.Notify(s.bus, ui.LevelSuccess, message)

	updated, err := s.repo.Get(ctx, r.ID)
	if err != nil {
		entry.WithError(err).Error("absence: refresh after action failed")
		ui.Notify(s.bus, ui.LevelError, s.translator.Error(err))
		return r, nil
	}
	return updated, nil
}

// fail reports err as a toast. Transport failures are logged; the toast
// shows the generic text for them.
func (s *ApprovalService) fail(err error) error {
	switch serrors.KindOf(err) {
	case serrors.KindBusiness:
		s.log.WithError(err).Warn("absence: action rejected by portal")
	case serrors.KindValidation:
	default:
		s.log.WithError(err).Error("absence: action failed")
	}
	ui.Notify(s.bus, ui.LevelError, s.translator.Error(err))
	return err
}
