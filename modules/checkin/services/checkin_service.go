package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/capture"
	"github.com/dungnt1702/NOV-RECO-sub000/modules/checkin/domain/checkin"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/eventbus"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/intl"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/logging"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

var submissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "chamcong",
	Subsystem: "checkin",
	Name:      "submissions_total",
	Help:      "Check-in submissions broken down by type and result.",
}, []string{"type", "result"})

var ErrSubmitInFlight = serrors.NewError("CHECKIN_IN_FLIGHT", "a check-in is already being submitted", "Validation.InFlight")

type CheckinService struct {
	repo       checkin.Repository
	bus        eventbus.EventBus
	translator *intl.Translator
	log        *logrus.Logger
}

func NewCheckinService(repo checkin.Repository, bus eventbus.EventBus, tr *intl.Translator, log *logrus.Logger) *CheckinService {
	if log == nil {
		log = logging.Nop()
	}
	return &CheckinService{repo: repo, bus: bus, translator: tr, log: log}
}

// SubmitInput carries the form fields that are not part of the capture.
type SubmitInput struct {
	Type   string
	Note   string
	AreaID *int64
}

// Submit posts the captured photo and fix once. Nothing is sent unless both
// capture branches are done. btn, when set, is disabled for the call. On
// success the flow is reset.
func (s *CheckinService) Submit(ctx context.Context, flow *capture.Flow, in SubmitInput, btn *ui.Button) (checkin.Result, error) {
	typ, err := checkin.ParseType(in.Type)
	if err != nil {
		return checkin.Result{}, s.fail(err)
	}
	fix, photo, err := flow.Ready()
	if err != nil {
		return checkin.Result{}, s.fail(err)
	}
	if btn != nil {
		if !btn.Acquire() {
			return checkin.Result{}, s.fail(ErrSubmitInFlight)
		}
		defer btn.Enable()
	}

	res, err := s.repo.Submit(ctx, checkin.Submission{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Note:      in.Note,
		Type:      typ,
		AreaID:    in.AreaID,
		Photo:     photo,
	})
	if err != nil {
		submissions.WithLabelValues(string(typ), serrors.KindOf(err).String()).Inc()
		return checkin.Result{}, s.fail(err)
	}
	submissions.WithLabelValues(string(typ), "ok").Inc()
	s.log.WithFields(logrus.Fields{"type": typ, "checkin_id": res.Checkin.ID}).Info("checkin: submitted")

	msg := res.Message
	if msg == "" {
		msg = s.translator.T("Checkin.Submitted", nil)
	}
	s.notify(ui.LevelSuccess, msg)
	flow.Reset()
	return res, nil
}

func (s *CheckinService) List(ctx context.Context, p checkin.ListParams) ([]checkin.Checkin, int, error) {
	return s.repo.List(ctx, p)
}

func (s *CheckinService) History(ctx context.Context, p checkin.ListParams) ([]checkin.Checkin, int, error) {
	return s.repo.History(ctx, p)
}

// SubmitButton reflects whether the flow can be submitted right now.
func (s *CheckinService) SubmitButton(flow *capture.Flow) *ui.Button {
	btn := ui.NewButton("submit", s.translator.T("Checkin.Submit", nil))
	if !flow.CanSubmit() {
		btn.Disable()
	}
	return btn
}

func (s *CheckinService) fail(err error) error {
	switch serrors.KindOf(err) {
	case serrors.KindValidation:
	case serrors.KindBusiness:
		s.log.WithError(err).Warn("checkin: rejected by portal")
	default:
		s.log.WithError(err).Error("checkin: submit failed")
	}
	s.notify(ui.LevelError, s.translator.Error(err))
	return err
}

func (s *CheckinService) notify(level ui.Level, msg string) {
	if s.bus == nil {
		return
	}
	ui.Notify(s.bus, level, msg)
}
