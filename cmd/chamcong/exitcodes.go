package main

import (
	"errors"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
	"github.com/dungnt1702/NOV-RECO-sub000/pkg/ui"
)

type cliError struct {
	code int
	err  error
	// reported errors were already shown as a toast.
	reported bool
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitUsage      = 3
	exitTransport  = 4
	exitBusiness   = 5
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// toasted marks a kinded err as already shown to the user by a service.
func toasted(err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: kindCode(err), err: err, reported: serrors.KindOf(err) != serrors.KindUnknown}
}

// reject toasts err itself, for failures raised outside a service.
func (rt *runtime) reject(err error) error {
	ui.Notify(rt.app.EventPublisher(), ui.LevelError, rt.app.Translator().Error(err))
	return toasted(err)
}

func kindCode(err error) int {
	switch serrors.KindOf(err) {
	case serrors.KindValidation:
		return exitValidation
	case serrors.KindTransport:
		return exitTransport
	case serrors.KindBusiness:
		return exitBusiness
	}
	return exitFailure
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return kindCode(err)
}

func wasReported(err error) bool {
	var ce *cliError
	return errors.As(err, &ce) && ce.reported
}
