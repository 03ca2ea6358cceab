package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/scrim-tournaments/repositories"
)

// Виды ошибок. Конкретные ошибки оборачивают один из них, вызывающая
// сторона классифицирует через errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("requested resource not found")
	ErrInvalidState  = errors.New("operation not allowed in the current state")
	ErrAuthorization = errors.New("operation not allowed for the current user")
	ErrConflict      = errors.New("conflicts with existing data")
	ErrPersistence   = errors.New("failed to durably record the change")
)

var (
	ErrTemplateNotFound   = kindError(ErrNotFound, "template not found")
	ErrTournamentNotFound = kindError(ErrNotFound, "tournament not found")
	ErrNoActiveTournament = kindError(ErrNotFound, "no active tournament in this scope")
	ErrTeamNotFound       = kindError(ErrNotFound, "team not found")
	ErrSubmissionNotFound = kindError(ErrNotFound, "submission not found")

	ErrTemplateNameConflict      = kindError(ErrConflict, "template name is already in use")
	ErrScopeAlreadyHasTournament = kindError(ErrConflict, "scope already has a tournament in registration or active state")
	ErrCaptainAlreadyRegistered  = kindError(ErrConflict, "captain already has a team in this tournament")
	ErrTeamNameConflict          = kindError(ErrConflict, "team name is already in use in this tournament")
	ErrDuplicateSubmission       = kindError(ErrConflict, "a pending or approved result already exists for this match")

	ErrRegistrationNotOpen               = kindError(ErrInvalidState, "tournament registration is not open")
	ErrTournamentNotActive               = kindError(ErrInvalidState, "tournament is not active")
	ErrTournamentInvalidStatusTransition = kindError(ErrInvalidState, "invalid tournament status transition")
	ErrSubmissionAlreadyReviewed         = kindError(ErrInvalidState, "submission has already been reviewed")

	ErrNotCaptain    = kindError(ErrAuthorization, "only team captains can submit results")
	ErrAdminRequired = kindError(ErrAuthorization, "only administrators can perform this action")

	// Аутентификация админки, вне таксономии ядра.
	ErrAuthInvalidCredentials = errors.New("invalid admin credentials")
	ErrAuthDisabled           = errors.New("admin login is not configured")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

func kindError(kind error, msg string) error {
	return &serviceError{kind: kind, msg: msg}
}

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// persistError переводит ошибку записи хранилища в ErrPersistence,
// остальные ошибки проходят как есть.
func persistError(err error) error {
	if err != nil && errors.Is(err, repositories.ErrPersistFailed) {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return err
}
