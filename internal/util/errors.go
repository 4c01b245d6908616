package util

import "errors"

var (
	ErrUserNotFound              = errors.New("user not found")
	ErrEmailRegistered           = errors.New("email already registered")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrAdminRegistrationDisabled = errors.New("admin registration disabled")
	ErrCourseNotFound            = errors.New("course not found")
	ErrModuleNotFound            = errors.New("module not found")
	ErrQuestionNotFound          = errors.New("question not found")
	ErrContestNotFound           = errors.New("contest not found")
	ErrInvalidInput              = errors.New("invalid input")
	ErrEmptyPDFText              = errors.New("could not extract meaningful text from PDF")
)
