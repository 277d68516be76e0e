package repository

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTokenNotFound      = errors.New("token not found")
	ErrPatronNotFound     = errors.New("patron not found")
	ErrTempPatronNotFound = errors.New("temp patron not found")
	ErrTempPatronClaimed  = errors.New("temp patron already claimed")
	ErrWishNotFound       = errors.New("wish not found")
	ErrNomineeNotFound    = errors.New("nominee not found")
	ErrLetterNotFound     = errors.New("letter not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrFactorNotFound     = errors.New("mfa factor not found")
	ErrTicketNotFound     = errors.New("support ticket not found")
)
