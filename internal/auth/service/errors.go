package service

import (
	"net/http"

	commonerrors "github.com/epakhin/teamdeck/authd/internal/common/errors"
)

var (
	ErrMissingAuthorization = commonerrors.NewDomainError(
		"MISSING_AUTHORIZATION",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"authorization header is required",
	)

	ErrMalformedAuthorization = commonerrors.NewDomainError(
		"MALFORMED_AUTHORIZATION",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"authorization header must be of the form 'Bearer <token>'",
	)

	// ErrAuthentication is the single answer for every trust failure: bad
	// signature, expired, unknown, mismatched binding, orphaned owner. The
	// caller must not be able to tell which check rejected the credential.
	ErrAuthentication = commonerrors.NewDomainError(
		"AUTHENTICATION_FAILED",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid or expired credentials",
	)

	ErrStorage = commonerrors.NewDomainError(
		"STORAGE_FAILURE",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"storage operation failed",
	)
)
