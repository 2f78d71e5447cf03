package http

import (
	"errors"
	"net/http"

	"github.com/oneday-app/oneday-server/internal/service"
	"github.com/oneday-app/oneday-server/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrOracleUnavailable:       http.StatusInternalServerError,

	store.ErrEmailAlreadyExists:   http.StatusConflict,
	store.ErrNoUserWasFound:       http.StatusNotFound,
	store.ErrNoteNotFound:         http.StatusNotFound,
	store.ErrConversationNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
