package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/souravsharma24/onboarding-form-sub000/internal/common/errors"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), apiResponse{Success: false, Error: errorBody(err)})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, apiResponse{
		Success: false,
		Error:   map[string]string{"code": "BAD_REQUEST", "message": message},
	})
}

func errorBody(err error) interface{} {
	if stdErr, ok := err.(*apperrors.StandardError); ok {
		return stdErr
	}
	return map[string]string{"code": string(apperrors.CodeOf(err)), "message": err.Error()}
}

func statusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeSectionUnknown:
		return http.StatusNotFound
	case apperrors.ErrCodeValidationFailed, apperrors.ErrCodeSubmissionRejected:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNavigationInvalid, apperrors.ErrCodeSubmissionIncomplete:
		return http.StatusConflict
	case apperrors.ErrCodeInviteInvalid:
		return http.StatusForbidden
	case apperrors.ErrCodeStorageUnavailable, apperrors.ErrCodeSubmissionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
