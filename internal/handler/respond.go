package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cantouch/socialflow-backend/internal/common"
)

// respondServiceError maps service-layer errors onto HTTP responses.
// Credential failures get dedicated codes so the client can open the
// key-repair flow instead of showing the normal error panel.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *common.ValidationError
	var blockedErr *common.GenerationBlockedError
	var malformedErr *common.MalformedResponseError

	switch {
	case errors.Is(err, common.ErrAPIKeyMissing):
		common.ErrorResponseCode(c, http.StatusUnauthorized, "API_KEY_MISSING", err.Error())
	case errors.Is(err, common.ErrAPIKeyInvalid):
		common.ErrorResponseCode(c, http.StatusUnauthorized, "API_KEY_INVALID", err.Error())
	case errors.As(err, &validationErr):
		common.ErrorResponseCode(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message)
	case errors.As(err, &blockedErr):
		common.ErrorResponseCode(c, http.StatusUnprocessableEntity, "GENERATION_BLOCKED", blockedErr.Error())
	case errors.As(err, &malformedErr):
		common.ErrorResponseCode(c, http.StatusBadGateway, "MALFORMED_RESPONSE", malformedErr.Error())
	case errors.Is(err, common.ErrEmptyResponse):
		common.ErrorResponseCode(c, http.StatusBadGateway, "EMPTY_RESPONSE", err.Error())
	case errors.Is(err, common.ErrNoImageInResponse):
		common.ErrorResponseCode(c, http.StatusBadGateway, "NO_IMAGE_IN_RESPONSE", err.Error())
	case errors.Is(err, common.ErrGenerationInFlight):
		common.ErrorResponse(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, common.ErrNoPlatformsSelected),
		errors.Is(err, common.ErrMissingScheduleDate),
		errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, common.ErrNoGeneratedContent),
		errors.Is(err, common.ErrPostNotFound),
		errors.Is(err, common.ErrCampaignNotFound):
		common.ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
