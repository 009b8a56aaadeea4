package api

import (
	"net/http"

	"rentease/internal/handler/httperr"
	"rentease/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase sentinels onto the HTTP taxonomy. Matching
// goes through errs.Is so sentinels attached with errs.Mark are seen;
// stdlib errors.Is cannot see marks. Invalid
// transitions are 409: the request was well-formed but lost against
// the booking's current state.
func respondError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrBookingNotFound),
		errs.Is(err, errs.ErrListingNotFound),
		errs.Is(err, errs.ErrReviewNotFound),
		errs.Is(err, errs.ErrNotificationNotFound),
		errs.Is(err, errs.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errs.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "You are not allowed to perform this action", nil)
	case errs.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Action not valid for the current booking status", nil)
	case errs.Is(err, errs.ErrDatesOverlap):
		httperr.AbortWithError(c, http.StatusConflict, err, "Dates overlap with an existing booking", nil)
	case errs.Is(err, errs.ErrAlreadyReviewed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking already reviewed", nil)
	case errs.Is(err, errs.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
	case errs.Is(err, errs.ErrListingUnavailable):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Listing is not available for booking", nil)
	case errs.Is(err, errs.ErrSelfBooking):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "You cannot book your own listing", nil)
	case errs.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errs.Is(err, errs.ErrInvalidCredentials):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
