package api

import (
	"net/http"

	"rentease/internal/handler/httperr"
	"rentease/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	queries queries.ListingQueries
}

func NewListingHandler(qrys queries.ListingQueries) *ListingHandler {
	return &ListingHandler{queries: qrys}
}

// @Summary Get listing summary
// @Description Public listing card with rating aggregates
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} queries.ListingSummary
// @Failure 404 {object} httperr.Response
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	summary, err := h.queries.GetSummary(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
