package api

import (
	"net/http"

	reqdto "rentease/internal/handler/dto/request"
	resdto "rentease/internal/handler/dto/response"
	"rentease/internal/handler/httperr"
	"rentease/internal/handler/middleware"
	"rentease/internal/usecase/commands"
	"rentease/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	commands commands.ReviewCommands
	queries  queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, qrys queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create review
// @Description Review a completed booking; renter only, once per booking
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReviewRequest true "Review"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	reviewID, err := h.commands.CreateReview(c.Request.Context(), userID, req.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: reviewID})
}

// @Summary Respond to review
// @Description One-shot owner response to a review on their listing
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.RespondToReviewRequest true "Response"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reviews/{id}/response [post]
func (h *ReviewHandler) RespondToReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review ID format", nil)
		return
	}

	var req reqdto.RespondToReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.RespondToReview(c.Request.Context(), userID, reviewID, req.Response); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewView(view))
}

// @Summary List listing reviews
// @Description Paginated reviews for a listing
// @Tags reviews
// @Produce json
// @Param id path string true "Listing ID"
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Success 200 {object} resdto.PagedResponse[resdto.ReviewResponse]
// @Router /listings/{id}/reviews [get]
func (h *ReviewHandler) ListListingReviews(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	page, size := pageParams(c)
	result, err := h.queries.ListByListing(c.Request.Context(), listingID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPage(result, resdto.FromReviewView))
}

// @Summary Listing rating stats
// @Description Review count and average rating for a listing
// @Tags reviews
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingRatingStatsResponse
// @Router /listings/{id}/rating [get]
func (h *ReviewHandler) GetListingRatingStats(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	stats, err := h.queries.GetListingRatingStats(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRatingStats(stats))
}
