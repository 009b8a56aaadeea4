package api

import (
	"net/http"

	"rentease/internal/domain/booking"
	reqdto "rentease/internal/handler/dto/request"
	resdto "rentease/internal/handler/dto/response"
	"rentease/internal/handler/httperr"
	"rentease/internal/handler/middleware"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/commands"
	"rentease/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qrys queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create booking
// @Description Request to rent a listing for an inclusive date range
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	cmd, fieldErrors := req.ToCommand()
	if fieldErrors != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrValidation, "Validation failed", fieldErrors)
		return
	}

	bookingID, err := h.commands.CreateBooking(c.Request.Context(), userID, cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: bookingID})
}

// @Summary Act on booking
// @Description Run a lifecycle action (approve, reject, cancel, start, complete)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param action path string true "Lifecycle action"
// @Param request body reqdto.BookingActionRequest false "Optional response or reason"
// @Success 200 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/{action} [post]
func (h *BookingHandler) Transition(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	action, ok := booking.ParseAction(c.Param("action"))
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrValidation, "Unknown booking action", nil)
		return
	}

	var req reqdto.BookingActionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	id, err := h.commands.Transition(c.Request.Context(), userID, bookingID, action, req.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.CreatedResponse{ID: id})
}

// @Summary Get booking
// @Description Get booking details; participants only
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description Paginated bookings where the caller is the renter
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Success 200 {object} resdto.PagedResponse[resdto.BookingListResponse]
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	page, size := pageParams(c)
	result, err := h.queries.ListByRenter(c.Request.Context(), userID, c.Query("status"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPage(result, resdto.FromBookingListItem))
}

// @Summary List booking requests
// @Description Paginated bookings on the caller's listings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Success 200 {object} resdto.PagedResponse[resdto.BookingListResponse]
// @Router /bookings/requests [get]
func (h *BookingHandler) ListBookingRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	page, size := pageParams(c)
	result, err := h.queries.ListByOwner(c.Request.Context(), userID, c.Query("status"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPage(result, resdto.FromBookingListItem))
}

// @Summary Pending request count
// @Description Number of REQUESTED bookings awaiting the caller's response
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Router /bookings/requests/pending-count [get]
func (h *BookingHandler) PendingRequestCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	count, err := h.queries.CountPendingRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// @Summary Booked date ranges
// @Description Calendar-blocking date ranges for a listing
// @Tags bookings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {array} resdto.BookedDateRangeResponse
// @Router /listings/{id}/booked-dates [get]
func (h *BookingHandler) GetBookedDateRanges(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid listing ID format", nil)
		return
	}

	ranges, err := h.queries.GetBookedDateRanges(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*resdto.BookedDateRangeResponse, len(ranges))
	for i, r := range ranges {
		out[i] = resdto.FromBookedDateRange(r)
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Is booking reviewable
// @Description Whether the caller can still review this booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.ReviewableResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/reviewable [get]
func (h *BookingHandler) IsReviewable(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		internalError(c)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	reviewable, err := h.queries.IsReviewable(c.Request.Context(), bookingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ReviewableResponse{Reviewable: reviewable})
}
