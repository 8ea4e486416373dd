package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/ksrlabs/resource-booking/internal/domain/booking"
	"github.com/ksrlabs/resource-booking/internal/dto"
	"github.com/ksrlabs/resource-booking/internal/httperr"
	"github.com/ksrlabs/resource-booking/internal/httpresp"
	"github.com/ksrlabs/resource-booking/internal/middleware"
	"github.com/ksrlabs/resource-booking/internal/models"
	ucBooking "github.com/ksrlabs/resource-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo domain.Repository

	createUC        *ucBooking.CreateBooking
	approveUC       *ucBooking.ApproveBooking
	rejectUC        *ucBooking.RejectBooking
	cancelUC        *ucBooking.CancelBooking
	updateUC        *ucBooking.UpdateBooking
	listForUserUC   *ucBooking.ListBookingsForUser
	listActiveUC    *ucBooking.ListActiveBookings
	findConflictsUC *ucBooking.FindConflicts
}

func NewBookingHandler(
	repo domain.Repository,
	createUC *ucBooking.CreateBooking,
	approveUC *ucBooking.ApproveBooking,
	rejectUC *ucBooking.RejectBooking,
	cancelUC *ucBooking.CancelBooking,
	updateUC *ucBooking.UpdateBooking,
	listForUserUC *ucBooking.ListBookingsForUser,
	listActiveUC *ucBooking.ListActiveBookings,
	findConflictsUC *ucBooking.FindConflicts,
) *BookingHandler {
	return &BookingHandler{
		repo:            repo,
		createUC:        createUC,
		approveUC:       approveUC,
		rejectUC:        rejectUC,
		cancelUC:        cancelUC,
		updateUC:        updateUC,
		listForUserUC:   listForUserUC,
		listActiveUC:    listActiveUC,
		findConflictsUC: findConflictsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ResourceID uint   `json:"resource_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Slot       string `json:"slot"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type UpdateBookingRequest struct {
	ResourceID uint   `json:"resource_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Slot       string `json:"slot"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:     userID,
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Slot:       req.Slot,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(201, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.listForUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListActive(c *gin.Context) {
	bookings, err := h.listActiveUC.Execute(c.Request.Context())
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingListDTO(b))
	}

	httpresp.List(c, out)
}

// Get keeps soft-deleted bookings reachable by id for audit.
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.repo.GetBooking(c.Request.Context(), id)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// REVIEW
// ======================================================

func (h *BookingHandler) Approve(c *gin.Context) {
	reviewerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.approveUC.Execute(c.Request.Context(), id, reviewerID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	reviewerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "rejection_reason_required", "Rejection reason is mandatory.")
		return
	}

	b, err := h.rejectUC.Execute(c.Request.Context(), id, reviewerID, req.Reason)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// CANCEL / UPDATE
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.cancelUC.Execute(c.Request.Context(), id, requesterID); err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.Status(204)
}

func (h *BookingHandler) Update(c *gin.Context) {
	requesterID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	b, err := h.updateUC.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		BookingID:   id,
		RequesterID: requesterID,
		ResourceID:  req.ResourceID,
		Date:        req.Date,
		Slot:        req.Slot,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// CONFLICT PROBE
// ======================================================

func (h *BookingHandler) Conflicts(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Query("resource_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_resource_id", "resource_id is required.")
		return
	}

	excludeID := uint64(0)
	if raw := c.Query("exclude_id"); raw != "" {
		excludeID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_exclude_id", "exclude_id must be numeric.")
			return
		}
	}

	conflicts, err := h.findConflictsUC.Execute(c.Request.Context(), ucBooking.FindConflictsInput{
		ResourceID:       uint(resourceID),
		Date:             c.Query("date"),
		Slot:             c.Query("slot"),
		StartTime:        c.Query("start_time"),
		EndTime:          c.Query("end_time"),
		ExcludeBookingID: uint(excludeID),
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.List(c, conflicts)
}

// ======================================================
// HELPERS
// ======================================================

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return 0, false
	}
	return uint(id), true
}

func toBookingListDTO(b models.Booking) dto.BookingListDTO {
	return dto.BookingListDTO{
		ID:            b.ID,
		UserID:        b.UserID,
		UserName:      b.User.Name,
		ResourceID:    b.ResourceID,
		ResourceName:  b.Resource.Name,
		BookingDate:   b.BookingDate.Format("2006-01-02"),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		DurationHours: b.DurationHours,
		Status:        b.Status,
		ApprovedBy:    b.ApprovedBy,
		ApprovedAt:    b.ApprovedAt,
	}
}
