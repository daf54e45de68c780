package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/services"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/utils"
)

// ShiftHandler holds the shift service.
type ShiftHandler struct {
	shiftService services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(ss services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: ss}
}

// UpdateAllowanceRequest is the payload for a manager correcting a shift's
// car allowance. A pointer so an explicit zero passes required-validation.
type UpdateAllowanceRequest struct {
	NewAllowance *float64 `json:"new_allowance" binding:"required"`
}

// RecordShift records a shift for the calling worker.
func (h *ShiftHandler) RecordShift(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RecordShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	shift, err := h.shiftService.RecordShift(userID, req)
	if err != nil {
		utils.LogError(err, "RecordShift failed")
		if errors.Is(err, services.ErrInvalidTimeInput) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date or time format.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record shift.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// GetMyShifts lists the calling worker's shifts, most recent first.
func (h *ShiftHandler) GetMyShifts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	shifts, err := h.shiftService.GetShiftsForWorker(userID)
	if err != nil {
		utils.LogError(err, "GetMyShifts failed for userID "+utils.Int64ToStr(userID))
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve shifts.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// UpdateAllowance corrects the car allowance on a shift. Manager only.
func (h *ShiftHandler) UpdateAllowance(c *gin.Context) {
	shiftID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid shift ID.", err.Error()))
		return
	}

	var req UpdateAllowanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	shift, err := h.shiftService.UpdateAllowance(shiftID, *req.NewAllowance)
	if err != nil {
		utils.LogError(err, "UpdateAllowance failed for shift "+utils.Int64ToStr(shiftID))
		switch {
		case errors.Is(err, services.ErrNegativeAllowance):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Allowance cannot be negative.", err.Error()))
		case errors.Is(err, services.ErrAllowanceNotApplicable):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Car was not used for this shift.", err.Error()))
		case errors.Is(err, services.ErrShiftNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update allowance.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, shift)
}
