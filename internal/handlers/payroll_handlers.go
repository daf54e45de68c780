package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/payroll"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/services"
	"github.com/fdepaulajodaracuna-max/CamarerosHoras/pkg/utils"
)

// PayrollHandler serves the payroll reports.
type PayrollHandler struct {
	payrollService services.PayrollService
	cfg            payroll.Config
}

// NewPayrollHandler creates a new PayrollHandler. The pay configuration is
// echoed in manager responses so the frontend can display the active rates.
func NewPayrollHandler(ps services.PayrollService, cfg payroll.Config) *PayrollHandler {
	return &PayrollHandler{payrollService: ps, cfg: cfg}
}

// GetAllPayrolls returns every worker's payroll report. Manager only.
func (h *PayrollHandler) GetAllPayrolls(c *gin.Context) {
	reports, err := h.payrollService.GetAllPayrolls()
	if err != nil {
		utils.LogError(err, "GetAllPayrolls failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate payroll.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pay_rate":          h.cfg.HourlyRate,
		"default_allowance": h.cfg.DefaultCarAllowance,
		"payroll":           reports,
	})
}

// GetMyPayroll returns the calling worker's own payroll report.
func (h *PayrollHandler) GetMyPayroll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.payrollService.GetWorkerPayroll(userID)
	if err != nil {
		utils.LogError(err, "GetMyPayroll failed for userID "+utils.Int64ToStr(userID))
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Worker not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to generate payroll.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}
