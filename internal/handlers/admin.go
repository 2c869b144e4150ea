// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
	"github.com/aniefioke/intellectual-property/internal/metrics"
	"github.com/aniefioke/intellectual-property/internal/utils"
)

type AdminHandler struct {
	ledger  *marketplace.Ledger
	metrics *metrics.Metrics
}

func NewAdminHandler(ledger *marketplace.Ledger, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{ledger: ledger, metrics: m}
}

type commissionRequest struct {
	Rate uint64 `json:"rate"`
}

// GET /admin/metrics
func (h *AdminHandler) GetMetrics(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"metrics": h.ledger.Metrics(),
	})
}

// PUT /admin/commission
func (h *AdminHandler) ConfigureCommission(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req commissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}

	err := h.ledger.ConfigureCommission(caller, req.Rate)
	h.metrics.ObserveOperation("configure_commission", err)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"commission_rate": req.Rate,
	})
}

// POST /admin/operational
//
// Flips the marketplace kill switch and reports the new state.
func (h *AdminHandler) ToggleOperational(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	operational, err := h.ledger.ToggleOperational(caller)
	h.metrics.ObserveOperation("toggle_operational", err)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"operational": operational,
	})
}
