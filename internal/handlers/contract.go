// internal/handlers/contract.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
	"github.com/aniefioke/intellectual-property/internal/metrics"
	"github.com/aniefioke/intellectual-property/internal/utils"
)

type ContractHandler struct {
	ledger  *marketplace.Ledger
	metrics *metrics.Metrics
}

func NewContractHandler(ledger *marketplace.Ledger, m *metrics.Metrics) *ContractHandler {
	return &ContractHandler{ledger: ledger, metrics: m}
}

type createContractRequest struct {
	TechnologyID uint64 `json:"technology_id" binding:"required"`
	Duration     uint64 `json:"duration" binding:"required"`
}

// POST /contracts
func (h *ContractHandler) Create(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}

	id, err := h.ledger.CreateLicenseContract(caller, req.TechnologyID, req.Duration)
	h.metrics.ObserveOperation("create_contract", err)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}
	h.metrics.UpdateAggregates(h.ledger.Metrics())

	contract, _ := h.ledger.Contract(id)
	utils.CreatedResponse(c, gin.H{
		"contract": contract,
	})
}

// DELETE /contracts/:id
func (h *ContractHandler) Revoke(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contract ID", nil)
		return
	}

	err = h.ledger.RevokeContract(caller, id)
	h.metrics.ObserveOperation("revoke_contract", err)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}
	h.metrics.UpdateAggregates(h.ledger.Metrics())

	contract, _ := h.ledger.Contract(id)
	utils.SuccessResponse(c, gin.H{
		"contract": contract,
	})
}

// GET /contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contract ID", nil)
		return
	}

	contract, err := h.ledger.Contract(id)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"contract": contract,
	})
}

// GET /contracts/:id/access?user=PRINCIPAL
//
// Answers whether a principal currently holds usage rights under the
// contract. The user query parameter defaults to the authenticated caller;
// the check itself is public, anyone may ask about anyone. A definite "no" is
// a successful response, not an error.
func (h *ContractHandler) CheckAccess(c *gin.Context) {
	user := marketplace.Principal(c.Query("user"))
	if user == "" {
		caller, exists := utils.GetCallerFromContext(c)
		if !exists {
			utils.BadRequestResponse(c, "A user parameter or bearer token is required", nil)
			return
		}
		user = caller
	}

	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contract ID", nil)
		return
	}

	granted, err := h.ledger.CheckAccess(user, id)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"contract_id": id,
		"principal":   user,
		"granted":     granted,
	})
}
