// internal/handlers/royalty.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
	"github.com/aniefioke/intellectual-property/internal/metrics"
	"github.com/aniefioke/intellectual-property/internal/utils"
)

type RoyaltyHandler struct {
	ledger  *marketplace.Ledger
	metrics *metrics.Metrics
}

func NewRoyaltyHandler(ledger *marketplace.Ledger, m *metrics.Metrics) *RoyaltyHandler {
	return &RoyaltyHandler{ledger: ledger, metrics: m}
}

type processRoyaltyRequest struct {
	ContractID uint64 `json:"contract_id" binding:"required"`
	Usage      uint64 `json:"usage" binding:"required"`
}

// POST /royalties
func (h *RoyaltyHandler) Process(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req processRoyaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}

	txID, err := h.ledger.ProcessRoyaltyPayment(caller, req.ContractID, req.Usage)
	h.metrics.ObserveOperation("process_royalty", err)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	transaction, _ := h.ledger.Transaction(txID)
	h.metrics.ObserveRoyalty(transaction.Amount)

	utils.CreatedResponse(c, gin.H{
		"transaction": transaction,
	})
}

// GET /transactions/:id
func (h *RoyaltyHandler) GetTransaction(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transaction ID", nil)
		return
	}

	transaction, err := h.ledger.Transaction(id)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"transaction": transaction,
	})
}

// GET /royalties/quote
//
// Computes the royalty a given usage volume would owe under a contract's
// snapshotted rate, without moving funds.
func (h *RoyaltyHandler) Quote(c *gin.Context) {
	contractID, err := parseQueryID(c, "contract_id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contract ID", nil)
		return
	}
	usage, err := parseQueryID(c, "usage")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid usage amount", nil)
		return
	}

	contract, err := h.ledger.Contract(contractID)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"contract_id":  contractID,
		"usage":        usage,
		"royalty_rate": contract.RoyaltyRate,
		"amount":       marketplace.RoyaltyAmount(usage, contract.RoyaltyRate),
	})
}
