// internal/handlers/technology.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aniefioke/intellectual-property/internal/database"
	"github.com/aniefioke/intellectual-property/internal/marketplace"
	"github.com/aniefioke/intellectual-property/internal/metrics"
	"github.com/aniefioke/intellectual-property/internal/services"
	"github.com/aniefioke/intellectual-property/internal/utils"
)

type TechnologyHandler struct {
	ledger    *marketplace.Ledger
	documents *services.DocumentService
	store     *database.Store
	metrics   *metrics.Metrics
}

func NewTechnologyHandler(ledger *marketplace.Ledger, documents *services.DocumentService, store *database.Store, m *metrics.Metrics) *TechnologyHandler {
	return &TechnologyHandler{
		ledger:    ledger,
		documents: documents,
		store:     store,
		metrics:   m,
	}
}

type registerTechnologyRequest struct {
	Title        string `json:"title" binding:"required"`
	Summary      string `json:"summary"`
	LicensingFee uint64 `json:"licensing_fee"`
	RoyaltyRate  uint64 `json:"royalty_rate"`
}

type modifyTermsRequest struct {
	LicensingFee *uint64 `json:"licensing_fee"`
	RoyaltyRate  *uint64 `json:"royalty_rate"`
	Available    *bool   `json:"available"`
}

// POST /technologies
func (h *TechnologyHandler) Register(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req registerTechnologyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}

	id, err := h.ledger.RegisterTechnology(caller, marketplace.RegisterTechnologyParams{
		Title:        req.Title,
		Summary:      req.Summary,
		LicensingFee: req.LicensingFee,
		RoyaltyRate:  req.RoyaltyRate,
	})
	h.metrics.ObserveOperation("register_technology", err)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}
	h.metrics.UpdateAggregates(h.ledger.Metrics())

	technology, _ := h.ledger.Technology(id)
	utils.CreatedResponse(c, gin.H{
		"technology": technology,
	})
}

// PATCH /technologies/:id
func (h *TechnologyHandler) ModifyTerms(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid technology ID", nil)
		return
	}

	var req modifyTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}

	err = h.ledger.ModifyTerms(caller, id, marketplace.ModifyTermsParams{
		LicensingFee: req.LicensingFee,
		RoyaltyRate:  req.RoyaltyRate,
		Available:    req.Available,
	})
	h.metrics.ObserveOperation("modify_terms", err)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	technology, _ := h.ledger.Technology(id)
	utils.SuccessResponse(c, gin.H{
		"technology": technology,
	})
}

// GET /technologies/:id
func (h *TechnologyHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid technology ID", nil)
		return
	}

	technology, err := h.ledger.Technology(id)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"technology": technology,
	})
}

// POST /technologies/:id/documents
//
// Owner-only. The document store is ancillary: upload failures never touch
// ledger state.
func (h *TechnologyHandler) UploadDocument(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid technology ID", nil)
		return
	}

	technology, err := h.ledger.Technology(id)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}
	if technology.Owner != caller {
		utils.ForbiddenResponse(c, "Only the owner may attach documents")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", nil)
		return
	}
	defer file.Close()

	result, err := h.documents.UploadDocument(id, file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if h.store != nil {
		if err := h.store.AppendDocumentURL(id, result.URL); err != nil {
			utils.InternalErrorResponse(c, "Failed to record document")
			return
		}
	}

	utils.CreatedResponse(c, gin.H{
		"document": result,
	})
}

// GET /technologies/:id/documents
func (h *TechnologyHandler) ListDocuments(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid technology ID", nil)
		return
	}

	if _, err := h.ledger.Technology(id); err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}

	var urls []string
	if h.store != nil {
		urls, err = h.store.DocumentURLs(id)
		if err != nil {
			utils.InternalErrorResponse(c, "")
			return
		}
	}

	utils.SuccessResponse(c, gin.H{
		"technology_id": id,
		"documents":     urls,
	})
}

// GET /technologies/:id/documents/link?key=K
//
// Object keys contain slashes, so the key travels as a query parameter.
func (h *TechnologyHandler) DocumentLink(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid technology ID", nil)
		return
	}

	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "A key parameter is required", nil)
		return
	}

	technology, err := h.ledger.Technology(id)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}
	if technology.Owner != caller {
		utils.ForbiddenResponse(c, "Only the owner may request document links")
		return
	}

	url, err := h.documents.GeneratePresignedURL(key, 15*time.Minute)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"url": url,
	})
}

// DELETE /technologies/:id/documents?key=K
func (h *TechnologyHandler) DeleteDocument(c *gin.Context) {
	caller, exists := utils.GetCallerFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid technology ID", nil)
		return
	}

	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "A key parameter is required", nil)
		return
	}

	technology, err := h.ledger.Technology(id)
	if err != nil {
		utils.MarketplaceErrorResponse(c, err)
		return
	}
	if technology.Owner != caller {
		utils.ForbiddenResponse(c, "Only the owner may delete documents")
		return
	}

	if err := h.documents.DeleteDocument(key); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	if h.store != nil {
		if err := h.store.RemoveDocumentURL(id, h.documents.DocumentURL(key)); err != nil {
			utils.InternalErrorResponse(c, "Failed to update document record")
			return
		}
	}

	utils.SuccessResponse(c, gin.H{
		"deleted": key,
	})
}

func parseID(c *gin.Context, param string) (uint64, error) {
	return strconv.ParseUint(c.Param(param), 10, 64)
}

func parseQueryID(c *gin.Context, param string) (uint64, error) {
	return strconv.ParseUint(c.Query(param), 10, 64)
}
