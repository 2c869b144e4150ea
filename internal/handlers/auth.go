// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/aniefioke/intellectual-property/internal/config"
	"github.com/aniefioke/intellectual-property/internal/utils"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type tokenRequest struct {
	Principal string `json:"principal" binding:"required" validate:"required,principal"`
	APIKey    string `json:"api_key" binding:"required"`
}

// POST /auth/token
//
// Exchanges the deployment API key for a bearer token naming the caller
// principal. The admin claim is granted only when the principal matches the
// configured administrator address.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if h.cfg.Marketplace.APIKeyHash == "" {
		utils.UnauthorizedResponse(c, "Token issuance is not configured")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.Marketplace.APIKeyHash), []byte(req.APIKey)); err != nil {
		utils.UnauthorizedResponse(c, "Invalid API key")
		return
	}

	admin := req.Principal == h.cfg.Marketplace.AdminAddress
	token, err := utils.GenerateJWT(req.Principal, admin, h.cfg.JWT.TokenTTL)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token":     token,
		"principal": req.Principal,
		"admin":     admin,
		"ttl_hours": h.cfg.JWT.TokenTTL,
	})
}
