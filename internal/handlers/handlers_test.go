// internal/handlers/handlers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/aniefioke/intellectual-property/internal/config"
	"github.com/aniefioke/intellectual-property/internal/events"
	"github.com/aniefioke/intellectual-property/internal/handlers"
	"github.com/aniefioke/intellectual-property/internal/marketplace"
	"github.com/aniefioke/intellectual-property/internal/metrics"
	"github.com/aniefioke/intellectual-property/internal/middleware"
	"github.com/aniefioke/intellectual-property/internal/payments"
	"github.com/aniefioke/intellectual-property/internal/services"
	"github.com/aniefioke/intellectual-property/internal/utils"
)

const (
	adminAddr    = "ST1ADMIN"
	ownerAddr    = "ST2OWNER"
	licenseeAddr = "ST3LICENSEE"
	strangerAddr = "ST4STRANGER"

	testAPIKey = "test-api-key"
)

// Prometheus collectors register globally, so the suite shares one instance.
var testMetrics = metrics.New()

type manualClock struct {
	block uint64
}

func (c *manualClock) Now() uint64 { return c.block }

type HandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	ledger   *marketplace.Ledger
	payments *payments.MemoryExecutor
	clock    *manualClock
	feed     *events.Feed

	ownerToken    string
	licenseeToken string
	adminToken    string
	strangerToken string
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	var err error
	suite.ownerToken, err = utils.GenerateJWT(ownerAddr, false, 1)
	suite.Require().NoError(err)
	suite.licenseeToken, err = utils.GenerateJWT(licenseeAddr, false, 1)
	suite.Require().NoError(err)
	suite.adminToken, err = utils.GenerateJWT(adminAddr, true, 1)
	suite.Require().NoError(err)
	suite.strangerToken, err = utils.GenerateJWT(strangerAddr, false, 1)
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.payments = payments.NewMemoryExecutor()
	suite.payments.Deposit(ownerAddr, 100_000_000)
	suite.payments.Deposit(licenseeAddr, 100_000_000)

	suite.clock = &manualClock{block: 100}
	suite.ledger = marketplace.NewLedger(adminAddr, suite.clock, suite.payments)

	suite.feed = events.NewFeed(32)
	suite.ledger.AttachSink(events.Multi{suite.feed})

	hash, err := bcrypt.GenerateFromPassword([]byte(testAPIKey), bcrypt.MinCost)
	suite.Require().NoError(err)

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", TokenTTL: 1},
		Marketplace: config.MarketplaceConfig{
			AdminAddress: adminAddr,
			APIKeyHash:   string(hash),
		},
	}

	documents, err := services.NewDocumentService(cfg)
	suite.Require().NoError(err)

	authHandler := handlers.NewAuthHandler(cfg)
	technologyHandler := handlers.NewTechnologyHandler(suite.ledger, documents, nil, testMetrics)
	contractHandler := handlers.NewContractHandler(suite.ledger, testMetrics)
	royaltyHandler := handlers.NewRoyaltyHandler(suite.ledger, testMetrics)
	adminHandler := handlers.NewAdminHandler(suite.ledger, testMetrics)
	eventsHandler := handlers.NewEventsHandler(suite.feed, events.NewHub())

	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/token", authHandler.IssueToken)

		v1.GET("/technologies/:id", technologyHandler.Get)
		v1.POST("/technologies", middleware.AuthRequired(), technologyHandler.Register)
		v1.PATCH("/technologies/:id", middleware.AuthRequired(), technologyHandler.ModifyTerms)
		v1.POST("/technologies/:id/documents", middleware.AuthRequired(), technologyHandler.UploadDocument)
		v1.DELETE("/technologies/:id/documents", middleware.AuthRequired(), technologyHandler.DeleteDocument)

		v1.GET("/contracts/:id", contractHandler.Get)
		v1.POST("/contracts", middleware.AuthRequired(), contractHandler.Create)
		v1.DELETE("/contracts/:id", middleware.AuthRequired(), contractHandler.Revoke)
		v1.GET("/contracts/:id/access", middleware.OptionalAuth(), contractHandler.CheckAccess)

		v1.POST("/royalties", middleware.AuthRequired(), royaltyHandler.Process)
		v1.GET("/royalties/quote", royaltyHandler.Quote)
		v1.GET("/transactions/:id", royaltyHandler.GetTransaction)

		v1.GET("/events", eventsHandler.Recent)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/metrics", adminHandler.GetMetrics)
			admin.PUT("/commission", adminHandler.ConfigureCommission)
			admin.POST("/operational", adminHandler.ToggleOperational)
		}
	}
	suite.router = r
}

func (suite *HandlerTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	return response
}

func (suite *HandlerTestSuite) registerTechnology(fee, royalty uint64) uint64 {
	w := suite.request("POST", "/v1/technologies", suite.ownerToken, gin.H{
		"title":         "Quantum Error Correction Suite",
		"summary":       "Surface-code decoder",
		"licensing_fee": fee,
		"royalty_rate":  royalty,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	technology := data["technology"].(map[string]interface{})
	return uint64(technology["id"].(float64))
}

func (suite *HandlerTestSuite) createContract(technologyID, duration uint64) uint64 {
	w := suite.request("POST", "/v1/contracts", suite.licenseeToken, gin.H{
		"technology_id": technologyID,
		"duration":      duration,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	contract := data["contract"].(map[string]interface{})
	return uint64(contract["id"].(float64))
}

func (suite *HandlerTestSuite) errorNumber(w *httptest.ResponseRecorder) float64 {
	response := suite.decode(w)
	apiErr := response["error"].(map[string]interface{})
	return apiErr["number"].(float64)
}

func (suite *HandlerTestSuite) TestRegisterTechnology() {
	id := suite.registerTechnology(5000, 500)
	assert.Equal(suite.T(), uint64(1), id)

	w := suite.request("GET", "/v1/technologies/1", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	technology := data["technology"].(map[string]interface{})
	assert.Equal(suite.T(), ownerAddr, technology["owner"])
	assert.Equal(suite.T(), true, technology["available"])
}

func (suite *HandlerTestSuite) TestRegisterRequiresAuth() {
	w := suite.request("POST", "/v1/technologies", "", gin.H{
		"title": "Unauthenticated",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestRegisterInvalidRoyaltyRate() {
	w := suite.request("POST", "/v1/technologies", suite.ownerToken, gin.H{
		"title":         "Overpriced",
		"licensing_fee": 5000,
		"royalty_rate":  10001,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), float64(103), suite.errorNumber(w))
}

func (suite *HandlerTestSuite) TestModifyTermsByNonOwner() {
	suite.registerTechnology(5000, 500)

	w := suite.request("PATCH", "/v1/technologies/1", suite.strangerToken, gin.H{
		"licensing_fee": 1,
	})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), float64(100), suite.errorNumber(w))
}

func (suite *HandlerTestSuite) TestGetUnknownTechnology() {
	w := suite.request("GET", "/v1/technologies/42", "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateContractMovesPayment() {
	suite.registerTechnology(5000, 500)
	suite.createContract(1, 1000)

	assert.Equal(suite.T(), uint64(100_000_000-5000), suite.payments.Balance(licenseeAddr))
	assert.Equal(suite.T(), uint64(100_000_000+5000), suite.payments.Balance(ownerAddr))
}

func (suite *HandlerTestSuite) TestCreateContractInvalidDuration() {
	suite.registerTechnology(5000, 500)

	w := suite.request("POST", "/v1/contracts", suite.licenseeToken, gin.H{
		"technology_id": 1,
		"duration":      600000,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), float64(106), suite.errorNumber(w))
}

func (suite *HandlerTestSuite) TestCreateContractInsufficientFunds() {
	suite.registerTechnology(5000, 500)

	w := suite.request("POST", "/v1/contracts", suite.strangerToken, gin.H{
		"technology_id": 1,
		"duration":      1000,
	})
	assert.Equal(suite.T(), http.StatusPaymentRequired, w.Code)
	assert.Equal(suite.T(), float64(105), suite.errorNumber(w))
}

func (suite *HandlerTestSuite) TestAccessCheck() {
	suite.registerTechnology(5000, 500)
	suite.createContract(1, 1000)

	w := suite.request("GET", "/v1/contracts/1/access", suite.licenseeToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), true, data["granted"])

	// The licensor holds no usage rights under the contract.
	w = suite.request("GET", "/v1/contracts/1/access", suite.ownerToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data = suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), false, data["granted"])

	// The check is public: an explicit user parameter needs no token.
	w = suite.request("GET", "/v1/contracts/1/access?user="+licenseeAddr, "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data = suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), true, data["granted"])

	// Past the end block access lapses without any state change.
	suite.clock.block = 100 + 1000 + 1
	w = suite.request("GET", "/v1/contracts/1/access", suite.licenseeToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data = suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), false, data["granted"])
}

func (suite *HandlerTestSuite) TestRevokeContract() {
	suite.registerTechnology(5000, 500)
	suite.createContract(1, 1000)

	w := suite.request("DELETE", "/v1/contracts/1", suite.strangerToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("DELETE", "/v1/contracts/1", suite.ownerToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	contract := data["contract"].(map[string]interface{})
	assert.Equal(suite.T(), false, contract["active"])

	w = suite.request("DELETE", "/v1/contracts/1", suite.ownerToken, nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), float64(107), suite.errorNumber(w))
}

func (suite *HandlerTestSuite) TestProcessRoyalty() {
	suite.registerTechnology(5000, 500)
	suite.createContract(1, 1000)

	w := suite.request("POST", "/v1/royalties", suite.licenseeToken, gin.H{
		"contract_id": 1,
		"usage":       10000,
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	data := suite.decode(w)["data"].(map[string]interface{})
	transaction := data["transaction"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), transaction["id"])
	assert.Equal(suite.T(), float64(500), transaction["amount"])

	w = suite.request("GET", "/v1/transactions/1", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestProcessRoyaltyOnExpiredContract() {
	suite.registerTechnology(5000, 500)
	suite.createContract(1, 1000)

	suite.clock.block = 100 + 1000 + 1
	w := suite.request("POST", "/v1/royalties", suite.licenseeToken, gin.H{
		"contract_id": 1,
		"usage":       10000,
	})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), float64(104), suite.errorNumber(w))
}

func (suite *HandlerTestSuite) TestRoyaltyQuote() {
	suite.registerTechnology(5000, 500)
	suite.createContract(1, 1000)

	w := suite.request("GET", "/v1/royalties/quote?contract_id=1&usage=10000", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(500), data["amount"])
}

func (suite *HandlerTestSuite) TestAdminCommission() {
	w := suite.request("PUT", "/v1/admin/commission", suite.ownerToken, gin.H{"rate": 300})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("PUT", "/v1/admin/commission", suite.adminToken, gin.H{"rate": 1500})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("PUT", "/v1/admin/commission", suite.adminToken, gin.H{"rate": 300})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/admin/metrics", suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	metricsData := data["metrics"].(map[string]interface{})
	assert.Equal(suite.T(), float64(300), metricsData["commission_rate"])
}

func (suite *HandlerTestSuite) TestSuspensionGatesMutations() {
	w := suite.request("POST", "/v1/admin/operational", suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), false, data["operational"])

	w = suite.request("POST", "/v1/technologies", suite.ownerToken, gin.H{
		"title":         "Suspended Registration",
		"licensing_fee": 1000,
	})
	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
	assert.Equal(suite.T(), float64(108), suite.errorNumber(w))

	// Admin operations stay available while suspended.
	w = suite.request("POST", "/v1/admin/operational", suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestIssueToken() {
	w := suite.request("POST", "/v1/auth/token", "", gin.H{
		"principal": adminAddr,
		"api_key":   testAPIKey,
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.NotEmpty(suite.T(), data["token"])
	assert.Equal(suite.T(), true, data["admin"])

	w = suite.request("POST", "/v1/auth/token", "", gin.H{
		"principal": ownerAddr,
		"api_key":   "wrong-key",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestDocumentLifecycle() {
	suite.registerTechnology(5000, 500)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "whitepaper.pdf")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("surface-code decoder details"))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req, _ := http.NewRequest("POST", "/v1/technologies/1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.ownerToken)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	data := suite.decode(w)["data"].(map[string]interface{})
	document := data["document"].(map[string]interface{})
	key := document["key"].(string)
	assert.NotEmpty(suite.T(), key)

	deletePath := "/v1/technologies/1/documents?key=" + url.QueryEscape(key)
	w = suite.request("DELETE", deletePath, suite.strangerToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("DELETE", deletePath, suite.ownerToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data = suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), key, data["deleted"])
}

func (suite *HandlerTestSuite) TestEventsFeed() {
	suite.registerTechnology(5000, 500)

	w := suite.request("GET", "/v1/events", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(0), data["subscribers"])
	eventList := data["events"].([]interface{})
	suite.Require().Len(eventList, 1)

	first := eventList[0].(map[string]interface{})
	assert.Equal(suite.T(), "quantum-technology-registered", first["marketplace_event"])
}

func (suite *HandlerTestSuite) TestSequentialIDsAcrossResources() {
	for i := 0; i < 3; i++ {
		w := suite.request("POST", "/v1/technologies", suite.ownerToken, gin.H{
			"title":         fmt.Sprintf("Technology %d", i+1),
			"licensing_fee": 1000,
		})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := suite.request("GET", "/v1/technologies/3", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	w = suite.request("GET", "/v1/technologies/4", "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
