package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cashflow/internal/events"
	"cashflow/internal/handlers"
	"cashflow/internal/logger"
	"cashflow/internal/middleware"
	"cashflow/internal/models"
	"cashflow/internal/services"
	"cashflow/internal/store/gormstore"
	"cashflow/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Token  string
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.TransactionType{}, &models.Transaction{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	broadcaster := events.NewBroadcaster()

	// Stores
	transactionStore := gormstore.New[models.Transaction](db, models.CollectionTransactions, broadcaster, broadcaster)
	typeStore := gormstore.New[models.TransactionType](db, models.CollectionTransactionTypes, broadcaster, broadcaster)

	// Services
	transactionService := services.NewTransactionService(transactionStore, typeStore)
	typeService := services.NewTransactionTypeService(typeStore, transactionStore)
	reconciliationService := services.NewReconciliationService(transactionStore, typeStore, services.ReconciliationOptions{})
	summaryService := services.NewSummaryService(transactionStore)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())
	handlers.RegisterRoutes(v1, handlers.Handlers{
		Transactions:     handlers.NewTransactionHandler(transactionService, reconciliationService),
		TransactionTypes: handlers.NewTransactionTypeHandler(typeService),
		Summary:          handlers.NewSummaryHandler(summaryService),
	})

	token, err := middleware.GenerateAccessToken("integration-user")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	return &testApp{DB: db, Router: router, Token: token}
}

// request makes an authenticated HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if app.Token != "" {
		req.Header.Set("Authorization", "Bearer "+app.Token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createType creates a transaction type and returns its ID.
func (app *testApp) createType(t *testing.T, name string, category models.Direction) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/transaction-types", fmt.Sprintf(`{"name":%q,"category":%q}`, name, category))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create type failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["transaction_type"].(map[string]interface{})["id"].(string)
}

// transactions returns the "transactions" array of a response.
func transactions(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	raw := parseJSON(t, rec)["transactions"].([]interface{})
	out := make([]map[string]interface{}, len(raw))
	for i, r := range raw {
		out[i] = r.(map[string]interface{})
	}
	return out
}
