package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "cashflow/internal/errors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app_error", apperrors.ErrVersionConflict, http.StatusConflict, "VERSION_CONFLICT"},
		{"wrapped_app_error", apperrors.Wrap(apperrors.ErrStoreWrite, errors.New("disk full")), http.StatusInternalServerError, "STORE_WRITE_FAILURE"},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			errObj, _ := parseBody(t, rec)["error"].(map[string]interface{})
			if errObj["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", errObj["code"], tt.wantCode)
			}
		})
	}
}

func TestErrorHandler_RecordsCode(t *testing.T) {
	var recorded string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		recorded = c.GetString(errorCodeKey)
	})
	r.Use(ErrorHandler())
	r.PUT("/", func(c *gin.Context) { _ = c.Error(apperrors.ErrTransactionTypeInUse) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", http.NoBody))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if recorded != "TRANSACTION_TYPE_IN_USE" {
		t.Errorf("recorded code = %q, want TRANSACTION_TYPE_IN_USE", recorded)
	}
}

func TestRequestLogging(t *testing.T) {
	const clientID = "01890a5d-ac96-774b-bcce-b302099a8057"

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"assigns_id", "", false},
		{"keeps_valid_client_id", clientID, true},
		{"replaces_invalid_client_id", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := gin.New()
			r.Use(RequestLogging())
			r.GET("/", func(c *gin.Context) {
				seen = RequestID(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("header %q should match context id %q", got, seen)
			}
			if tt.keep && got != tt.header {
				t.Errorf("expected client id %q, got %q", tt.header, got)
			}
			if !tt.keep && got == tt.header {
				t.Errorf("expected a new id, got %q", got)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodOptions, "/", http.NoBody)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("expected allowed origin header, got %q", got)
	}
}
