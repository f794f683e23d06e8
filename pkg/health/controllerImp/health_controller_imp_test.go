package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"cropwater/database"
	"cropwater/pkg/reference"
)

func TestHealth(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		ctrl   *HealthCtrl
		status int
	}{
		{"healthy", NewHealthCtrl(db, reference.Defaults()), http.StatusOK},
		{"no tables", NewHealthCtrl(db, nil), http.StatusServiceUnavailable},
		{"no db", NewHealthCtrl(nil, reference.Defaults()), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
			if err := tt.ctrl.Health(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.status {
				t.Errorf("status %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
		})
	}

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	_ = NewHealthCtrl(db, reference.Defaults()).Health(c)
	if !strings.Contains(rec.Body.String(), `"crops":5`) {
		t.Errorf("body = %s", rec.Body)
	}
}
