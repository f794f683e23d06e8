package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"cropwater/pkg/reference"
)

var appStart = time.Now()

type HealthCtrl struct {
	db     *gorm.DB
	tables *reference.Tables
}

func NewHealthCtrl(db *gorm.DB, t *reference.Tables) *HealthCtrl { return &HealthCtrl{db: db, tables: t} }

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := sub{OK: true}
	if h.db == nil {
		db = sub{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = sub{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = sub{Err: "ping: " + err.Error()}
	}

	ref := sub{OK: h.tables != nil}
	counts := map[string]int{}
	if h.tables != nil {
		counts["crops"] = len(h.tables.Crops)
		counts["soils"] = len(h.tables.Soils)
		ref.OK = counts["crops"] > 0 && counts["soils"] > 0
	}
	if !ref.OK {
		ref.Err = "reference tables not loaded"
	}

	allOK := db.OK && ref.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":  db,
			"reference": ref,
		},
		"reference": counts,
		"time":      time.Now().Format(time.RFC3339),
	})
}
