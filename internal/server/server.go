// Package server boots the sheet endpoint: config, database, global lock,
// routes, then ListenAndServe.
package server

import (
	"net/http"

	"cofoodie/config"
	"cofoodie/internal/sheet"
	"cofoodie/internal/sheet/sheetdb"
	"cofoodie/pkg/database"
	"cofoodie/pkg/lock"
	"cofoodie/pkg/logger"
	"cofoodie/pkg/metrics"
	"cofoodie/pkg/middleware"
	"cofoodie/pkg/reqid"
	"cofoodie/pkg/router"
)

func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	lock.Connect()

	db, err := sheetdb.Open(database.DB)
	if err != nil {
		return err
	}

	r := NewRouter(sheet.NewHandler(db, lock.Global()))

	addr := ":" + config.AppPort()
	logger.Info("cofoodie sheet backend listening", "addr", addr, "env", config.AppEnv())
	return http.ListenAndServe(addr, r.Handler())
}

// NewRouter wires middleware and routes around the sheet handler. Split out
// of Start so `route:list` and tests can build the router without booting
// the database.
func NewRouter(h *sheet.Handler) *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	r.Get("/", "sheet.health", h.Health)
	r.Post("/api", "sheet.dispatch", h.Dispatch)
	r.Get("/metrics", "metrics", metrics.Handler())
	return r
}
