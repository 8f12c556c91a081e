// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"
	"time"

	"github.com/ardanlabs/powledger/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log         *zap.SugaredLogger
	State       *state.State
	Evts        *events.Events
	MinerName   string
	MineTimeout time.Duration
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:         cfg.Log,
		State:       cfg.State,
		WS:          websocket.Upgrader{},
		Evts:        cfg.Evts,
		MinerName:   cfg.MinerName,
		MineTimeout: cfg.MineTimeout,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/chain", pbl.Chain)
	app.Handle(http.MethodGet, version, "/chain/validate", pbl.Validate)
	app.Handle(http.MethodGet, version, "/chain/:index", pbl.Block)
	app.Handle(http.MethodGet, version, "/balances", pbl.Balances)
	app.Handle(http.MethodGet, version, "/balances/:account", pbl.Balance)
	app.Handle(http.MethodGet, version, "/tx/pending", pbl.Pending)
	app.Handle(http.MethodGet, version, "/tx/proof/:index/:tx", pbl.Proof)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodPost, version, "/mine", pbl.Mine)
	app.Handle(http.MethodPost, version, "/attack", pbl.Attack)
}
