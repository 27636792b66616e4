package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/repository"
	"github.com/rpconseil/dossiers_end/service"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

var (
	store      service.Store
	snapshots  *service.SnapshotService
	thresholds = analytics.DefaultThresholds()

	// dbStatus is swapped in tests.
	dbStatus = repository.GetDatabaseStatus
)

// Configure wires the handlers to their data store, snapshot cache and
// billing thresholds. It must run before the router serves requests.
func Configure(s service.Store, snap *service.SnapshotService, th analytics.Thresholds) {
	store = s
	snapshots = snap
	thresholds = th
}

// loadSnapshot returns the current snapshot, writing the error response
// itself when loading fails.
func loadSnapshot(c *gin.Context) (*service.Snapshot, bool) {
	snap, err := snapshots.Load(c.Request.Context())
	if err != nil {
		utils.HandleError(c, utils.NewAppError("données indisponibles", http.StatusServiceUnavailable, err))
		return nil, false
	}
	return snap, true
}

// afterWrite drops the cached snapshot so the next read sees the change.
func afterWrite() {
	if snapshots != nil {
		snapshots.Invalidate()
	}
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.CreateBadRequestError("paramètre " + name + " invalide")
	}
	return v, nil
}

// queryOptionalInt returns nil when the parameter is absent.
func queryOptionalInt(c *gin.Context, name string) (*int, error) {
	if strings.TrimSpace(c.Query(name)) == "" {
		return nil, nil
	}
	v, err := queryInt(c, name, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// queryOptionalFloat returns nil when the parameter is absent. Decimal
// commas are accepted.
func queryOptionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return nil, utils.CreateBadRequestError("paramètre " + name + " invalide")
	}
	return &v, nil
}
