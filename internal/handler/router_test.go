package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"signalx/internal/broadcast"
	"signalx/internal/config"
	"signalx/internal/db"
	gormrepository "signalx/internal/repository/gorm"
	"signalx/internal/service"
)

// newTestRouter wires the full stack against a throwaway sqlite file, the
// same shape main assembles in production.
func newTestRouter(t *testing.T) (*gin.Engine, *broadcast.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open(config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 2,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := gormrepository.New(conn.Gorm)
	hub := broadcast.NewHub(nil)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(CORSMiddleware())

	(&HealthHandler{DB: conn.Gorm}).Register(engine)
	(&SignalHandler{Service: &service.SignalService{Repo: store, Publisher: hub}}).Register(engine)
	(&StrategyHandler{Service: &service.StrategyService{Repo: store}}).Register(engine)
	(&StatsHandler{Service: &service.StatsService{Repo: store, ActiveUsers: 8542}}).Register(engine)
	(&StreamHandler{Hub: hub}).Register(engine)

	return engine, hub
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status=%d want %d body=%s", rec.Code, want, rec.Body.String())
	}
}
