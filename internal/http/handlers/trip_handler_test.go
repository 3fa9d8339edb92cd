// README: Handler tests for error mapping and response shapes (stubbed services).
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"convoy/internal/http/handlers"
	"convoy/internal/modules/asset"
	"convoy/internal/modules/movement"
	"convoy/internal/modules/trip"
	"convoy/internal/types"
)

// stubTripService is a test double for handlers.TripService.
type stubTripService struct {
	createID      types.ID
	createErr     error
	transitionRes trip.TransitionResult
	transitionErr error
	trip          *trip.Trip
	getErr        error
	notesErr      error
}

func (s *stubTripService) Create(_ context.Context, _ trip.CreateCommand) (types.ID, error) {
	return s.createID, s.createErr
}

func (s *stubTripService) Transition(_ context.Context, _ trip.TransitionCommand) (trip.TransitionResult, error) {
	return s.transitionRes, s.transitionErr
}

func (s *stubTripService) Get(_ context.Context, _ types.ID) (*trip.Trip, error) {
	return s.trip, s.getErr
}

func (s *stubTripService) List(_ context.Context, _ trip.Status, _ int) ([]trip.Trip, error) {
	return nil, nil
}

func (s *stubTripService) UpdateNotes(_ context.Context, _ types.ID, _ string) error {
	return s.notesErr
}

// stubAssetService is a test double for handlers.AssetService.
type stubAssetService struct {
	createID      types.ID
	createErr     error
	transitionRes asset.TransitionResult
	transitionErr error
	movements     []movement.Record
	movementsErr  error
}

func (s *stubAssetService) Create(_ context.Context, _ asset.CreateCommand) (types.ID, error) {
	return s.createID, s.createErr
}

func (s *stubAssetService) Transition(_ context.Context, _ asset.TransitionCommand) (asset.TransitionResult, error) {
	return s.transitionRes, s.transitionErr
}

func (s *stubAssetService) Get(_ context.Context, _ types.ID) (*asset.Asset, error) {
	return nil, asset.ErrNotFound
}

func (s *stubAssetService) List(_ context.Context, _ asset.Status, _ types.ID, _ int) ([]asset.Asset, error) {
	return nil, nil
}

func (s *stubAssetService) Movements(_ context.Context, _ types.ID, _ int) ([]movement.Record, error) {
	return s.movements, s.movementsErr
}

func buildTripRouter(svc handlers.TripService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewTripHandler(svc)
	r.POST("/api/trips", h.Create)
	r.GET("/api/trips/:id", h.Get)
	r.POST("/api/trips/:id/transition", h.Transition)
	r.PATCH("/api/trips/:id/notes", h.UpdateNotes)
	return r
}

func buildAssetRouter(svc handlers.AssetService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewAssetHandler(svc)
	r.POST("/api/assets", h.Create)
	r.GET("/api/assets/:id", h.Get)
	r.POST("/api/assets/:id/transition", h.Transition)
	r.GET("/api/assets/:id/movements", h.Movements)
	return r
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTripTransitionSuccessPayload(t *testing.T) {
	r := buildTripRouter(&stubTripService{
		transitionRes: trip.TransitionResult{NewStatus: trip.StatusInTransit, AssetsUpdated: 3},
	})
	w := doRequest(r, http.MethodPost, "/api/trips/t1/transition", map[string]any{"status": "in_transit"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Success       bool   `json:"success"`
		Status        string `json:"status"`
		AssetsUpdated int    `json:"assets_updated"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Status != "in_transit" || resp.AssetsUpdated != 3 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTripTransitionErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid transition", trip.ErrInvalidTransition, http.StatusConflict},
		{"lost race", trip.ErrConflict, http.StatusConflict},
		{"not found", trip.ErrNotFound, http.StatusNotFound},
		{"bad request", trip.ErrBadRequest, http.StatusBadRequest},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := buildTripRouter(&stubTripService{transitionErr: tc.err})
			w := doRequest(r, http.MethodPost, "/api/trips/t1/transition", map[string]any{"status": "confirmed"})
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestTripTransitionStorageErrorHidesDetails(t *testing.T) {
	r := buildTripRouter(&stubTripService{transitionErr: errors.New("pq: relation trips does not exist")})
	w := doRequest(r, http.MethodPost, "/api/trips/t1/transition", map[string]any{"status": "confirmed"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("relation")) {
		t.Fatal("storage details leaked into the response body")
	}
}

func TestTripTransitionMissingStatus(t *testing.T) {
	r := buildTripRouter(&stubTripService{})
	w := doRequest(r, http.MethodPost, "/api/trips/t1/transition", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTripCreateResponse(t *testing.T) {
	r := buildTripRouter(&stubTripService{createID: "t-new"})
	w := doRequest(r, http.MethodPost, "/api/trips", map[string]any{
		"vehicle_id":    "v1",
		"origin_hub_id": "hub-cle",
		"stops":         []map[string]any{{"venue_id": "venue-sf", "stop_order": 1}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var resp struct {
		TripID string `json:"trip_id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TripID != "t-new" || resp.Status != "draft" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTripGetNotFound(t *testing.T) {
	r := buildTripRouter(&stubTripService{getErr: trip.ErrNotFound})
	w := doRequest(r, http.MethodGet, "/api/trips/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTripUpdateNotesNotFound(t *testing.T) {
	r := buildTripRouter(&stubTripService{notesErr: trip.ErrNotFound})
	w := doRequest(r, http.MethodPatch, "/api/trips/missing/notes", map[string]any{"notes": "x"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAssetTransitionErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid transition", asset.ErrInvalidTransition, http.StatusConflict},
		{"lost race", asset.ErrConflict, http.StatusConflict},
		{"not found", asset.ErrNotFound, http.StatusNotFound},
		{"bad reference", asset.ErrBadRequest, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := buildAssetRouter(&stubAssetService{transitionErr: tc.err})
			w := doRequest(r, http.MethodPost, "/api/assets/a1/transition", map[string]any{"status": "loaded"})
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestAssetCreateResponse(t *testing.T) {
	r := buildAssetRouter(&stubAssetService{createID: "a-new"})
	w := doRequest(r, http.MethodPost, "/api/assets", map[string]any{
		"name":   "Stage Truss A",
		"hub_id": "hub-cle",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var resp struct {
		AssetID string `json:"asset_id"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AssetID != "a-new" || resp.Status != "at_hub" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAssetMovementsNotFound(t *testing.T) {
	r := buildAssetRouter(&stubAssetService{movementsErr: asset.ErrNotFound})
	w := doRequest(r, http.MethodGet, "/api/assets/missing/movements", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
