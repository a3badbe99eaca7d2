package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"buildings-server/models"
	"buildings-server/models/places"
	services "buildings-server/service"
	"buildings-server/util"
)

// BuildingsService is what the handler needs from the service layer.
type BuildingsService interface {
	Generate(ctx context.Context, req services.GenerateRequest) (*models.CachedArtifactPair, error)
	Preview(ctx context.Context, q models.Query) ([]places.BuildingRecord, models.ProjectedExtent, error)
}

type BuildingsHandler struct {
	buildingsService BuildingsService
	apiPrefix        string
}

func NewBuildingsHandler(buildingsService BuildingsService, apiPrefix string) *BuildingsHandler {
	return &BuildingsHandler{buildingsService: buildingsService, apiPrefix: apiPrefix}
}

// GetScene handles GET {prefix}/buildings.gltf
func (h *BuildingsHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	pair, ok := h.generate(w, r)
	if !ok {
		return
	}
	if !json.Valid(pair.SceneDocument) {
		writeError(w, errors.New("stashed scene document is not valid JSON"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pair.SceneDocument); err != nil {
		log.Println("[BuildingsHandler] Error writing scene:", err)
	}
}

// GetBuffer handles GET {prefix}/buildings.bin
func (h *BuildingsHandler) GetBuffer(w http.ResponseWriter, r *http.Request) {
	pair, ok := h.generate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", fmt.Sprint(len(pair.BinaryBuffer)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pair.BinaryBuffer); err != nil {
		log.Println("[BuildingsHandler] Error writing buffer:", err)
	}
}

// GetPreview handles GET {prefix}/buildings.html, a scatter plot of the
// deduplicated buildings of the query.
func (h *BuildingsHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	q, err := services.ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	records, extent, err := h.buildingsService.Preview(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.PlotBuildings(w, extent, records); err != nil {
		log.Println("[BuildingsHandler] Error rendering preview:", err)
	}
}

// Ping handles GET /ping
func (h *BuildingsHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "pong"})
}

func (h *BuildingsHandler) generate(w http.ResponseWriter, r *http.Request) (*models.CachedArtifactPair, bool) {
	q, err := services.ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	pair, err := h.buildingsService.Generate(r.Context(), services.GenerateRequest{
		Query:      q,
		RequestURI: strings.TrimPrefix(r.URL.RequestURI(), h.apiPrefix),
	})
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return pair, true
}

// writeError maps invalid queries to 400 and every other failure to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, services.ErrInvalidQuery) {
		status = http.StatusBadRequest
	} else {
		log.Println("[BuildingsHandler] Request failed:", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": services.Message(err)})
}
