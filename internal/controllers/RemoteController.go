package controllers

import (
	"net/http"
	"shiftplan/internal/models"
	"shiftplan/internal/providers"
	"shiftplan/internal/remote"

	json "github.com/goccy/go-json"
)

// RemoteController serves /api/schedule, the server-side key/value path
// that lives apart from the storage wrapper.
type RemoteController struct {
	logger providers.Logger
	store  remote.Store
}

func NewRemoteController(logger providers.Logger, store remote.Store) *RemoteController {
	return &RemoteController{logger: logger, store: store}
}

type remoteSaveRequest struct {
	Month *int            `json:"month"`
	Year  *int            `json:"year"`
	Data  json.RawMessage `json:"data"`
}

type remoteResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Key     string          `json:"key,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (rc *RemoteController) Save(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req remoteSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Month == nil || req.Year == nil || len(req.Data) == 0 || string(req.Data) == "null" {
		writeError(w, http.StatusBadRequest, "Missing required fields: month, year, data")
		return
	}

	key := models.RemoteKey(*req.Month, *req.Year)
	if err := rc.store.Put(r.Context(), key, string(req.Data)); err != nil {
		rc.logger.Errorf(providers.TypePost, "Error saving schedule %s: %s", key, err)
		writeError(w, http.StatusInternalServerError, "Failed to save schedule")
		return
	}
	rc.logger.Infof(providers.TypePost, "Schedule saved: %s", key)
	writeJSON(w, http.StatusOK, remoteResponse{Success: true, Message: "Schedule saved successfully", Key: key})
}

func (rc *RemoteController) Load(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := models.RemoteKey(month, year)
	value, found, err := rc.store.Get(r.Context(), key)
	if err != nil {
		rc.logger.Errorf(providers.TypeGet, "Error loading schedule %s: %s", key, err)
		writeError(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, remoteResponse{Success: false, Message: "No data found for this month/year", Data: json.RawMessage("null")})
		return
	}
	writeJSON(w, http.StatusOK, remoteResponse{Success: true, Message: "Schedule loaded successfully", Data: json.RawMessage(value)})
}

func (rc *RemoteController) Delete(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := models.RemoteKey(month, year)
	if err := rc.store.Delete(r.Context(), key); err != nil {
		rc.logger.Errorf(providers.TypePost, "Error deleting schedule %s: %s", key, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}
	writeJSON(w, http.StatusOK, remoteResponse{Success: true, Message: "Schedule deleted successfully"})
}
