package controllers

import (
	"errors"
	"net/http"
	"shiftplan/internal/models"
	"shiftplan/internal/providers"
	"shiftplan/internal/services"
	"shiftplan/internal/storage"

	json "github.com/goccy/go-json"
)

type ApiController struct {
	logger  providers.Logger
	service services.ScheduleServiceInterface
}

func NewApiController(logger providers.Logger, service services.ScheduleServiceInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
	}
}

type snapshotResponse struct {
	Success  bool             `json:"success"`
	Key      string           `json:"key"`
	Found    bool             `json:"found"`
	Snapshot *models.Snapshot `json:"snapshot"`
}

type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	services.SaveResult
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func isClientError(err error) bool {
	return errors.Is(err, services.ErrInvalidPeriod) || errors.Is(err, models.ErrInvalidSnapshot)
}

func (ac *ApiController) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s, found, err := ac.service.Load(r.Context(), month, year)
	if err != nil {
		if isClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ac.logger.Errorf(providers.TypeGet, "Load of %s failed: %s", models.SnapshotKey(month, year), err)
		writeError(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse{
		Success:  true,
		Key:      models.SnapshotKey(month, year),
		Found:    found,
		Snapshot: s,
	})
}

func (ac *ApiController) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var s models.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid snapshot JSON")
		return
	}

	res, err := ac.service.Save(r.Context(), month, year, &s)
	if err != nil {
		if isClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ac.logger.Errorf(providers.TypePost, "Save of %s failed: %s", models.SnapshotKey(month, year), err)
		writeError(w, http.StatusInternalServerError, "Schedule could not be saved")
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Success: true, Message: "Schedule saved successfully", SaveResult: res})
}

func (ac *ApiController) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ac.service.Delete(r.Context(), month, year); err != nil {
		if isClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ac.logger.Errorf(providers.TypePost, "Delete of %s failed: %s", models.SnapshotKey(month, year), err)
		writeError(w, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Schedule deleted successfully"})
}

func (ac *ApiController) GetHours(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hours, err := ac.service.Hours(r.Context(), month, year)
	if err != nil {
		ac.computeFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "hours": hours})
}

func (ac *ApiController) GetCoverage(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	coverage, err := ac.service.Coverage(r.Context(), month, year)
	if err != nil {
		ac.computeFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "coverage": coverage})
}

func (ac *ApiController) computeFailed(w http.ResponseWriter, err error) {
	if isClientError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ac.logger.Errorf(providers.TypeGet, "Schedule lookup failed: %s", err)
	writeError(w, http.StatusInternalServerError, "Failed to load schedule")
}

func (ac *ApiController) GetStorageInfo(w http.ResponseWriter, r *http.Request) {
	info, err := ac.service.Info(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Storage info failed: %s", err)
		writeError(w, http.StatusInternalServerError, "Failed to read storage info")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		storage.Info
	}{Success: true, Info: info})
}

func (ac *ApiController) ExportStorage(w http.ResponseWriter, r *http.Request) {
	export, err := ac.service.Export(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Storage export failed: %s", err)
		writeError(w, http.StatusInternalServerError, "Failed to export data")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="shiftplan-export.json"`)
	writeJSON(w, http.StatusOK, export)
}

func (ac *ApiController) ClearStorage(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.Clear(r.Context()); err != nil {
		ac.logger.Errorf(providers.TypePost, "Storage clear failed: %s", err)
		writeError(w, http.StatusInternalServerError, "Failed to clear data")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "All data cleared"})
}
