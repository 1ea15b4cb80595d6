package controllers

import (
	"fmt"
	"net/http"
	"shiftplan/internal/services"
	"time"
)

type HealthController struct {
	status services.StatusServiceInterface
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	StorageMode   string  `json:"storage_mode"`
	Notice        string  `json:"notice,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := hc.status.Uptime()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		StorageMode:   hc.status.Mode().String(),
		Notice:        hc.status.Notice(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(status services.StatusServiceInterface) *HealthController {
	return &HealthController{status: status}
}
