package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	repo "github.com/rogerio-castellano/catalog-sync/internal/repo"
)

// ToggleVariantAvailabilityHandler godoc
// @Summary Flip a variant's availability flag
// @Tags variants
// @Produce json
// @Param id path int true "Variant ID"
// @Success 200 {object} VariantResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /variants/{id}/toggle-availability [put]
func ToggleVariantAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid variant ID", http.StatusBadRequest)
		return
	}

	variant, err := productRepo.ToggleVariantAvailability(id)
	if err != nil {
		if errors.Is(err, repo.ErrVariantNotFound) {
			http.Error(w, "variant not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not toggle variant availability", http.StatusInternalServerError)
		return
	}
	if err := writeJSON(w, http.StatusOK, toVariantResponse(variant)); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// SyncStatusHandler godoc
// @Summary Report the outcome of the latest feed sync run
// @Tags sync
// @Produce json
// @Success 200 {object} SyncStatusResult
// @Failure 500 {string} string "Internal error"
// @Router /sync/status [get]
func SyncStatusHandler(w http.ResponseWriter, r *http.Request) {
	result := SyncStatusResult{}
	if redisService != nil {
		lastRun, err := redisService.LastRun()
		if err != nil {
			http.Error(w, "could not read sync status", http.StatusInternalServerError)
			return
		}
		result.Status = lastRun["status"]
		result.At = lastRun["at"]
	}
	if err := writeJSON(w, http.StatusOK, result); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
