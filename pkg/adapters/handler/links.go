package handler

import (
	"net/http"
	"strconv"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

type LinkHandler struct {
	links     ports.LinkService
	analytics ports.AnalyticsService
	log       *logging.Log
}

func NewLinkHandler(links ports.LinkService, analytics ports.AnalyticsService, log *logging.Log) *LinkHandler {
	return &LinkHandler{links: links, analytics: analytics, log: log.WithEntryName("LinkHandler")}
}

// CreateLinkRequest payload
type CreateLinkRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	URL         string `json:"url" validate:"required,max=2048"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=20"`
}

// UpdateLinkRequest payload; absent fields are left unchanged.
type UpdateLinkRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	URL         *string `json:"url" validate:"omitempty,max=2048"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Icon        *string `json:"icon" validate:"omitempty,max=20"`
	Active      *bool   `json:"active"`
	Order       *int    `json:"order"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type ReorderRequest struct {
	LinkIDs []string `json:"link_ids" validate:"required,dive,required"`
}

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.List(r.Context(), AccountID(r.Context()))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":  links,
		"total": len(links),
	})
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	link, err := h.links.Create(r.Context(), AccountID(r.Context()), domain.LinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, link)
}

func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateLinkRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	link, err := h.links.Update(r.Context(), AccountID(r.Context()), r.PathValue("id"), domain.LinkPatch{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
		Active:      req.Active,
		Order:       req.Order,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, link)
}

func (h *LinkHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req SetActiveRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	link, err := h.links.SetActive(r.Context(), AccountID(r.Context()), r.PathValue("id"), *req.Active)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, link)
}

func (h *LinkHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	links, err := h.links.Reorder(r.Context(), AccountID(r.Context()), req.LinkIDs)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"data": links})
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.links.Delete(r.Context(), AccountID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats for a single link
func (h *LinkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days, err := daysParam(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	stats, err := h.analytics.LinkStats(r.Context(), AccountID(r.Context()), r.PathValue("id"), days)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Dashboard is the per-account analytics report.
func (h *LinkHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	days, err := daysParam(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	report, err := h.analytics.Aggregate(r.Context(), AccountID(r.Context()), days)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// daysParam reads ?days=N; absent means the service default.
func daysParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, validationErr("days must be a positive integer")
	}
	return days, nil
}
