package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

// PublicHandler serves anonymous visitors: the profile page data and click recording.
type PublicHandler struct {
	public ports.PublicService
	clicks ports.ClickService
	log    *logging.Log
}

func NewPublicHandler(public ports.PublicService, clicks ports.ClickService, log *logging.Log) *PublicHandler {
	return &PublicHandler{public: public, clicks: clicks, log: log.WithEntryName("PublicHandler")}
}

type RecordClickRequest struct {
	LinkID    string `json:"link_id" validate:"required"`
	AccountID string `json:"account_id" validate:"required"`
}

func (h *PublicHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.public.GetPublicProfile(r.Context(), r.PathValue("handle"))
	if errors.Is(err, domain.ErrNotFound) {
		// Same body for private and unknown handles.
		respondMessage(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// RecordClick never reports store failures to the visitor; navigation must not wait on analytics.
func (h *PublicHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	var req RecordClickRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	_, err := h.clicks.RecordClick(r.Context(), req.LinkID, req.AccountID, clickMeta(r))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "link not found")
		return
	case err != nil:
		h.log.WithRequest(r.Context()).WithErr(err).WithField("link_id", req.LinkID).Error("failed to record click")
	}
	w.WriteHeader(http.StatusNoContent)
}

// Follow redirects to the link destination; the click is recorded in the background.
func (h *PublicHandler) Follow(w http.ResponseWriter, r *http.Request) {
	dest, err := h.clicks.Follow(r.Context(), r.PathValue("linkID"), clickMeta(r))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	http.Redirect(w, r, dest, http.StatusFound)
}

// clickMeta collects request metadata. Geo headers are expected from a trusted edge proxy.
func clickMeta(r *http.Request) domain.ClickMeta {
	return domain.ClickMeta{
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
		Country:   r.Header.Get("X-Geo-Country"),
		City:      r.Header.Get("X-Geo-City"),
	}
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}
