package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

type ProfileHandler struct {
	profiles    ports.ProfileService
	suggestions ports.SuggestionService
	log         *logging.Log
}

func NewProfileHandler(profiles ports.ProfileService, suggestions ports.SuggestionService, log *logging.Log) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, suggestions: suggestions, log: log.WithEntryName("ProfileHandler")}
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	Handle      *string `json:"handle" validate:"omitempty,max=30"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,max=2048"`
	IsPublic    *bool   `json:"is_public"`
}

type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

type SuggestRequest struct {
	Prompt string `json:"prompt" validate:"required,max=1000"`
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.profiles.GetAccount(r.Context(), AccountID(r.Context()))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	account, err := h.profiles.UpdateProfile(r.Context(), AccountID(r.Context()), domain.ProfileUpdate{
		DisplayName: req.DisplayName,
		Handle:      req.Handle,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (h *ProfileHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req SetThemeRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	account, err := h.profiles.SetTheme(r.Context(), AccountID(r.Context()), domain.Theme(req.Theme))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// Suggest returns link drafts for the owner to review before saving.
func (h *ProfileHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	drafts, err := h.suggestions.Suggest(r.Context(), AccountID(r.Context()), req.Prompt)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]CreateLinkRequest, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, CreateLinkRequest{Title: d.Title, URL: d.URL, Description: d.Description, Icon: d.Icon})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": out})
}
