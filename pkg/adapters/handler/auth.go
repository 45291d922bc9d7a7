package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/wadjakorntonsri/linkvault/pkg/config"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	sessionTTL        = 24 * time.Hour
)

type AuthHandler struct {
	oauthConfig   *oauth2.Config
	profiles      ports.ProfileService
	jwtSecret     []byte
	frontendURL   string
	allowedEmails []string
	isProduction  bool
	userInfoURL   string
	log           *logging.Log
}

type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func NewAuthHandler(cfg *config.Config, profiles ports.ProfileService, log *logging.Log) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		profiles:      profiles,
		jwtSecret:     []byte(cfg.JWTSecret),
		frontendURL:   cfg.FrontendURL,
		allowedEmails: cfg.AllowedEmails,
		isProduction:  cfg.IsProduction(),
		userInfoURL:   googleUserInfoURL,
		log:           log.WithEntryName("AuthHandler"),
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := h.generateStateOauthCookie(w)
	url := h.oauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// Callback signs the Google user in, creating the account on first login.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequest(r.Context())

	oauthState, err := r.Cookie("oauthstate")
	if err != nil {
		log.WithErr(err).Warn("callback without oauthstate cookie")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}
	if r.FormValue("state") != oauthState.Value {
		log.Warn("callback with invalid oauth state")
		respondMessage(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.WithErr(err).Error("code exchange failed")
		respondMessage(w, http.StatusUnauthorized, "code exchange failed")
		return
	}

	response, err := h.oauthConfig.Client(r.Context(), token).Get(h.userInfoURL)
	if err != nil {
		log.WithErr(err).Error("failed getting user info")
		respondMessage(w, http.StatusBadGateway, "failed getting user info")
		return
	}
	defer response.Body.Close()

	var googleUser GoogleUser
	if err := json.NewDecoder(response.Body).Decode(&googleUser); err != nil {
		log.WithErr(err).Error("failed decoding user info")
		respondMessage(w, http.StatusBadGateway, "failed decoding user info")
		return
	}

	if !h.emailAllowed(googleUser.Email) {
		log.WithField("email", googleUser.Email).Warn("email not in allowlist")
		respondMessage(w, http.StatusForbidden, "access denied: your email is not in the allowlist")
		return
	}

	account, err := h.profiles.SignUp(r.Context(), googleUser.Email, googleUser.Name, googleUser.Picture)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	tokenString, expires, err := IssueToken(h.jwtSecret, account.ID, sessionTTL)
	if err != nil {
		log.WithErr(err).Error("failed signing JWT")
		respondMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.setSessionCookie(w, tokenString, expires)
	log.WithField("account_id", account.ID).Info("login successful")
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", time.Now().Add(-1*time.Hour))
	http.Redirect(w, r, h.frontendURL+"/login", http.StatusTemporaryRedirect)
}

func (h *AuthHandler) emailAllowed(email string) bool {
	if len(h.allowedEmails) == 0 {
		return true
	}
	for _, allowed := range h.allowedEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) generateStateOauthCookie(w http.ResponseWriter) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{
		Name:     "oauthstate",
		Value:    state,
		Expires:  time.Now().Add(20 * time.Minute),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return state
}
