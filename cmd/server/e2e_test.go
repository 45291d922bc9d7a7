package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/linkvault/pkg/adapters/handler"
	"github.com/wadjakorntonsri/linkvault/pkg/app"
	"github.com/wadjakorntonsri/linkvault/pkg/config"
	"github.com/wadjakorntonsri/linkvault/pkg/core/domain"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
)

type apiClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	token  string
}

func (c *apiClient) do(method, path string, payload interface{}, out interface{}) int {
	c.t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(c.t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, c.server.URL+path, &body)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestIntegration(t *testing.T) {
	cfg := &config.Config{
		DatabaseURL:   "file:e2e?mode=memory&cache=shared",
		JWTSecret:     "e2e-secret",
		FrontendURL:   "http://localhost/dashboard",
		PlanLinkLimit: 3,
		Location:      time.UTC,
	}
	application, err := app.New(cfg, logging.Discard())
	require.NoError(t, err)
	defer application.Close()

	server := httptest.NewServer(application.Handler)
	defer server.Close()

	ctx := context.Background()
	alice, err := application.Profiles.SignUp(ctx, "alice@example.com", "Alice", "")
	require.NoError(t, err)
	require.Equal(t, "alice", alice.Handle)

	token, _, err := handler.IssueToken([]byte(cfg.JWTSecret), alice.ID, time.Hour)
	require.NoError(t, err)

	owner := &apiClient{t: t, server: server, client: server.Client(), token: token}
	visitor := &apiClient{t: t, server: server, client: server.Client()}

	// Create links
	var blog, shop domain.Link
	assert.Equal(t, http.StatusCreated, owner.do("POST", "/api/v1/links", map[string]string{"title": "Blog", "url": "alice.dev"}, &blog))
	assert.Equal(t, "https://alice.dev", blog.URL)
	assert.Equal(t, http.StatusCreated, owner.do("POST", "/api/v1/links", map[string]string{"title": "Shop", "url": "https://shop.example.com", "icon": "shopping"}, &shop))
	assert.Equal(t, http.StatusCreated, owner.do("POST", "/api/v1/links", map[string]string{"title": "Old", "url": "old.example.com"}, nil))
	assert.Equal(t, http.StatusPaymentRequired, owner.do("POST", "/api/v1/links", map[string]string{"title": "One more", "url": "x.example.com"}, nil))
	assert.Equal(t, http.StatusBadRequest, owner.do("POST", "/api/v1/links", map[string]string{"url": "x.example.com"}, nil))

	// Shop first, hide nothing
	var listed struct {
		Data  []domain.Link `json:"data"`
		Total int           `json:"total"`
	}
	require.Equal(t, http.StatusOK, owner.do("GET", "/api/v1/links", nil, &listed))
	require.Equal(t, 3, listed.Total)
	order := []string{shop.ID, blog.ID, listed.Data[2].ID}
	assert.Equal(t, http.StatusOK, owner.do("PUT", "/api/v1/links/order", map[string][]string{"link_ids": order}, nil))
	assert.Equal(t, http.StatusOK, owner.do("PUT", "/api/v1/links/"+order[2]+"/active", map[string]bool{"active": false}, nil))

	// Visitor view
	var profile domain.PublicProfile
	require.Equal(t, http.StatusOK, visitor.do("GET", "/api/v1/public/profiles/alice", nil, &profile))
	assert.Equal(t, "Alice", profile.Account.DisplayName)
	require.Len(t, profile.Links, 2)
	assert.Equal(t, "Shop", profile.Links[0].Title)
	assert.Equal(t, domain.IconShopping, profile.Links[0].Icon)
	assert.Equal(t, "Blog", profile.Links[1].Title)
	assert.Equal(t, http.StatusNotFound, visitor.do("GET", "/api/v1/public/profiles/nobody", nil, nil))

	// Clicks
	click := map[string]string{"link_id": shop.ID, "account_id": alice.ID}
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, visitor.do("POST", "/api/v1/public/clicks", click, nil))
	}
	assert.Equal(t, http.StatusNotFound, visitor.do("POST", "/api/v1/public/clicks", map[string]string{"link_id": "missing", "account_id": alice.ID}, nil))

	noFollow := server.Client()
	noFollow.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := noFollow.Get(server.URL + "/go/" + blog.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://alice.dev", resp.Header.Get("Location"))
	application.Clicks.Wait()

	// Analytics
	var report domain.AnalyticsReport
	require.Equal(t, http.StatusOK, owner.do("GET", "/api/v1/analytics?days=7", nil, &report))
	assert.Equal(t, 7, report.WindowDays)
	assert.EqualValues(t, 4, report.TotalClicks)
	assert.EqualValues(t, 4, report.ClicksToday)
	require.Len(t, report.Links, 3)
	assert.Equal(t, shop.ID, report.Links[0].LinkID)
	assert.EqualValues(t, 3, report.Links[0].TotalClicks)
	assert.EqualValues(t, 1, report.Links[1].TotalClicks)

	var stats domain.LinkStats
	require.Equal(t, http.StatusOK, owner.do("GET", "/api/v1/links/"+shop.ID+"/stats", nil, &stats))
	assert.EqualValues(t, 3, stats.TotalClicks)
	assert.EqualValues(t, 3, stats.Referrers["Direct"])

	// Cached counter follows the log
	require.Equal(t, http.StatusOK, owner.do("GET", "/api/v1/links", nil, &listed))
	assert.EqualValues(t, 3, listed.Data[0].Clicks)

	// Going private hides the page
	assert.Equal(t, http.StatusOK, owner.do("PUT", "/api/v1/me", map[string]bool{"is_public": false}, nil))
	assert.Equal(t, http.StatusNotFound, visitor.do("GET", "/api/v1/public/profiles/alice", nil, nil))

	// Deleting keeps history
	assert.Equal(t, http.StatusNoContent, owner.do("DELETE", "/api/v1/links/"+shop.ID, nil, nil))
	dump, err := application.Repo.DumpLinks(ctx)
	require.NoError(t, err)
	assert.Len(t, dump, 2)
	assert.Equal(t, http.StatusNotFound, owner.do("GET", "/api/v1/links/"+shop.ID+"/stats", nil, nil))

	// Premium theme needs an upgrade
	assert.Equal(t, http.StatusPaymentRequired, owner.do("PUT", "/api/v1/me/theme", map[string]string{"theme": "neon"}, nil))
	assert.Equal(t, http.StatusServiceUnavailable, owner.do("POST", "/api/v1/suggestions", map[string]string{"prompt": "my socials"}, nil))
}
