// Package app wires adapters and services into a runnable HTTP handler.
package app

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wadjakorntonsri/linkvault/pkg/adapters/handler"
	"github.com/wadjakorntonsri/linkvault/pkg/adapters/ratelimit"
	"github.com/wadjakorntonsri/linkvault/pkg/adapters/repository/sqldb"
	"github.com/wadjakorntonsri/linkvault/pkg/adapters/suggest"
	"github.com/wadjakorntonsri/linkvault/pkg/config"
	"github.com/wadjakorntonsri/linkvault/pkg/core/services"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

type App struct {
	Handler  http.Handler
	Repo     *sqldb.Repository
	Profiles *services.ProfileService
	Clicks   *services.ClickService

	redis *redis.Client
}

// New opens the store and builds the router. Redis and OpenAI are optional:
// without REDIS_URL public routes are not rate limited, without OPENAI_API_KEY
// suggestions answer 503.
func New(cfg *config.Config, log *logging.Log) (*App, error) {
	repo, err := sqldb.NewRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	a := &App{Repo: repo}

	var limiter ports.RateLimiter
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewClient(cfg.RedisURL)
		if err != nil {
			// Run without limits rather than refuse to start.
			log.WithErr(err).Warn("redis unavailable, rate limiting disabled")
		} else {
			a.redis = client
			limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimitPerMinute, time.Minute)
		}
	}

	var suggester ports.LinkSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = suggest.NewOpenAISuggester(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	} else {
		log.Info("OPENAI_API_KEY not set, link suggestions disabled")
	}

	a.Profiles = services.NewProfileService(repo, log)
	links := services.NewLinkService(repo, cfg.PlanLinkLimit, log)
	a.Clicks = services.NewClickService(repo, log)

	a.Handler = handler.NewRouter(cfg, handler.Services{
		Profiles:    a.Profiles,
		Links:       links,
		Clicks:      a.Clicks,
		Analytics:   services.NewAnalyticsService(repo, cfg.Location),
		Public:      services.NewPublicService(a.Profiles, links, log),
		Suggestions: services.NewSuggestionService(repo, suggester, log),
	}, limiter, log)

	return a, nil
}

// Close waits for background click writes, then releases connections.
func (a *App) Close() error {
	a.Clicks.Wait()
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return a.Repo.Close()
}
