package cli

import (
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Kormazd/DevWeb/internal/api"
	"github.com/Kormazd/DevWeb/internal/auth"
	"github.com/Kormazd/DevWeb/internal/config"
	fileinfra "github.com/Kormazd/DevWeb/internal/infra/file"
	redisinfra "github.com/Kormazd/DevWeb/internal/infra/redis"
	"github.com/Kormazd/DevWeb/internal/questions"
	"github.com/Kormazd/DevWeb/internal/store"
)

const defaultBaseURL = "http://localhost:5001"

// runtime wires the client stack for one command invocation: durable KV,
// session store, auth manager, gateway, and question cache.
type runtime struct {
	cfg      config.Config
	log      *zap.Logger
	nav      *consoleNavigator
	kv       store.KV
	sessions *store.SessionStore
	auth     *auth.Manager
	client   *api.Client
	cache    *questions.Cache
}

// consoleNavigator stands in for screen routing: admin-gated commands mark
// themselves active so a forced logout surfaces a redirect message, anything
// else clears the credential silently.
type consoleNavigator struct {
	admin bool
}

func (n *consoleNavigator) OnAdminScreen() bool {
	return n.admin
}

func (n *consoleNavigator) RedirectToLogin(reason string) {
	fmt.Printf("Signed out (%s). Run 'quizctl login' to authenticate again.\n", reason)
}

func newRuntime(adminScreen bool) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := zap.NewNop()
	if verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	finalURL := baseURL
	if finalURL == "" {
		finalURL = cfg.API.BaseURL
	}
	if finalURL == "" {
		finalURL = defaultBaseURL
	}

	var kv store.KV
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv = redisinfra.NewKV(client, "quizclient", config.Duration(cfg.Redis.TTL, 0))
	} else {
		path := statePath
		if path == "" {
			path = cfg.Storage.Path
		}
		if path == "" {
			path = ".quiz-state.json"
		}
		kv = fileinfra.NewKV(path)
	}

	nav := &consoleNavigator{admin: adminScreen}
	manager := auth.NewManager(kv, nav, auth.WithLogger(log))
	client := api.New(finalURL,
		api.WithTokenSource(manager),
		api.WithObserver(manager),
		api.WithLogger(log),
		api.WithTimeout(config.Duration(cfg.API.Timeout, 15*time.Second)),
	)
	manager.Bind(client)

	return &runtime{
		cfg:      cfg,
		log:      log,
		nav:      nav,
		kv:       kv,
		sessions: store.NewSessionStore(kv),
		auth:     manager,
		client:   client,
		cache:    questions.NewCache(client, config.Duration(cfg.Quiz.CacheTTL, 10*time.Minute)),
	}, nil
}

func (rt *runtime) close() {
	_ = rt.log.Sync()
}
