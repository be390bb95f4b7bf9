package main

import (
	"fmt"

	"github.com/dom/matchcore/internal/aggregator"
	"github.com/dom/matchcore/internal/config"
	"github.com/dom/matchcore/internal/dispatch"
	"github.com/dom/matchcore/internal/dispatch/inprocess"
	"github.com/dom/matchcore/internal/dispatch/redisqueue"
	"github.com/dom/matchcore/internal/logging"
	"github.com/dom/matchcore/internal/orchestrator"
	"github.com/dom/matchcore/internal/repository"
	"github.com/dom/matchcore/internal/repository/postgres"
	"github.com/redis/go-redis/v9"
)

// app bundles the wired dependencies every subcommand needs.
type app struct {
	cfg  *config.Config
	repo repository.Repository
	orch *orchestrator.Orchestrator
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.Environment)

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	repo := postgres.NewRepo(db)

	var d dispatch.Dispatcher
	orch := orchestrator.New(repo, nil, cfg.DefaultPhaseTimeout, defaultSkillImportance())

	switch cfg.DispatchBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		d = redisqueue.New(client, "")
	default:
		d = inprocess.New(cfg.DispatchWorkers, orch.TaskHandler())
	}
	orch.Dispatcher = d

	return &app{cfg: cfg, repo: repo, orch: orch}, nil
}

// defaultSkillImportance returns no operator-supplied weighting. The skill
// vocabulary is open per run, so the orchestrator falls back to weighting
// every skill the run's participants actually reported equally; operators
// with domain-specific weights (e.g. some skills mattering more than
// others) can return a fixed map here instead.
func defaultSkillImportance() aggregator.SkillImportance {
	return aggregator.SkillImportance{}
}
