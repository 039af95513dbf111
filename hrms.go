// Package hrms provides the task and employee management core behind the
// HR web application: filterable task search with canonical URL query
// encoding, a prefix-invalidated query cache, the task lifecycle, the
// employee verification pipeline, and saved filter presets.
//
// Basic usage:
//
//	client, err := hrms.New(
//	    hrms.WithSQLite(".hrms/hrms.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	f := filter.Parse("status=IN_PROGRESS&department=engineering")
//	page, err := client.Tasks.SearchTasks(ctx, f)
package hrms

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Kimutai-cloud/HRMS-sub002/application/service"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/persistence"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/querycache"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/config"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/database"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/log"
)

// Client is the main entry point for the hrms library.
//
// Access resources via struct fields:
//
//	client.Tasks.SearchTasks(ctx, f)
//	client.Comments.AddComment(ctx, taskID, author, body)
//	client.Presets.ListPresets(ctx)
type Client struct {
	Tasks      *service.TaskService
	Comments   *service.CommentService
	Employees  *service.EmployeeService
	Presets    *service.PresetService
	Dashboards *service.DashboardService

	db      database.Database
	cache   *querycache.Cache
	logger  *log.Logger
	cfg     config.AppConfig
	janitor context.CancelFunc
	closed  atomic.Bool
}

// New creates a Client with the given options. The cache janitor starts
// automatically and runs until Close.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	appCfg := cfg.app
	if err := appCfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("hrms: prepare data dir: %w", err)
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.NewLogger(appCfg)
	}

	db, err := database.NewDatabase(context.Background(), appCfg.DBURL())
	if err != nil {
		return nil, fmt.Errorf("hrms: open database: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("hrms: migrate: %w", err)
	}

	cache := querycache.New(querycache.WithTTL(appCfg.Cache().TTL()))
	janitorCtx, cancel := context.WithCancel(context.Background())
	go cache.Janitor(janitorCtx, appCfg.Cache().SweepInterval())

	services := service.NewServices(
		persistence.NewTaskStore(db),
		persistence.NewCommentStore(db),
		persistence.NewActivityStore(db),
		persistence.NewEmployeeStore(db),
		persistence.NewPresetStore(db),
		cache,
		logger,
	)

	return &Client{
		Tasks:      services.Tasks,
		Comments:   services.Comments,
		Employees:  services.Employees,
		Presets:    services.Presets,
		Dashboards: services.Dashboards,
		db:         db,
		cache:      cache,
		logger:     logger,
		cfg:        appCfg,
		janitor:    cancel,
	}, nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger.Slog()
}

// Config returns the effective configuration.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}

// Cache returns the shared query cache.
func (c *Client) Cache() *querycache.Cache {
	return c.cache
}

// Close stops the cache janitor and closes the database. Safe to call
// more than once.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.janitor()
	return c.db.Close()
}
