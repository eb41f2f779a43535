package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"profitdesk/internal/config"
	"profitdesk/internal/domain/entity"
	"profitdesk/internal/domain/service/items"
	"profitdesk/internal/domain/service/profit"
	"profitdesk/internal/domain/service/security"
	"profitdesk/internal/infrastructure/authcache"
	"profitdesk/internal/infrastructure/authproxy"
	"profitdesk/internal/infrastructure/notifier"
	"profitdesk/internal/infrastructure/persistence"
	"profitdesk/internal/infrastructure/rates"
	"profitdesk/internal/server"
	"profitdesk/internal/worker"
	"profitdesk/pkg/application/connectors"
	"profitdesk/pkg/application/modules"
	"profitdesk/pkg/contextx"
	"profitdesk/pkg/logx"
	"profitdesk/pkg/middlewarex"
)

const (
	appName    = "profitdesk"
	appVersion = "0.1.0"

	httpReadHeaderTimeout = 5 * time.Second
	logFieldMaxLen        = 4096
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip

func Run(ctx context.Context) error { //nolint:funlen
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rds := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rds.Client(ctx)
	defer rds.Close(ctx)

	itemRepo := persistence.NewItemRepository(db)
	settingsRepo := persistence.NewSettingsRepository(db)
	rateRepo := persistence.NewCommissionRateRepository(db)
	securityRepo := persistence.NewUserSecurityRepository(db)
	decisionLogRepo := persistence.NewDecisionLogRepository(db)

	if err = settingsRepo.Seed(ctx, entity.Settings{UpdatedAt: time.Now().UTC()}); err != nil {
		return fmt.Errorf("settingsRepo.Seed: %w", err)
	}

	engine := profit.NewEngine(rates.NewResolver(rateRepo)).
		WithVATRate(cfg.Engine.VATRate)

	itemService := items.NewService(itemRepo, settingsRepo, engine)

	adminClient := authproxy.NewAdminClient(cfg.Auth.URL, cfg.Auth.AnonKey, cfg.Auth.ServiceKey)
	securityService := security.NewService(securityRepo, adminClient)

	authenticator := server.NewAuthenticator(
		authproxy.NewClient(cfg.Auth.URL, cfg.Auth.AnonKey),
		authcache.New(redisClient, cfg.Auth.TokenCacheTTL),
		securityService,
	)

	srv := server.NewServer(
		server.NewItemServer(itemService, decisionLogRepo),
		server.NewSettingsServer(settingsRepo, rateRepo),
		server.NewSecurityServer(securityService),
		server.NewConfigServer(cfg.Auth.URL, cfg.Auth.AnonKey),
	)

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.Recovery,
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)
	srv.RegisterRoutes(router, authenticator)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}

	alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		return fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		//nolint:exhaustruct
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close()

	monitor := worker.NewMonitor(
		itemRepo,
		settingsRepo,
		decisionLogRepo,
		engine,
		worker.NewAsynqEnqueuer(asynqClient),
	).WithInterval(cfg.Monitor.Interval)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsListenAddress}.Run(ctx, g)
	modules.ProbeServer{
		Name:          appName,
		Version:       appVersion,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)
	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{"default": 1},
		modules.AsynqHandler{
			Pattern: worker.TypeNotifyDecisionChange,
			Handle:  worker.NewNotifyHandler(alertBot).Handle,
		},
	)

	g.Go(func() error {
		return monitor.Run(ctx)
	})

	logger(ctx).Info("application started")

	if err = g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
