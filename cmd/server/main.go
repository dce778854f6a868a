// Command server runs the vendor compliance gateway: staged signups, document
// intake, model-scored compliance runs, and gated account creation behind one
// HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	accounthandler "vendorgate/internal/account/handler"
	accountservice "vendorgate/internal/account/service"
	"vendorgate/internal/account/store/pending"
	"vendorgate/internal/account/store/users"
	"vendorgate/internal/analysis/gemini"
	analysisservice "vendorgate/internal/analysis/service"
	audithandler "vendorgate/internal/audit/handler"
	auditservice "vendorgate/internal/audit/service"
	auditstore "vendorgate/internal/audit/store"
	"vendorgate/internal/audit/store/staged"
	"vendorgate/internal/blob"
	complianceservice "vendorgate/internal/compliance/service"
	documenthandler "vendorgate/internal/document/handler"
	documentservice "vendorgate/internal/document/service"
	"vendorgate/internal/document/store/permanent"
	"vendorgate/internal/document/store/temp"
	"vendorgate/internal/identity"
	"vendorgate/internal/jwttoken"
	"vendorgate/internal/platform/config"
	"vendorgate/internal/platform/httpserver"
	"vendorgate/internal/platform/logger"
	"vendorgate/internal/platform/metrics"
	"vendorgate/internal/platform/postgres"
	platformredis "vendorgate/internal/platform/redis"
	"vendorgate/internal/sweeper"
	httptransport "vendorgate/internal/transport/http"
)

func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	blobs, err := blob.NewFS(cfg.Blob.Dir)
	if err != nil {
		log.Error("blob storage unavailable", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Staging stores ride Redis when configured, memory otherwise. Durable
	// stores do the same with PostgreSQL so a bare checkout still runs.
	var (
		tempDocs      documentservice.TempStore   = temp.NewMemory()
		pendingStore  accountservice.PendingStore = pending.NewMemory()
		stagedReports auditservice.StagedStore    = staged.NewMemory()
	)
	if redisClient != nil {
		tempDocs = temp.NewRedis(redisClient.Client)
		pendingStore = pending.NewRedis(redisClient.Client)
		stagedReports = staged.NewRedis(redisClient.Client)
	}

	var (
		permanentDocs documentservice.PermanentStore = permanent.NewMemory()
		userStore     accountservice.UserStore       = users.NewMemory()
		reportStore   auditservice.ReportStore       = auditstore.NewMemory()
		identities    identity.Provider              = identity.NewMemory()
	)
	if db != nil {
		permanentDocs = permanent.NewPostgres(db)
		userStore = users.NewPostgres(db)
		reportStore = auditstore.NewPostgres(db)
		identities = identity.NewPostgres(db)
	}

	model := gemini.New(cfg.Model)

	analyzer, err := analysisservice.New(model,
		analysisservice.WithLogger(log),
		analysisservice.WithMetrics(m),
	)
	if err != nil {
		log.Error("analyzer init failed", "error", err)
		os.Exit(1)
	}

	intake, err := documentservice.New(blobs, tempDocs, permanentDocs, cfg.Staging.TTL,
		documentservice.WithLogger(log),
		documentservice.WithMetrics(m),
	)
	if err != nil {
		log.Error("intake init failed", "error", err)
		os.Exit(1)
	}

	compliance, err := complianceservice.New(intake, analyzer,
		complianceservice.WithLogger(log),
		complianceservice.WithMetrics(m),
	)
	if err != nil {
		log.Error("compliance init failed", "error", err)
		os.Exit(1)
	}

	auditor, err := auditservice.New(model, reportStore, stagedReports, cfg.Staging.TTL,
		auditservice.WithLogger(log),
	)
	if err != nil {
		log.Error("audit init failed", "error", err)
		os.Exit(1)
	}

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, "vendorgate", cfg.Auth.TokenTTL)

	gate, err := accountservice.New(
		pendingStore, userStore, identities, compliance, auditor, intake, jwtService,
		cfg.Staging.TTL,
		accountservice.WithLogger(log),
		accountservice.WithMetrics(m),
	)
	if err != nil {
		log.Error("gate init failed", "error", err)
		os.Exit(1)
	}

	sweep, err := sweeper.New(blobs, cfg.Staging.TTL, cfg.Staging.SweepInterval,
		sweeper.WithLogger(log),
	)
	if err != nil {
		log.Error("sweeper init failed", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Accounts:  accounthandler.New(gate, log),
		Documents: documenthandler.New(intake, log),
		Reports:   audithandler.New(auditor, log),
		Tokens:    jwttoken.NewJWTServiceAdapter(jwtService),
		Logger:    log,
		Metrics:   m,
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := sweep.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
