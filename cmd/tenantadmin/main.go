// Command tenantadmin serves the multi-tenant administration API.
//
// Usage:
//
//	JWT_SECRET=... ADMIN_PASSWORD=... tenantadmin
//
// Without DATABASE_URL the store lives in memory and is lost on exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/persistorai/tenantadmin/internal/api"
	"github.com/persistorai/tenantadmin/internal/auth"
	"github.com/persistorai/tenantadmin/internal/config"
	"github.com/persistorai/tenantadmin/internal/crypto"
	"github.com/persistorai/tenantadmin/internal/db"
	"github.com/persistorai/tenantadmin/internal/db/migrations"
	"github.com/persistorai/tenantadmin/internal/dbpool"
	"github.com/persistorai/tenantadmin/internal/seed"
	"github.com/persistorai/tenantadmin/internal/security"
	"github.com/persistorai/tenantadmin/internal/service"
	"github.com/persistorai/tenantadmin/internal/store"
	"github.com/persistorai/tenantadmin/internal/store/pgdoc"
	"github.com/persistorai/tenantadmin/internal/ws"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	if err := run(log); err != nil {
		log.WithError(err).Fatal("tenantadmin exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, persister, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	st := store.New(log, persister)
	if err := st.Load(ctx); err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	if cfg.SeedDemo {
		if err := seed.Load(ctx, st, time.Now(), log); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret.Value(), cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token issuer: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword.Value())
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := service.AdminAccount{
		ID:           "1",
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         "System Admin",
	}

	hub := ws.NewHub(log, ws.Limits{})
	auditWorker := service.NewAuditWorker(st.Audit, hub, log, cfg.AuditQueueSize)
	access := service.NewAccessService(st, auditWorker, hub, log)
	guard := security.NewLoginGuard(ctx, log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:           log,
		Pool:          pool,
		Hub:           hub,
		Tokens:        issuer,
		Tenants:       access,
		Organizations: access,
		Users:         access,
		Roles:         access,
		Privileges:    access,
		LegalEntities: access,
		Audit:         service.NewAuditService(st.Audit, log),
		Bulk:          service.NewBulkService(access, log),
		Reports:       service.NewReportService(st),
		Auth:          service.NewAuthService(admin, cfg.DefaultTenantID, access, issuer, guard, auditWorker, log),
		CORSOrigins:   cfg.CORSOrigins,
		Version:       config.Version,
		ImportTimeout: cfg.ImportTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ImportTimeout,
		WriteTimeout:      cfg.ImportTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	// The worker outlives gctx so entries from requests still in flight
	// during shutdown are drained.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	g.Go(func() error {
		auditWorker.Run(workerCtx)
		return nil
	})

	g.Go(func() error { return serve(srv, log, "api") })
	g.Go(func() error { return serve(metricsSrv, log, "metrics") })

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		hub.Shutdown()

		return shutdown(stopWorker, srv, metricsSrv)
	})

	log.WithFields(logrus.Fields{
		"addr":       cfg.Addr(),
		"metrics":    cfg.MetricsAddr(),
		"version":    config.Version,
		"persistent": cfg.Persistent(),
	}).Info("tenantadmin started")

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("stopped")

	return nil
}

// openDatabase connects and migrates when DATABASE_URL is set. Both return
// values are nil otherwise.
func openDatabase(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*dbpool.Pool, store.Persister, error) {
	if !cfg.Persistent() {
		log.Warn("DATABASE_URL not set; data is kept in memory only")
		return nil, nil, nil
	}

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), dbpool.Options{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := prometheus.Register(dbpool.NewCollector(pool)); err != nil {
		log.WithError(err).Warn("pool metrics not registered")
	}

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	sealer, err := newSealer(cfg)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	var opts []pgdoc.Option
	if sealer != nil {
		log.WithField("provider", cfg.EncryptionProvider).Info("documents encrypted at rest")
		opts = append(opts, pgdoc.WithSealer(sealer))
	}

	return pool, pgdoc.New(pool, log, opts...), nil
}

// newSealer returns nil when ENCRYPTION_PROVIDER is none.
func newSealer(cfg *config.Config) (*crypto.Service, error) {
	switch cfg.EncryptionProvider {
	case "static":
		provider, err := crypto.NewStaticProvider(cfg.EncryptionKey.Value())
		if err != nil {
			return nil, fmt.Errorf("creating static key provider: %w", err)
		}

		return crypto.NewService(provider), nil
	case "vault":
		return crypto.NewService(crypto.NewVaultProvider(cfg.VaultAddr, cfg.VaultToken)), nil
	default:
		return nil, nil
	}
}

// shutdown stops the servers, waiting for active requests, and only then
// calls stopWorker.
func shutdown(stopWorker context.CancelFunc, servers ...*http.Server) error {
	defer stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make([]error, 0, len(servers))
	for _, srv := range servers {
		errs = append(errs, srv.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

func serve(srv *http.Server, log *logrus.Logger, name string) error {
	log.WithField("addr", srv.Addr).Infof("%s server listening", name)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}

	return nil
}
