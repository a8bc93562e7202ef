package internal

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/goverland-labs/goverland-platform-events/pkg/natsclient"
	"github.com/nats-io/nats.go"
	"github.com/s-larionov/process-manager"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/goverland-labs/goverland-grant-updates/internal/config"
	"github.com/goverland-labs/goverland-grant-updates/internal/metrics"
	"github.com/goverland-labs/goverland-grant-updates/internal/proposal"
	"github.com/goverland-labs/goverland-grant-updates/internal/survey"
	"github.com/goverland-labs/goverland-grant-updates/internal/update"
	"github.com/goverland-labs/goverland-grant-updates/internal/vesting"
	"github.com/goverland-labs/goverland-grant-updates/pkg/health"
	"github.com/goverland-labs/goverland-grant-updates/pkg/httpsrv"
	"github.com/goverland-labs/goverland-grant-updates/pkg/prometheus"
	"github.com/goverland-labs/goverland-grant-updates/pkg/sdk/vestings"
)

type Application struct {
	sigChan <-chan os.Signal
	manager *process.Manager
	cfg     config.App
	db      *gorm.DB
	nc      *nats.Conn
	pb      *natsclient.Publisher

	updates *update.Service
	surveys *survey.Service
}

func NewApplication(cfg config.App) (*Application, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a := &Application{
		sigChan: sigChan,
		cfg:     cfg,
		manager: process.NewManager(),
	}

	err := a.bootstrap()
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Application) Run() {
	a.manager.StartAll()
	a.registerShutdown()
}

func (a *Application) bootstrap() error {
	initializers := []func() error{
		a.initDB,
		a.initNats,

		// Init Dependencies
		a.initUpdates,
		a.initSurveys,

		// Init Workers: Application
		a.initAPI,
		a.initMissedWorker,
		a.initConsumer,

		// Init Workers: System
		a.initPrometheusWorker,
		a.initHealthWorker,
	}

	for _, initializer := range initializers {
		if err := initializer(); err != nil {
			return err
		}
	}

	return nil
}

func (a *Application) initDB() error {
	db, err := gorm.Open(postgres.Open(a.cfg.DB.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	ps, err := db.DB()
	if err != nil {
		return err
	}
	ps.SetMaxOpenConns(a.cfg.DB.MaxOpenConnections)

	a.db = db
	if a.cfg.DB.Debug {
		a.db = db.Debug()
	}

	return err
}

func (a *Application) initNats() error {
	nc, err := nats.Connect(
		a.cfg.Nats.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(a.cfg.Nats.MaxReconnects),
		nats.ReconnectWait(a.cfg.Nats.ReconnectTimeout),
	)
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}

	pb, err := natsclient.NewPublisher(nc)
	if err != nil {
		return fmt.Errorf("nats publisher: %w", err)
	}

	a.nc = nc
	a.pb = pb

	return nil
}

func (a *Application) initUpdates() error {
	policy, err := update.ParseNextPolicy(a.cfg.Updates.NextPolicy)
	if err != nil {
		return err
	}

	api := vestings.NewClient(a.cfg.Vestings.QueryEndpoint, &http.Client{
		Transport: metrics.NewRequestWatcher("vestings"),
	})

	a.updates = update.NewService(
		update.NewRepo(a.db),
		update.NewLifecycle(a.cfg.Updates.LateThreshold, policy),
		proposal.NewService(proposal.NewRepo(a.db)),
		vesting.NewService(api),
		a.pb,
	)

	return nil
}

func (a *Application) initSurveys() error {
	repo := survey.NewRepo(a.db)
	cache := survey.NewTopicCache(repo, a.cfg.Updates.TopicCacheTTL)
	a.surveys = survey.NewService(repo, survey.NewCodec(cache))

	return nil
}

func (a *Application) initAPI() error {
	router := mux.NewRouter()
	router.Use(httpsrv.MetricsMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	update.NewServer(a.updates).Register(api)
	survey.NewServer(a.surveys).Register(api)

	srv := httpsrv.NewServer(httpsrv.Config{
		Listen:       a.cfg.API.Listen,
		ReadTimeout:  a.cfg.API.ReadTimeout,
		WriteTimeout: a.cfg.API.WriteTimeout,
	}, router)
	a.manager.AddWorker(process.NewServerWorker("API", srv))

	return nil
}

func (a *Application) initMissedWorker() error {
	w := update.NewMissedWorker(a.updates, a.cfg.Updates.MissedCheckInterval)
	a.manager.AddWorker(process.NewCallbackWorker("missed-updates", w.Start))

	return nil
}

func (a *Application) initConsumer() error {
	c := update.NewConsumer(a.nc, a.updates, a.cfg.Nats.ConsumerGroup)
	a.manager.AddWorker(process.NewCallbackWorker("grant-enacted-consumer", c.Start))

	return nil
}

func (a *Application) initPrometheusWorker() error {
	srv := prometheus.NewServer(a.cfg.Prometheus.Listen, "/metrics")
	a.manager.AddWorker(process.NewServerWorker("prometheus", srv))

	return nil
}

func (a *Application) initHealthWorker() error {
	ps, err := a.db.DB()
	if err != nil {
		return err
	}

	srv := health.NewHealthCheckServer(a.cfg.Health.Listen, "/status", health.DefaultHandler(ps))
	a.manager.AddWorker(process.NewServerWorker("health", srv))

	return nil
}

func (a *Application) registerShutdown() {
	go func(manager *process.Manager) {
		<-a.sigChan

		manager.StopAll()
	}(a.manager)

	a.manager.AwaitAll()

	if a.nc != nil {
		a.nc.Close()
	}
}
