package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/liftlog-app/liftlog/internal/adherence"
	"github.com/liftlog-app/liftlog/internal/bodyweight"
	"github.com/liftlog-app/liftlog/internal/config"
	"github.com/liftlog-app/liftlog/internal/db"
	"github.com/liftlog-app/liftlog/internal/exercises"
	"github.com/liftlog-app/liftlog/internal/instrumentation"
	"github.com/liftlog-app/liftlog/internal/middleware"
	"github.com/liftlog-app/liftlog/internal/sets"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
	"github.com/liftlog-app/liftlog/internal/xp"
	"github.com/liftlog-app/liftlog/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const exercisesCacheTTL = 5 * time.Minute

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	appToken          string // shared secret of the mobile app
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	exercisesService *exercises.Service
	setsService      *sets.Service
	xpService        *xp.Service
	bodyweightSvc    *bodyweight.Service
	adherenceTracker *adherence.Tracker

	instr        *instrumentation.Instrumentation
	promRegistry *prometheus.Registry
	otelShutdown func()
}

type NewServerParams struct {
	Config         *config.Config
	AppToken       string
	RedisPassword  string
	VersionInfo    string
	TracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := instrumentation.SetupPrometheus(pgxpoolCollector)
	instr := instrumentation.NewInstrumentationWithRegisterer("liftlog", "main", promRegistry)
	instr.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	if params.TracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	otelShutdown, err := tracing.Setup(ctx, params.TracingEnabled, "liftlog-backend")
	if err != nil {
		return nil, err
	}

	xpService := xp.NewService(xp.NewRepo(dbPool), instr)

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		appToken:    params.AppToken,
		versionInfo: params.VersionInfo,
		redisClient: rdb,

		exercisesService: exercises.NewService(
			exercises.NewRepo(dbPool),
			exercises.NewCache(rdb, exercisesCacheTTL),
		),
		setsService:      sets.NewService(sets.NewRepo(dbPool), xpService),
		xpService:        xpService,
		bodyweightSvc:    bodyweight.NewService(bodyweight.NewRepo(dbPool)),
		adherenceTracker: adherence.NewTracker(adherence.NewRepo(dbPool)),

		instr:        instr,
		promRegistry: promRegistry,
		otelShutdown: otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	exercisesHandler := exercises.NewHandler(s.exercisesService)
	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/rename", exercisesHandler.HandleRename).Methods("PUT", "OPTIONS").Name("rename-exercise")
	r.HandleFunc("/exercises/{name}", exercisesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")

	setsHandler := sets.NewHandler(s.setsService, s.instr)
	logSetHandler := http.HandlerFunc(setsHandler.HandleLogSet)
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	r.Handle("/sets", middleware.RateLimit(
		reqRateLimiter,
		"log-set",
		s.config.SetLogRateLimitAllowedPerMin,
		s.instr,
	)(logSetHandler)).Methods("POST", "OPTIONS").Name("log-set")
	r.HandleFunc("/sets/day/{day}", setsHandler.HandleSetsForDay).Methods("GET", "OPTIONS").Name("sets-for-day")
	r.HandleFunc("/sets/{exercise}/daybest", setsHandler.HandleDayBest).Methods("GET", "OPTIONS").Name("day-best")
	r.HandleFunc("/sets/{exercise}/alltimebest", setsHandler.HandleAllTimeBest).Methods("GET", "OPTIONS").Name("all-time-best")
	r.HandleFunc("/sets/{exercise}/lastsession", setsHandler.HandleLastSession).Methods("GET", "OPTIONS").Name("last-session")
	r.HandleFunc("/sets/{id}", setsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-set")

	xpHandler := xp.NewHandler(s.xpService)
	r.HandleFunc("/xp/total", xpHandler.HandleTotal).Methods("GET", "OPTIONS").Name("xp-total")
	r.HandleFunc("/xp/level", xpHandler.HandleLevel).Methods("GET", "OPTIONS").Name("xp-level")
	r.HandleFunc("/xp/events", xpHandler.HandleEvents).Methods("GET", "OPTIONS").Name("xp-events")

	bodyweightHandler := bodyweight.NewHandler(s.bodyweightSvc, s.instr)
	r.HandleFunc("/bodyweight", bodyweightHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-bodyweight")
	r.HandleFunc("/bodyweight/series", bodyweightHandler.HandleSeries).Methods("GET", "OPTIONS").Name("bodyweight-series")
	r.HandleFunc("/bodyweight/weeklychange", bodyweightHandler.HandleWeeklyChange).Methods("GET", "OPTIONS").Name("bodyweight-weekly-change")
	r.HandleFunc("/bodyweight/trend", bodyweightHandler.HandleTrend).Methods("GET", "OPTIONS").Name("bodyweight-trend")
	r.HandleFunc("/bodyweight/{id}", bodyweightHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-bodyweight")

	adherenceHandler := adherence.NewHandler(s.adherenceTracker, s.instr)
	r.HandleFunc("/adherence", adherenceHandler.HandleToggle).Methods("POST", "OPTIONS").Name("adherence-toggle")
	r.HandleFunc("/adherence/streak", adherenceHandler.HandleStreak).Methods("GET", "OPTIONS").Name("adherence-streak")
	r.HandleFunc("/adherence/month/{month}", adherenceHandler.HandleMonthStats).Methods("GET", "OPTIONS").Name("adherence-month")

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "ok")
	}).Methods("GET").Name("health")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.appToken)

	r.Use(middleware.PanicRecovery(s.instr))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.instr))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.instr.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.instr.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.instr.GaugeRequests.Add(1)
	case http.StateClosed:
		s.instr.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
