package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pokecamp/backend/x/auth"
	"github.com/pokecamp/backend/x/core"
	"github.com/pokecamp/backend/x/util"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/plugin/opentelemetry/tracing"
)

const pokecampBanner = `
 ___     _
| _ \___| |_____ __ __ _ _ __  _ __
|  _/ _ \ / / -_) _/ _' | '  \| '_ \
|_| \___/_\_\___\__\__,_|_|_|_| .__/
                              |_|
`

type CustomHandler struct {
	slog.Handler
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {

	r.AddAttrs(slog.String("type", "app"))

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.AddAttrs(slog.String("traceID", span.SpanContext().TraceID().String()))
		r.AddAttrs(slog.String("spanID", span.SpanContext().SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}

var (
	version      = "unknown"
	buildMachine = "unknown"
	buildTime    = "unknown"
	goVersion    = "unknown"
)

func main() {

	fmt.Fprint(os.Stderr, pokecampBanner)

	handler := &CustomHandler{Handler: slog.NewJSONHandler(os.Stdout, nil)}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)

	slog.Info(fmt.Sprintf("Pokecamp %s starting...", version))

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	config := util.Config{}
	configPath := os.Getenv("POKECAMP_CONFIG")
	if configPath == "" {
		configPath = "/etc/pokecamp/config.yaml"
	}

	err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config: ", err)
	}

	if config.Server.EnableTrace {
		cleanup, err := setupTraceProvider(config.Server.TraceEndpoint, "pokecamp/api", version)
		if err != nil {
			panic(err)
		}
		defer cleanup()

		skipper := otelecho.WithSkipper(
			func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health"
			},
		)
		e.Use(otelecho.Middleware("api", skipper))
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "pokecamp",
		LabelFuncs: map[string]echoprometheus.LabelValueFunc{
			"url": func(c echo.Context, err error) string {
				return "REDACTED"
			},
		},
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	e.Use(middleware.Recover())

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(config.Server.Dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect database")
	}
	sqlDB, err := db.DB() // for pinging
	if err != nil {
		panic("failed to connect database")
	}
	defer sqlDB.Close()

	err = db.Use(tracing.NewPlugin(
		tracing.WithDBName("postgres"),
	))
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	// Migrate the schema
	slog.Info("start migrate")
	db.AutoMigrate(
		&core.Trainer{},
		&core.Pokemon{},
		&core.TrainerSheet{},
		&core.PokemonSheet{},
		&core.PokedexEntry{},
		&core.BackpackItem{},
		&core.AuditLog{},
	)

	seedMaster(db, config)

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Server.RedisAddr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	err = redisotel.InstrumentTracing(
		rdb,
		redisotel.WithAttributes(
			attribute.KeyValue{
				Key:   "db.name",
				Value: attribute.StringValue("redis"),
			},
		),
	)
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	mc := memcache.New(config.Server.MemcachedAddr)
	defer mc.Close()

	authService := SetupAuthService(db, rdb, config)
	authHandler := SetupAuthHandler(db, rdb, config)
	trainerHandler := SetupTrainerHandler(db, mc, config)
	pokemonHandler := SetupPokemonHandler(db, config)
	sheetHandler := SetupSheetHandler(db, config)
	pokedexHandler := SetupPokedexHandler(db)
	backpackHandler := SetupBackpackHandler(db)
	auditHandler := SetupAuditHandler(db)

	// public
	e.POST("/login", authHandler.Login)
	e.POST("/register", trainerHandler.Register)
	e.Static("/uploads", config.Server.UploadDir)

	api := e.Group("", authService.IdentifyTrainer)

	// trainer
	api.GET("/users/all", trainerHandler.List, auth.Restrict(auth.ISADMIN))
	api.GET("/user/:id", trainerHandler.Get)
	api.PUT("/user/:id", trainerHandler.Update)
	api.DELETE("/user/:id", trainerHandler.Delete, auth.Restrict(auth.ISADMIN))

	// pokemon
	api.GET("/trainer/:trainerId/pokemons", pokemonHandler.ListParty)
	api.POST("/pokemons", pokemonHandler.Create)
	api.PUT("/pokemon-stats/:pokemonId", pokemonHandler.UpdateStats)
	api.DELETE("/pokemon/:pokemonId", pokemonHandler.Delete)
	api.PUT("/pokemon/:pokemonId/deposit", pokemonHandler.Deposit)
	api.PUT("/pokemon/:pokemonId/withdraw", pokemonHandler.Withdraw)
	api.GET("/deposito", pokemonHandler.ListBox)
	api.GET("/deposito/:trainerId", pokemonHandler.ListBox)

	// sheets
	api.GET("/ficha", sheetHandler.GetTrainerSheet)
	api.GET("/ficha/:userId", sheetHandler.GetTrainerSheet)
	api.PUT("/ficha", sheetHandler.SaveTrainerSheet)
	api.PUT("/ficha/:userId", sheetHandler.SaveTrainerSheet)
	api.GET("/pokemon-sheet/:pokemonId", sheetHandler.GetPokemonSheet)
	api.PUT("/pokemon-sheet/:pokemonId", sheetHandler.SavePokemonSheet)

	// pokedex
	api.GET("/pokedex", pokedexHandler.List)
	api.POST("/pokedex", pokedexHandler.Add)

	// backpack
	api.GET("/mochila", backpackHandler.List)
	api.POST("/mochila/item", backpackHandler.Add)
	api.PUT("/mochila/item/:itemId", backpackHandler.Update)
	api.DELETE("/mochila/item/:itemId", backpackHandler.Delete)

	// audit
	api.GET("/auditoria", auditHandler.List, auth.Restrict(auth.ISADMIN))

	e.GET("/health", func(c echo.Context) (err error) {
		ctx := c.Request().Context()

		err = sqlDB.Ping()
		if err != nil {
			return c.String(http.StatusInternalServerError, "db error")
		}

		err = rdb.Ping(ctx).Err()
		if err != nil {
			return c.String(http.StatusInternalServerError, "redis error")
		}

		return c.String(http.StatusOK, "ok")
	})

	var resourceCountMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pokecamp_resources_count",
			Help: "resources count",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(resourceCountMetrics)

	go func() {
		for {
			time.Sleep(15 * time.Second)

			var count int64
			if err := db.Model(&core.Trainer{}).Count(&count).Error; err != nil {
				slog.Error(fmt.Sprintf("failed to count trainers: %v", err))
				continue
			}
			resourceCountMetrics.WithLabelValues("trainer").Set(float64(count))

			if err := db.Model(&core.Pokemon{}).Count(&count).Error; err != nil {
				slog.Error(fmt.Sprintf("failed to count pokemons: %v", err))
				continue
			}
			resourceCountMetrics.WithLabelValues("pokemon").Set(float64(count))

			if err := db.Model(&core.AuditLog{}).Count(&count).Error; err != nil {
				slog.Error(fmt.Sprintf("failed to count audit logs: %v", err))
				continue
			}
			resourceCountMetrics.WithLabelValues("audit").Set(float64(count))
		}
	}()

	e.GET("/metrics", echoprometheus.NewHandler())

	addr := config.Server.Addr
	if addr == "" {
		addr = ":8000"
	}
	e.Logger.Fatal(e.Start(addr))
}

// seedMaster creates the bootstrap master account when no master exists yet.
func seedMaster(db *gorm.DB, config util.Config) {
	if config.Site.AdminUsername == "" || config.Site.AdminPassword == "" {
		return
	}

	var count int64
	if err := db.Model(&core.Trainer{}).Where("tipo_usuario = ?", core.RoleMaster).Count(&count).Error; err != nil {
		slog.Error(fmt.Sprintf("failed to check for master account: %v", err))
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(config.Site.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error(fmt.Sprintf("failed to hash master password: %v", err))
		return
	}

	master := core.Trainer{
		Username: config.Site.AdminUsername,
		Password: string(hash),
		Role:     core.RoleMaster,
		ImageURL: config.Site.DefaultTrainerImage,
	}
	if err := db.Create(&master).Error; err != nil {
		slog.Error(fmt.Sprintf("failed to seed master account: %v", err))
		return
	}
	slog.Info(fmt.Sprintf("master account %s created", master.Username))
}

func setupTraceProvider(endpoint string, serviceName string, serviceVersion string) (func(), error) {

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)

	if err != nil {
		return nil, err
	}

	resource := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(propagator)

	cleanup := func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error(fmt.Sprintf("Failed to shutdown tracer provider: %v", err))
		}
	}
	return cleanup, nil
}
