package testutil

import (
	"log"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/gorm"

	"github.com/pokecamp/backend/x/core"
)

var tracer = otel.Tracer("testutil")

func SetupMockTraceProvider() *tracetest.InMemoryExporter {

	spanChecker := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spanChecker))
	otel.SetTracerProvider(provider)

	return spanChecker
}

// CreateDB opens an in-memory database with the full schema migrated.
func CreateDB() (*gorm.DB, func()) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Could not open database: %s", err)
	}

	// every pooled connection to :memory: would get its own database
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database handle: %s", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&core.Trainer{},
		&core.Pokemon{},
		&core.TrainerSheet{},
		&core.PokemonSheet{},
		&core.PokedexEntry{},
		&core.BackpackItem{},
		&core.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Could not migrate database: %s", err)
	}

	cleanup := func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	return db, cleanup
}

func CreateHttpRequest() (echo.Context, *http.Request, *httptest.ResponseRecorder, string) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	ctx, span := tracer.Start(c.Request().Context(), "testRoot")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))
	traceID := span.SpanContext().TraceID().String()

	return c, req, rec, traceID
}

// CreateJsonRequest is CreateHttpRequest with a JSON body attached.
func CreateJsonRequest(method string, body string) (echo.Context, *http.Request, *httptest.ResponseRecorder, string) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	ctx, span := tracer.Start(c.Request().Context(), "testRoot")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))
	traceID := span.SpanContext().TraceID().String()

	return c, req, rec, traceID
}
