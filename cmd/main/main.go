package main

import (
	"context"
	"net/http"
	"time"

	"feedbackhub/internal/analytics"
	"feedbackhub/internal/app"
	"feedbackhub/internal/db"
	"feedbackhub/internal/feedback"
	"feedbackhub/internal/form"
	handlersAnalytics "feedbackhub/internal/handlers/analytics"
	handlersAuth "feedbackhub/internal/handlers/auth"
	handlersFeedback "feedbackhub/internal/handlers/feedback"
	handlersForm "feedbackhub/internal/handlers/form"
	"feedbackhub/internal/middleware"
	"feedbackhub/internal/session"
	"feedbackhub/internal/user"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const cfgPath = "config/config.yaml"

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// .env опционален, окружение важнее
	if err := godotenv.Load(); err != nil {
		logger.Debugf("no .env file loaded: %v", err)
	}

	// парсим конфиг; без секрета подписи не стартуем
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init db
	database, err := db.Open(c)
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}
	database.SetMaxOpenConns(c.MaxOpenConns)

	// миграция и посев администратора строго до начала обслуживания
	gateway := db.NewGateway(database, logger, c.SeedAdminEmail, c.SeedAdminPassword)
	if err := gateway.Init(context.Background()); err != nil {
		logger.Fatalf("error to init database: %v", err)
	}

	// init repository
	userRepository := user.NewUserDBRepository(database, logger)
	sessionRepository := session.NewSessionRepository(logger, c.Secret, c.SessionDuration)
	formRepository := form.NewFormDBRepository(database, logger)
	feedbackRepository := feedback.NewFeedbackDBRepository(database, logger)
	analyticsRepository := analytics.NewRepository(database, logger)

	// init handlers
	authHandlers := handlersAuth.NewAuthHandler(logger, userRepository, sessionRepository)
	formHandlers := handlersForm.NewFormHandler(logger, formRepository)
	feedbackHandlers := handlersFeedback.NewFeedbackHandler(logger, feedbackRepository, formRepository)
	analyticsHandlers := handlersAnalytics.NewAnalyticsHandler(logger, analyticsRepository)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Ручки только для администратора
	adminRouter := r.PathPrefix("/").Subrouter()
	adminRouter.Use(middleware.Auth(sessionRepository, userRepository, logger))
	adminRouter.Use(middleware.AdminOnly(logger))

	adminRouter.HandleFunc("/forms", formHandlers.List).Methods("GET")
	adminRouter.HandleFunc("/forms", formHandlers.Create).Methods("POST")
	adminRouter.HandleFunc("/forms/{id}", formHandlers.Update).Methods("PATCH")
	adminRouter.HandleFunc("/forms/{id}", formHandlers.Delete).Methods("DELETE")

	adminRouter.HandleFunc("/feedbacks", feedbackHandlers.List).Methods("GET")

	adminRouter.HandleFunc("/analytics", analyticsHandlers.Get).Methods("GET")

	// Ручки требующие авторизации без роли
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(sessionRepository, userRepository, logger))

	authRouter.HandleFunc("/auth/me", authHandlers.Me).Methods("GET")

	// Ручки НЕ требующие авторизации
	noAuthRouter := r.PathPrefix("/").Subrouter()

	noAuthRouter.HandleFunc("/auth/login", authHandlers.Login).Methods("POST")
	noAuthRouter.HandleFunc("/forms/{id}", formHandlers.GetByID).Methods("GET")
	noAuthRouter.HandleFunc("/feedbacks", feedbackHandlers.Create).Methods("POST")

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		panic("can't start server: " + err.Error())
	}
}
