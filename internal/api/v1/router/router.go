package router

import (
	"context"
	"net/http"
	"time"

	"talktutor/internal/api/v1/handler"
	"talktutor/internal/config"
	"talktutor/internal/middleware"
	"talktutor/internal/repository"
	"talktutor/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// New wires the document store, services and handlers into one http.Handler.
// The returned mongo client is the caller's to disconnect.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *mongo.Client, error) {
	// 1. Connect to the document store
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, nil, err
	}
	logger.Info().Str("database", cfg.DBName).Msg("Document store connection successful")
	db := client.Database(cfg.DBName)

	// 2. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	analysisRepo := repository.NewAnalysisRepo(db)
	if err := sessionRepo.EnsureIndexes(connectCtx); err != nil {
		return nil, nil, err
	}
	if err := analysisRepo.EnsureIndexes(connectCtx); err != nil {
		return nil, nil, err
	}

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize services
	sessionProvider := service.NewOAuthSessionProvider(cfg.AuthProviderURL)
	chatClient := service.NewOpenAIClient(cfg)
	authSvc := service.NewAuthService(userRepo, sessionRepo, sessionProvider, time.Duration(cfg.SessionTTLHours)*time.Hour, logger)
	planSvc := service.NewPlanService(userRepo, logger)
	coachSvc := service.NewCoachService(analysisRepo, planSvc, chatClient, logger)

	// 5. Initialize handlers and middleware
	authHandler := handler.NewAuthHandler(authSvc, logger, cfg.Debug)
	analysisHandler := handler.NewAnalysisHandler(coachSvc, validate, logger, cfg.Debug)
	subscriptionHandler := handler.NewSubscriptionHandler(planSvc, validate, logger, cfg.Debug)
	authMiddleware := middleware.Auth(authSvc, logger, cfg.Debug)

	// 6. Mount everything under /api
	apiMux := http.NewServeMux()
	authHandler.RegisterRoutes(apiMux, authMiddleware)
	analysisHandler.RegisterRoutes(apiMux, authMiddleware)
	subscriptionHandler.RegisterRoutes(apiMux, authMiddleware)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiMux))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"TalkTutor API is running"}`))
	})

	// 7. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.Logger(logger)(c.Handler(mux)), client, nil
}
