package router

import (
	"fmt"

	"github.com/anonto42/linkup/backend/internal/handlers"
	"github.com/anonto42/linkup/backend/internal/middleware"
	"github.com/anonto42/linkup/backend/internal/repositories"
	"github.com/anonto42/linkup/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories are the stores the API is served from
type Repositories struct {
	Users         repositories.UserRepository
	Posts         repositories.PostRepository
	Messages      repositories.MessageRepository
	Notifications repositories.NotificationRepository
}

// PersistentRepositories keeps users, posts and messages in MongoDB and
// notifications in PostgreSQL.
func PersistentRepositories(mdb *mongo.Database, pgdb *gorm.DB) Repositories {
	return Repositories{
		Users:         repositories.NewMongoUserRepository(mdb),
		Posts:         repositories.NewMongoPostRepository(mdb),
		Messages:      repositories.NewMongoMessageRepository(mdb),
		Notifications: repositories.NewPostgresNotificationRepository(pgdb),
	}
}

// MemoryRepositories keeps everything in process memory
func MemoryRepositories() Repositories {
	return Repositories{
		Users:         repositories.NewMemoryUserRepository(),
		Posts:         repositories.NewMemoryPostRepository(),
		Messages:      repositories.NewMemoryMessageRepository(),
		Notifications: repositories.NewMemoryNotificationRepository(),
	}
}

// Options selects how callers are authenticated and tunes the graph queries
type Options struct {
	AuthProvider      string // "jwt" or "firebase"
	JWTSecret         string
	FirebaseVerifier  middleware.TokenVerifier
	LookupConcurrency int
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, repos Repositories, opts Options, log *zap.Logger) error {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Services ---
	notifier := services.NewNotifier(repos.Notifications, log)
	userService := services.NewUserService(repos.Users, log)
	connectionService := services.NewConnectionService(repos.Users, notifier)
	graphService := services.NewGraphService(repos.Users, opts.LookupConcurrency)
	postService := services.NewPostService(repos.Posts, repos.Users, notifier)
	messageService := services.NewMessageService(repos.Messages, repos.Users, notifier)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	switch opts.AuthProvider {
	case "jwt":
		api.Use(middleware.JWTAuthMiddleware(opts.JWTSecret))
	case "firebase":
		if opts.FirebaseVerifier == nil {
			return fmt.Errorf("firebase auth selected without a token verifier")
		}
		api.Use(middleware.FirebaseAuthMiddleware(opts.FirebaseVerifier, userService, log))
	default:
		return fmt.Errorf("unknown auth provider %q", opts.AuthProvider)
	}
	log.Info("authentication middleware applied", zap.String("provider", opts.AuthProvider))

	handlers.NewUserHandler(userService, log).RegisterProfileRoutes(api)
	handlers.NewConnectionHandler(connectionService, graphService, log).RegisterConnectionRoutes(api)
	handlers.NewPostHandler(postService, log).RegisterPostRoutes(api)
	handlers.NewMessageHandler(messageService, log).RegisterMessageRoutes(api)
	handlers.NewNotificationHandler(repos.Notifications, repos.Users, log).RegisterNotificationRoutes(api)

	log.Info("all routes configured")
	return nil
}
