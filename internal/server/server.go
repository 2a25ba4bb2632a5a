package server

import (
	"net/http"

	"taskboard/internal/blobstore"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/password"
	"taskboard/internal/publisher"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, blobs blobstore.Store, events publisher.Publisher,
	logger *zap.Logger, accessLog *logrus.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(accessLog))

	s := &Server{
		router: router,
		db:     db,
		logger: logger,
	}

	s.setupRoutes(cfg, blobs, events)

	return s
}

func (s *Server) setupRoutes(cfg *config.Config, blobs blobstore.Store, events publisher.Publisher) {
	tokens := token.NewManager([]byte(cfg.Auth.JWTSecret))
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	userRepo := repository.NewUserRepository(s.db, s.logger)
	taskRepo := repository.NewTaskRepository(s.db, s.logger)
	categoryRepo := repository.NewCategoryRepository(s.db, s.logger)

	authService := service.NewAuthService(userRepo, hasher, tokens,
		cfg.LoginTTL(), cfg.RegisterTTL(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(userRepo, blobs, s.logger)
	taskHandler := handler.NewTaskHandler(taskRepo, events, s.logger)
	categoryHandler := handler.NewCategoryHandler(categoryRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := s.router.Group("/api/v1")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Every route below passes through the authorization gate.
	protected := s.router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(tokens, s.logger))
	{
		protected.GET("/getUser/:id", userHandler.GetUser)
		protected.POST("/updateProfilePicture", userHandler.UpdateProfilePicture)

		protected.GET("/todos", taskHandler.ListTodos)
		protected.GET("/todosByUser/:username", taskHandler.ListTodosByUser)
		protected.POST("/todos/add", taskHandler.AddTodo)
		protected.POST("/todos/updateIsFavorite", taskHandler.UpdateIsFavorite)
		protected.PUT("/todos/update/:id", taskHandler.UpdateTodo)
		protected.PUT("/todos/updateViews/:id/:action", taskHandler.UpdateViews)
		protected.DELETE("/todos/delete/:id", taskHandler.DeleteTodo)

		protected.GET("/categories", categoryHandler.ListCategories)
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	s.logger.Info("Server starting", zap.String("addr", addr))
	return s.router.Run(addr)
}
