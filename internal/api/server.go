package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/TaiyoMatsuda/board-app/docs"
	v1 "github.com/TaiyoMatsuda/board-app/internal/api/handler/v1"
	"github.com/TaiyoMatsuda/board-app/internal/api/handler/v1/response"
	"github.com/TaiyoMatsuda/board-app/internal/api/middleware"
	"github.com/TaiyoMatsuda/board-app/internal/config"
	"github.com/TaiyoMatsuda/board-app/internal/repository"
	"github.com/TaiyoMatsuda/board-app/internal/repository/dao"
	"github.com/TaiyoMatsuda/board-app/internal/service"
	"github.com/TaiyoMatsuda/board-app/internal/storage"
)

const basePath = "/api/v1"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

// NewServer wires the API. Background work started here stops when ctx is
// done.
func NewServer(ctx context.Context, conf *config.AppConfig, db *gorm.DB, store storage.Storage) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	loc, err := conf.API.Location()
	if err != nil {
		return nil, fmt.Errorf("conf.API.Location -> %w", err)
	}

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares(ctx)
	s.MountHandlers(s.initHandlers(db, store, loc))
	s.mountMedia(store)

	return s, nil
}

func (s *Server) initHandlers(db *gorm.DB, store storage.Storage, loc *time.Location) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	commentRepo := repository.NewCommentRepository(dao.NewCommentDAO(db))
	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(db))

	presenter := response.NewPresenter(loc, store)

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo, store)
	eventSvc := service.NewEventService(eventRepo, participantRepo, userRepo, store, loc)
	commentSvc := service.NewCommentService(commentRepo, eventRepo)
	participantSvc := service.NewParticipantService(participantRepo, eventRepo)

	return handlers{
		auth:        v1.NewAuthHandler(s.Config.API, authSvc, presenter),
		user:        v1.NewUserHandler(userSvc, presenter),
		event:       v1.NewEventHandler(eventSvc, userSvc, presenter),
		comment:     v1.NewCommentHandler(commentSvc, userSvc, presenter),
		participant: v1.NewParticipantHandler(participantSvc, userSvc, presenter),
	}
}

func (s *Server) MountMiddlewares(ctx context.Context) {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.RateLimit(ctx, s.Config.API.RateLimitPerMinute, s.Config.API.RateLimitBurst))
}

func (s *Server) MountHandlers(h handlers) {
	auth := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	v1Group := s.Router.Group(basePath)

	for _, r := range h.routes() {
		guard := auth.IdentifyJWT()
		if r.access.requiresToken() {
			guard = auth.VerifyJWT()
		}
		v1Group.Handle(r.method, r.path, guard, r.handler)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "board-app API"
	docs.SwaggerInfo.Description = "Events, comments and participants for the board app."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// mountMedia serves locally stored uploads. Other backends serve their own.
func (s *Server) mountMedia(store storage.Storage) {
	local, ok := store.(*storage.Local)
	if !ok {
		return
	}

	u, err := url.Parse(local.MediaURL())
	if err != nil {
		return
	}

	prefix := "/" + strings.Trim(u.Path, "/")
	if prefix == "/" {
		return
	}

	s.Router.Static(prefix, local.Root())
}
