package router

import (
	"github.com/PPanwar29/Streamify/internal/application"
	"github.com/PPanwar29/Streamify/internal/container"
	pginfra "github.com/PPanwar29/Streamify/internal/infrastructure/postgres"
	handlers "github.com/PPanwar29/Streamify/internal/interface/http"
	"github.com/PPanwar29/Streamify/internal/router/modules"
)

// InitModules builds the dependency graph and registers all feature modules.
// Called once during startup after the container singletons are set.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	requestRepo := pginfra.NewFriendRequestRepository(container.GetPGPool())

	var mirrorPub application.MirrorPublisher
	if p := container.GetMirrorPub(); p != nil {
		mirrorPub = p
	}

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		mirrorPub,
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetGCS(),
		cfg.GCSBucket,
	)
	relationSvc := application.NewRelationshipService(userRepo, requestRepo, container.GetLogger())

	authHandler := handlers.NewAuthHandler(authSvc, container.GetJWT(), container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(relationSvc, authSvc, container.GetLogger())
	chatHandler := handlers.NewChatHandler(container.GetChat(), container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, userRepo, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, userRepo, container.GetJWT()))
	r.Add(modules.NewChatModule(chatHandler, userRepo, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
