package auth

import (
	"interior-request-server/internal/modules/auth/handler"
	"interior-request-server/internal/modules/auth/repo"
	"interior-request-server/internal/modules/auth/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(userStore repo.UserStore) *Module {
	moduleService := service.New(userStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
