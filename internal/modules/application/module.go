package application

import (
	"interior-request-server/internal/modules/application/handler"
	"interior-request-server/internal/modules/application/repo"
	"interior-request-server/internal/modules/application/service"
	"interior-request-server/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appStore repo.ApplicationStore, categories repo.CategoryLookup, blobs storage.BlobStore) *Module {
	moduleService := service.New(appStore, categories, blobs)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
