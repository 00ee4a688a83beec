package category

import (
	"interior-request-server/internal/modules/category/handler"
	"interior-request-server/internal/modules/category/repo"
	"interior-request-server/internal/modules/category/service"
	"interior-request-server/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(categoryStore repo.CategoryStore, blobs storage.BlobStore) *Module {
	moduleService := service.New(categoryStore, blobs)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
