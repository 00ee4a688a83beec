package modules

import (
	"interior-request-server/internal/modules/application"
	apprepo "interior-request-server/internal/modules/application/repo"
	"interior-request-server/internal/modules/auth"
	authrepo "interior-request-server/internal/modules/auth/repo"
	"interior-request-server/internal/modules/category"
	categoryrepo "interior-request-server/internal/modules/category/repo"
	"interior-request-server/internal/storage"
)

type AppModules struct {
	Auth        *auth.Module
	Category    *category.Module
	Application *application.Module
}

func New(
	userStore authrepo.UserStore,
	categoryStore categoryrepo.CategoryStore,
	appStore apprepo.ApplicationStore,
	blobs storage.BlobStore,
) *AppModules {
	return &AppModules{
		Auth:        auth.New(userStore),
		Category:    category.New(categoryStore, blobs),
		Application: application.New(appStore, categoryStore, blobs),
	}
}
