//go:build wireinject
// +build wireinject

package di

import (
	"interior-request-server/internal/modules"
	apprepo "interior-request-server/internal/modules/application/repo"
	authrepo "interior-request-server/internal/modules/auth/repo"
	categoryrepo "interior-request-server/internal/modules/category/repo"
	"interior-request-server/internal/router"
	"interior-request-server/internal/storage"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB, blobs storage.BlobStore) (*Application, error) {
	wire.Build(
		authrepo.NewUserRepository,
		categoryrepo.NewCategoryRepository,
		apprepo.NewApplicationRepository,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
