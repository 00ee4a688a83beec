package repo

import (
	"interior-request-server/internal/model"

	"gorm.io/gorm"
)

type CategoryStore interface {
	List() ([]model.Category, error)
	// ListWithCounts search 非空时按分类名字面匹配。
	ListWithCounts(search string) ([]model.CategoryWithCount, error)
	FindByID(id uint) (*model.Category, error)
	Exists(id uint) (bool, error)
	Create(category *model.Category) error
	// DeleteCascade 删除分类及其全部申请和图片记录，返回被删除的申请数量与图片记录。
	DeleteCascade(id uint) (int, []model.ApplicationImage, error)
}

func NewCategoryRepository(db *gorm.DB) CategoryStore {
	return &CategoryRepository{db: db}
}
