package repo

import (
	"interior-request-server/internal/model"
	"interior-request-server/internal/utils"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) ListWithCounts(search string) ([]model.CategoryWithCount, error) {
	var rows []model.CategoryWithCount
	query := r.db.Model(&model.Category{}).
		Select("categories.*, COUNT(applications.id) AS applications_count").
		Joins("LEFT JOIN applications ON applications.category_id = categories.id")
	if search != "" {
		query = query.Where("categories.name LIKE ? ESCAPE '!'", "%"+utils.EscapeLike(search)+"%")
	}
	err := query.Group("categories.id").
		Order("categories.name ASC, categories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

// DeleteCascade 在一个事务里按 图片 -> 申请 -> 分类 的顺序显式删除，不依赖数据库外键级联。
func (r *CategoryRepository) DeleteCascade(id uint) (int, []model.ApplicationImage, error) {
	var (
		appIDs []uint
		images []model.ApplicationImage
	)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Application{}).Where("category_id = ?", id).Pluck("id", &appIDs).Error; err != nil {
			return err
		}

		if len(appIDs) > 0 {
			if err := tx.Where("application_id IN ?", appIDs).Find(&images).Error; err != nil {
				return err
			}
			if err := tx.Where("application_id IN ?", appIDs).Delete(&model.ApplicationImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", appIDs).Delete(&model.Application{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&category).Error
	})
	if err != nil {
		return 0, nil, err
	}
	return len(appIDs), images, nil
}
