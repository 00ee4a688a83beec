package repo

import (
	"interior-request-server/internal/model"
	"interior-request-server/internal/utils"
	"interior-request-server/internal/workflow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultOrder = "applications.created_at DESC, applications.id DESC"

type ApplicationRepository struct {
	db *gorm.DB
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("application_images.uploaded_at ASC, application_images.id ASC")
}

func (r *ApplicationRepository) CreateWithImage(app *model.Application, image *model.ApplicationImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(app).Error; err != nil {
			return err
		}
		image.ApplicationID = app.ID
		if err := tx.Create(image).Error; err != nil {
			return err
		}
		app.Images = []model.ApplicationImage{*image}
		return nil
	})
}

func (r *ApplicationRepository) FindByID(id uint) (*model.Application, error) {
	var app model.Application
	err := r.db.Preload("Images", preloadImages).Preload("User").Preload("Category").First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByIDAndUserID(id, userID uint) (*model.Application, error) {
	var app model.Application
	err := r.db.Preload("Images", preloadImages).Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByUser(userID uint, status *model.ApplicationStatus) ([]model.Application, error) {
	query := r.db.Model(&model.Application{}).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var apps []model.Application
	if err := query.Preload("Images", preloadImages).Preload("Category").Order(defaultOrder).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) AdminList(filter AdminFilter) ([]model.Application, int64, error) {
	// Count 会改写语句，列表与计数各自构造查询
	filtered := func() *gorm.DB {
		query := r.db.Model(&model.Application{}).
			Joins("LEFT JOIN users ON users.id = applications.user_id").
			Joins("LEFT JOIN categories ON categories.id = applications.category_id")
		if filter.Status != nil {
			query = query.Where("applications.status = ?", *filter.Status)
		}
		if filter.CategoryID != nil {
			query = query.Where("applications.category_id = ?", *filter.CategoryID)
		}
		if filter.CreatedFrom != nil {
			query = query.Where("applications.created_at >= ?", *filter.CreatedFrom)
		}
		if filter.CreatedBefore != nil {
			query = query.Where("applications.created_at < ?", *filter.CreatedBefore)
		}
		if filter.Search != "" {
			like := "%" + utils.EscapeLike(filter.Search) + "%"
			query = query.Where(
				"applications.title LIKE ? ESCAPE '!' OR applications.description LIKE ? ESCAPE '!' OR users.username LIKE ? ESCAPE '!' OR categories.name LIKE ? ESCAPE '!'",
				like, like, like, like,
			)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []model.Application
	err := filtered().Select("applications.*").
		Preload("Images", preloadImages).Preload("User").Preload("Category").
		Order(defaultOrder).
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *ApplicationRepository) DeleteIfNew(id, userID uint) ([]model.ApplicationImage, error) {
	var images []model.ApplicationImage

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		// 图片记录引用申请，先删图片
		if err := tx.Where("application_id = ?", id).Delete(&model.ApplicationImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ? AND status = ?", id, userID, model.StatusNew).Delete(&model.Application{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusChanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ApplicationRepository) ApplyTransition(id uint, outcome workflow.Outcome, designImage *model.ApplicationImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": outcome.Status}
		if outcome.Comment != nil {
			updates["admin_comment"] = *outcome.Comment
		}

		res := tx.Model(&model.Application{}).
			Where("id = ? AND status = ?", id, model.StatusNew).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusChanged
		}

		if designImage != nil {
			designImage.ApplicationID = id
			designImage.ImageType = model.ImageTypeDesign
			if err := tx.Create(designImage).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
