package service

import (
	"context"
	"errors"
	"strings"

	"interior-request-server/internal/model"
	"interior-request-server/internal/modules/category/dto"
	"interior-request-server/internal/modules/category/repo"
	platformservice "interior-request-server/internal/platform/service"
	"interior-request-server/internal/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const categoryNameMaxLength = 200

type Service struct {
	categoryStore repo.CategoryStore
	blobs         storage.BlobStore
}

func New(categoryStore repo.CategoryStore, blobs storage.BlobStore) *Service {
	return &Service{categoryStore: categoryStore, blobs: blobs}
}

func (s *Service) List() ([]model.Category, error) {
	categories, err := s.categoryStore.List()
	if err != nil {
		logrus.Errorf("❌ 查询分类失败: %v", err)
		return nil, platformservice.NewInternalError("获取分类失败")
	}
	return categories, nil
}

func (s *Service) ListWithCounts(search string) ([]model.CategoryWithCount, error) {
	rows, err := s.categoryStore.ListWithCounts(strings.TrimSpace(search))
	if err != nil {
		logrus.Errorf("❌ 统计分类失败: %v", err)
		return nil, platformservice.NewInternalError("获取分类失败")
	}
	return rows, nil
}

// Exists 供申请提交校验使用。
func (s *Service) Exists(id uint) (bool, error) {
	return s.categoryStore.Exists(id)
}

func (s *Service) Create(name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	var errs platformservice.FieldErrors
	switch {
	case name == "":
		errs.Add("name", "分类名称不能为空")
	case len([]rune(name)) > categoryNameMaxLength:
		errs.Add("name", "分类名称长度不能超过 200 个字符")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	category := &model.Category{Name: name}
	if err := s.categoryStore.Create(category); err != nil {
		logrus.Errorf("❌ 创建分类失败: %v", err)
		return nil, platformservice.NewInternalError("创建分类失败")
	}
	return category, nil
}

// Delete 删除分类以及其下全部申请，提交后再清理文件，文件删除失败只记录日志。
func (s *Service) Delete(ctx context.Context, id uint) (*dto.DeleteCategoryResponse, error) {
	deletedApps, images, err := s.categoryStore.DeleteCascade(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("分类不存在")
		}
		logrus.Errorf("❌ 删除分类 %d 失败: %v", id, err)
		return nil, platformservice.NewInternalError("删除分类失败")
	}

	keys := make([]string, 0, len(images))
	for _, img := range images {
		keys = append(keys, img.Image)
	}
	storage.DeleteAll(ctx, s.blobs, keys, func(key string, err error) {
		logrus.Warnf("⚠️ 删除文件 %s 失败: %v", key, err)
	})

	logrus.Infof("✅ 已删除分类 %d，连带删除 %d 个申请、%d 张图片", id, deletedApps, len(images))
	return &dto.DeleteCategoryResponse{
		Message:             "分类已删除",
		DeletedApplications: deletedApps,
		DeletedImages:       len(images),
	}, nil
}
