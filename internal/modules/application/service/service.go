package service

import (
	"context"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"interior-request-server/internal/model"
	"interior-request-server/internal/modules/application/dto"
	"interior-request-server/internal/modules/application/repo"
	platformservice "interior-request-server/internal/platform/service"
	"interior-request-server/internal/storage"
	"interior-request-server/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	planFolder   = "plans"
	designFolder = "designs"
)

type Service struct {
	appStore   repo.ApplicationStore
	categories repo.CategoryLookup
	blobs      storage.BlobStore
}

func New(appStore repo.ApplicationStore, categories repo.CategoryLookup, blobs storage.BlobStore) *Service {
	return &Service{appStore: appStore, categories: categories, blobs: blobs}
}

// validateImageField 对单个文件字段执行共享的图片校验。
func validateImageField(errs *platformservice.FieldErrors, field string, file *multipart.FileHeader) {
	for _, problem := range utils.ValidateImageUpload(file.Filename, file.Size, utils.AllowedImageExtensions, utils.MaxImageBytes) {
		errs.Add(field, problem)
	}
}

// storeUpload 将上传文件写入存储，返回对应的图片记录（未入库）。
func (s *Service) storeUpload(ctx context.Context, folder string, file *multipart.FileHeader, imageType model.ImageType) (*model.ApplicationImage, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	key := storage.NewKey(folder, file.Filename, time.Now())
	if err := s.blobs.Put(ctx, key, src, contentTypeOf(file)); err != nil {
		return nil, err
	}

	return &model.ApplicationImage{
		Image:        key,
		OriginalName: filepath.Base(file.Filename),
		Size:         file.Size,
		ImageType:    imageType,
	}, nil
}

// discardBlob 回滚已写入但未能入库的文件。
func (s *Service) discardBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		logrus.Warnf("⚠️ 回滚文件 %s 失败: %v", key, err)
	}
}

func (s *Service) deleteBlobs(ctx context.Context, images []model.ApplicationImage) {
	keys := make([]string, 0, len(images))
	for _, img := range images {
		keys = append(keys, img.Image)
	}
	storage.DeleteAll(ctx, s.blobs, keys, func(key string, err error) {
		logrus.Warnf("⚠️ 删除文件 %s 失败: %v", key, err)
	})
}

func contentTypeOf(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (s *Service) toResponse(app *model.Application) dto.ApplicationResponse {
	images := make([]dto.ImageResponse, 0, len(app.Images))
	for _, img := range app.Images {
		images = append(images, dto.ImageResponse{
			ID:           img.ID,
			URL:          s.blobs.URL(img.Image),
			OriginalName: img.OriginalName,
			Size:         img.Size,
			ImageType:    img.ImageType,
			UploadedAt:   img.UploadedAt,
		})
	}

	resp := dto.ApplicationResponse{
		ID:           app.ID,
		Title:        app.Title,
		Description:  app.Description,
		Status:       app.Status,
		Category:     dto.CategoryOption{ID: app.CategoryID, Name: app.Category.Name},
		CreatedAt:    app.CreatedAt,
		AdminComment: app.AdminComment,
		Images:       images,
	}
	if app.User.ID != 0 {
		resp.User = &dto.ApplicantResponse{
			ID:       app.User.ID,
			Username: app.User.Username,
			FullName: app.User.FullName,
			Email:    app.User.Email,
		}
	}
	return resp
}

func (s *Service) toResponses(apps []model.Application) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, s.toResponse(&apps[i]))
	}
	return out
}
