package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"interior-request-server/internal/metrics"
	"interior-request-server/internal/model"
	"interior-request-server/internal/modules/application/dto"
	"interior-request-server/internal/modules/application/repo"
	platformservice "interior-request-server/internal/platform/service"
	"interior-request-server/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SubmitInput 提交申请的原始表单值。
type SubmitInput struct {
	Title       string
	Description string
	CategoryID  string
	Image       *multipart.FileHeader
}

func (s *Service) FormOptions() (*dto.FormOptions, error) {
	categories, err := s.categories.List()
	if err != nil {
		logrus.Errorf("❌ 查询分类失败: %v", err)
		return nil, platformservice.NewInternalError("获取分类失败")
	}
	options := make([]dto.CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, dto.CategoryOption{ID: c.ID, Name: c.Name})
	}
	return &dto.FormOptions{
		Categories:        options,
		AllowedExtensions: utils.AllowedImageExtensions,
		MaxImageBytes:     utils.MaxImageBytes,
		Statuses:          model.ApplicationStatuses,
	}, nil
}

// validateSubmission 校验全部字段，返回解析后的分类 ID。
func (s *Service) validateSubmission(in SubmitInput) (uint, error) {
	var errs platformservice.FieldErrors

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		errs.Add("title", "标题不能为空")
	case len([]rune(title)) > utils.TitleMaxLength:
		errs.Add("title", "标题长度不能超过 200 个字符")
	}

	if strings.TrimSpace(in.Description) == "" {
		errs.Add("description", "描述不能为空")
	}

	var categoryID uint
	if raw := strings.TrimSpace(in.CategoryID); raw == "" {
		errs.Add("category", "请选择分类")
	} else if parsed, err := strconv.ParseUint(raw, 10, 64); err != nil || parsed == 0 {
		errs.Add("category", "分类不存在")
	} else if exists, err := s.categories.Exists(uint(parsed)); err != nil {
		logrus.Errorf("❌ 查询分类失败: %v", err)
		return 0, platformservice.NewInternalError("提交失败，请稍后重试")
	} else if !exists {
		errs.Add("category", "分类不存在")
	} else {
		categoryID = uint(parsed)
	}

	if in.Image == nil {
		errs.Add("image", "请上传方案图")
	} else {
		validateImageField(&errs, "image", in.Image)
	}

	return categoryID, errs.Err()
}

// Submit 校验通过后保存方案图并创建新建状态的申请。
func (s *Service) Submit(ctx context.Context, userID uint, in SubmitInput) (*dto.ApplicationResponse, error) {
	categoryID, err := s.validateSubmission(in)
	if err != nil {
		return nil, err
	}

	image, err := s.storeUpload(ctx, planFolder, in.Image, model.ImageTypePlan)
	if err != nil {
		logrus.Errorf("❌ 保存方案图失败: %v", err)
		return nil, platformservice.NewStorageError("文件保存失败，请稍后重试")
	}

	app := &model.Application{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  categoryID,
		Status:      model.StatusNew,
	}
	if err := s.appStore.CreateWithImage(app, image); err != nil {
		s.discardBlob(ctx, image.Image)
		logrus.Errorf("❌ 创建申请失败: %v", err)
		return nil, platformservice.NewInternalError("提交失败，请稍后重试")
	}

	metrics.RecordSubmission()
	logrus.Infof("✅ 用户 %d 提交申请 %d", userID, app.ID)

	created, err := s.appStore.FindByIDAndUserID(app.ID, userID)
	if err != nil {
		return nil, platformservice.NewInternalError("提交成功，但读取申请失败")
	}
	resp := s.toResponse(created)
	canDelete := created.CanBeDeleted()
	resp.CanBeDeleted = &canDelete
	return &resp, nil
}

// ListMine 当前用户的申请，可按状态过滤。
func (s *Service) ListMine(userID uint, rawStatus string) ([]dto.ApplicationResponse, error) {
	var status *model.ApplicationStatus
	if strings.TrimSpace(rawStatus) != "" {
		parsed, ok := model.ParseApplicationStatus(rawStatus)
		if !ok {
			return nil, platformservice.NewFieldValidationError([]platformservice.FieldError{{Field: "status", Message: "无效的状态"}})
		}
		status = &parsed
	}

	apps, err := s.appStore.ListByUser(userID, status)
	if err != nil {
		logrus.Errorf("❌ 查询申请失败: %v", err)
		return nil, platformservice.NewInternalError("获取申请列表失败")
	}
	out := s.toResponses(apps)
	for i := range apps {
		canDelete := apps[i].CanBeDeleted()
		out[i].CanBeDeleted = &canDelete
	}
	return out, nil
}

// GetMine 只能查看自己的申请，他人的申请视为不存在。
func (s *Service) GetMine(userID, id uint) (*dto.ApplicationResponse, error) {
	app, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(app)
	canDelete := app.CanBeDeleted()
	resp.CanBeDeleted = &canDelete
	return &resp, nil
}

// DeleteMine 仅新建状态的申请可由申请人删除。
func (s *Service) DeleteMine(ctx context.Context, userID, id uint) error {
	app, err := s.findOwned(userID, id)
	if err != nil {
		return err
	}
	if !app.CanBeDeleted() {
		return platformservice.NewGuardViolationError("只能删除新建状态的申请")
	}

	images, err := s.appStore.DeleteIfNew(id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrStatusChanged) {
			return platformservice.NewGuardViolationError("只能删除新建状态的申请")
		}
		logrus.Errorf("❌ 删除申请 %d 失败: %v", id, err)
		return platformservice.NewInternalError("删除失败，请稍后重试")
	}

	s.deleteBlobs(ctx, images)
	logrus.Infof("✅ 用户 %d 删除申请 %d", userID, id)
	return nil
}

func (s *Service) findOwned(userID, id uint) (*model.Application, error) {
	app, err := s.appStore.FindByIDAndUserID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("申请不存在")
		}
		logrus.Errorf("❌ 查询申请 %d 失败: %v", id, err)
		return nil, platformservice.NewInternalError("获取申请失败")
	}
	return app, nil
}
