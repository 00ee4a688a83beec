package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"interior-request-server/internal/metrics"
	"interior-request-server/internal/model"
	"interior-request-server/internal/modules/application/dto"
	"interior-request-server/internal/modules/application/repo"
	platformservice "interior-request-server/internal/platform/service"
	"interior-request-server/internal/workflow"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	maxPageSize = 100
	dateLayout  = "2006-01-02"
)

// StatusChangeInput 员工变更状态的原始表单值。
type StatusChangeInput struct {
	Status      string
	Comment     string
	DesignImage *multipart.FileHeader
}

// normalizePagination 归一化分页参数，确保页码与页大小有合理范围。
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// parseDate 解析 YYYY-MM-DD（UTC），空值返回 nil，格式错误记入 errs。
func parseDate(errs *platformservice.FieldErrors, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	day, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		errs.Add(field, "日期格式应为 YYYY-MM-DD")
		return nil
	}
	return &day
}

func (s *Service) AdminList(q dto.AdminListQuery) (*dto.ApplicationListResponse, error) {
	var (
		errs   platformservice.FieldErrors
		filter repo.AdminFilter
	)

	if raw := strings.TrimSpace(q.Status); raw != "" {
		status, ok := model.ParseApplicationStatus(raw)
		if !ok {
			errs.Add("status", "无效的状态")
		} else {
			filter.Status = &status
		}
	}
	if raw := strings.TrimSpace(q.Category); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs.Add("category", "无效的分类")
		} else {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}
	filter.CreatedFrom = parseDate(&errs, "created_from", q.CreatedFrom)
	if to := parseDate(&errs, "created_to", q.CreatedTo); to != nil {
		before := to.AddDate(0, 0, 1)
		filter.CreatedBefore = &before
	}
	if filter.CreatedFrom != nil && filter.CreatedBefore != nil && !filter.CreatedFrom.Before(*filter.CreatedBefore) {
		errs.Add("created_to", "结束日期不能早于开始日期")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	page, pageSize := normalizePagination(q.Page, q.PageSize)
	filter.Search = strings.TrimSpace(q.Query)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	apps, total, err := s.appStore.AdminList(filter)
	if err != nil {
		logrus.Errorf("❌ 查询申请列表失败: %v", err)
		return nil, platformservice.NewInternalError("获取申请列表失败")
	}

	list := s.toResponses(apps)
	for i := range apps {
		canChange := apps[i].CanChangeStatus()
		list[i].CanChangeStatus = &canChange
	}
	return &dto.ApplicationListResponse{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *Service) AdminGet(id uint) (*dto.ApplicationResponse, error) {
	app, err := s.findAny(id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(app)
	canChange := app.CanChangeStatus()
	resp.CanChangeStatus = &canChange
	return &resp, nil
}

// ChangeStatus 执行状态变更：守卫检查 -> 表单校验 -> 流转规则 -> 保存设计图 -> 条件写入。
func (s *Service) ChangeStatus(ctx context.Context, staffID, id uint, in StatusChangeInput) (*dto.ApplicationResponse, error) {
	app, err := s.findAny(id)
	if err != nil {
		return nil, err
	}
	from := string(app.Status)
	target := strings.TrimSpace(in.Status)
	// 指标标签只使用已知状态
	label := target
	if _, ok := model.ParseApplicationStatus(target); !ok {
		label = "unknown"
	}

	if !app.CanChangeStatus() {
		metrics.RecordTransition(from, label, "locked")
		return nil, platformservice.NewStatusLockedError("申请状态已变更过，不能再次修改")
	}

	var errs platformservice.FieldErrors
	if _, ok := model.ParseApplicationStatus(target); !ok {
		errs.Add("status", workflow.ErrUnknownStatus.Error())
	}
	if in.DesignImage != nil {
		validateImageField(&errs, "design_image", in.DesignImage)
	}
	if err := errs.Err(); err != nil {
		metrics.RecordTransition(from, label, "invalid")
		return nil, err
	}

	outcome, err := workflow.Transition(app.Status, workflow.Request{
		Target:         model.ApplicationStatus(target),
		Comment:        in.Comment,
		HasDesignImage: in.DesignImage != nil,
	})
	if err != nil {
		if errors.Is(err, workflow.ErrStatusLocked) {
			metrics.RecordTransition(from, label, "locked")
			return nil, platformservice.NewStatusLockedError("申请状态已变更过，不能再次修改")
		}
		metrics.RecordTransition(from, label, "invalid")
		return nil, platformservice.NewFieldValidationError([]platformservice.FieldError{{Field: "status", Message: err.Error()}})
	}

	var design *model.ApplicationImage
	if outcome.AttachDesign {
		design, err = s.storeUpload(ctx, designFolder, in.DesignImage, model.ImageTypeDesign)
		if err != nil {
			metrics.RecordTransition(from, label, "storage_error")
			logrus.Errorf("❌ 保存设计图失败: %v", err)
			return nil, platformservice.NewStorageError("文件保存失败，请稍后重试")
		}
	}

	if err := s.appStore.ApplyTransition(id, outcome, design); err != nil {
		if design != nil {
			s.discardBlob(ctx, design.Image)
		}
		if errors.Is(err, repo.ErrStatusChanged) {
			metrics.RecordTransition(from, label, "locked")
			return nil, platformservice.NewStatusLockedError("申请状态已变更过，不能再次修改")
		}
		metrics.RecordTransition(from, label, "error")
		logrus.Errorf("❌ 变更申请 %d 状态失败: %v", id, err)
		return nil, platformservice.NewInternalError("状态变更失败，请稍后重试")
	}

	metrics.RecordTransition(from, label, "applied")
	logrus.Infof("✅ 员工 %d 将申请 %d 状态从 %s 变更为 %s", staffID, id, from, outcome.Status)

	return s.AdminGet(id)
}

func (s *Service) findAny(id uint) (*model.Application, error) {
	app, err := s.appStore.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("申请不存在")
		}
		logrus.Errorf("❌ 查询申请 %d 失败: %v", id, err)
		return nil, platformservice.NewInternalError("获取申请失败")
	}
	return app, nil
}
