package dto

import (
	"time"

	"interior-request-server/internal/model"
)

type CategoryOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FormOptions 提交申请表单所需的选项与限制。
type FormOptions struct {
	Categories        []CategoryOption          `json:"categories"`
	AllowedExtensions []string                  `json:"allowed_extensions"`
	MaxImageBytes     int64                     `json:"max_image_bytes"`
	Statuses          []model.ApplicationStatus `json:"statuses"`
}

type ImageResponse struct {
	ID           uint            `json:"id"`
	URL          string          `json:"url"`
	OriginalName string          `json:"original_name"`
	Size         int64           `json:"size"`
	ImageType    model.ImageType `json:"image_type"`
	UploadedAt   time.Time       `json:"uploaded_at"`
}

type ApplicantResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type ApplicationResponse struct {
	ID              uint                    `json:"id"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Status          model.ApplicationStatus `json:"status"`
	Category        CategoryOption          `json:"category"`
	CreatedAt       time.Time               `json:"created_at"`
	AdminComment    *string                 `json:"admin_comment"`
	Images          []ImageResponse         `json:"images"`
	User            *ApplicantResponse      `json:"user,omitempty"`
	CanBeDeleted    *bool                   `json:"can_be_deleted,omitempty"`
	CanChangeStatus *bool                   `json:"can_change_status,omitempty"`
}

type ApplicationListResponse struct {
	List     []ApplicationResponse `json:"list"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// AdminListQuery 员工列表的查询参数，原样保留字符串以便统一校验。
type AdminListQuery struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Query    string `form:"q"`
	// CreatedFrom/CreatedTo 为 YYYY-MM-DD，按 UTC 自然日闭区间过滤
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}
