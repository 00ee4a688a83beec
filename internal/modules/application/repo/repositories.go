package repo

import (
	"errors"
	"time"

	"interior-request-server/internal/model"
	"interior-request-server/internal/workflow"

	"gorm.io/gorm"
)

// ErrStatusChanged 条件写入时申请已不是新建状态（或已不存在）。
var ErrStatusChanged = errors.New("application status changed concurrently")

type AdminFilter struct {
	Status     *model.ApplicationStatus
	CategoryID *uint
	// Search 按字面匹配标题、描述、用户名与分类名，% 与 _ 不作通配符
	Search string
	// CreatedFrom 含，CreatedBefore 不含
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
	Offset        int
	Limit         int
}

type ApplicationStore interface {
	CreateWithImage(app *model.Application, image *model.ApplicationImage) error
	FindByID(id uint) (*model.Application, error)
	FindByIDAndUserID(id, userID uint) (*model.Application, error)
	ListByUser(userID uint, status *model.ApplicationStatus) ([]model.Application, error)
	AdminList(filter AdminFilter) ([]model.Application, int64, error)
	// DeleteIfNew 仅在申请属于该用户且仍为新建状态时删除，返回被删除的图片记录。
	DeleteIfNew(id, userID uint) ([]model.ApplicationImage, error)
	// ApplyTransition 仅在申请仍为新建状态时写入状态变更结果。
	ApplyTransition(id uint, outcome workflow.Outcome, designImage *model.ApplicationImage) error
}

type CategoryLookup interface {
	List() ([]model.Category, error)
	Exists(id uint) (bool, error)
}

func NewApplicationRepository(db *gorm.DB) ApplicationStore {
	return &ApplicationRepository{db: db}
}
