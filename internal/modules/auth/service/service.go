package service

import (
	"errors"
	"strings"
	"time"

	"interior-request-server/internal/config"
	"interior-request-server/internal/consts"
	"interior-request-server/internal/model"
	"interior-request-server/internal/modules/auth/dto"
	"interior-request-server/internal/modules/auth/repo"
	platformservice "interior-request-server/internal/platform/service"
	"interior-request-server/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	userStore repo.UserStore
}

func New(userStore repo.UserStore) *Service {
	return &Service{userStore: userStore}
}

// RegistrationRules 返回前端渲染注册表单需要的规则。
func (s *Service) RegistrationRules() dto.RegisterFormResponse {
	return dto.RegisterFormResponse{
		UsernamePattern:   utils.UsernamePattern.String(),
		UsernameMaxLength: utils.UsernameMaxLength,
		FullNameMaxLength: utils.FullNameMaxLength,
		RequiredFields:    []string{"username", "full_name", "email", "password", "password_confirm", "agreement"},
	}
}

// ValidateRegistration 校验全部注册字段，一次返回所有字段错误。不写入任何数据。
func (s *Service) ValidateRegistration(req dto.RegisterRequest) error {
	var errs platformservice.FieldErrors

	if ok, msg := utils.ValidateUsername(req.Username); !ok {
		errs.Add("username", msg)
	} else if taken, err := s.userStore.FieldExists(consts.UserFieldUsername, req.Username); err != nil {
		logrus.Errorf("❌ 检查用户名失败: %v", err)
		return platformservice.NewInternalError("注册失败，请稍后重试")
	} else if taken {
		errs.Add("username", "用户名已存在")
	}

	fullName := strings.TrimSpace(req.FullName)
	switch {
	case fullName == "":
		errs.Add("full_name", "姓名不能为空")
	case len([]rune(fullName)) > utils.FullNameMaxLength:
		errs.Add("full_name", "姓名长度不能超过 100 个字符")
	}

	if ok, msg := utils.ValidateEmail(req.Email); !ok {
		errs.Add("email", msg)
	} else if taken, err := s.userStore.FieldExists(consts.UserFieldEmail, req.Email); err != nil {
		logrus.Errorf("❌ 检查邮箱失败: %v", err)
		return platformservice.NewInternalError("注册失败，请稍后重试")
	} else if taken {
		errs.Add("email", "邮箱已被注册")
	}

	if req.Password == "" {
		errs.Add("password", "密码不能为空")
	}
	// 密码本身无效时不再报告确认不一致
	if !errs.Has("password") && req.PasswordConfirm != req.Password {
		errs.Add("password_confirm", "两次输入的密码不一致")
	}
	if !req.Agreement {
		errs.Add("agreement", "必须同意个人数据处理条款")
	}

	return errs.Err()
}

// RegisterUser 校验通过后创建普通用户。
func (s *Service) RegisterUser(req dto.RegisterRequest) (*model.User, error) {
	if err := s.ValidateRegistration(req); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformservice.NewInternalError("密码加密失败")
	}

	user := &model.User{
		Username: req.Username,
		FullName: strings.TrimSpace(req.FullName),
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userStore.Create(user); err != nil {
		// 并发注册时唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, platformservice.NewConflictError("用户名或邮箱已被注册")
		}
		logrus.Errorf("❌ 创建用户失败: %v", err)
		return nil, platformservice.NewInternalError("注册失败，请稍后重试")
	}

	logrus.Infof("✅ 新用户注册: %s (id=%d)", user.Username, user.ID)
	return user, nil
}

// LoginUser 执行登录鉴权并返回登录令牌。
func (s *Service) LoginUser(username, password string) (string, *model.User, error) {
	user, err := s.userStore.FindByUsername(username)
	if err != nil {
		return "", nil, platformservice.NewUnauthorizedError("用户名或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, platformservice.NewUnauthorizedError("用户名或密码错误")
	}

	token, err := s.IssueLoginToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) IssueLoginToken(user *model.User) (string, error) {
	hours := config.Get().JWT.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	token, err := utils.GenerateLoginToken(user.ID, user.Username, user.Staff, time.Hour*time.Duration(hours))
	if err != nil {
		return "", platformservice.NewInternalError("登录失败，请稍后重试")
	}
	return token, nil
}

func (s *Service) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("用户不存在")
		}
		return nil, platformservice.NewInternalError("获取用户信息失败")
	}
	return user, nil
}
