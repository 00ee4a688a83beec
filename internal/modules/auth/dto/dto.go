package dto

import "interior-request-server/internal/model"

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest 不使用 binding 规则，所有字段由服务层统一校验并返回字段错误。
type RegisterRequest struct {
	Username        string `json:"username" form:"username"`
	FullName        string `json:"full_name" form:"full_name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm"`
	Agreement       bool   `json:"agreement" form:"agreement"`
}

type RegisterFormResponse struct {
	UsernamePattern   string   `json:"username_pattern"`
	UsernameMaxLength int      `json:"username_max_length"`
	FullNameMaxLength int      `json:"full_name_max_length"`
	RequiredFields    []string `json:"required_fields"`
}

type UserProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Staff    bool   `json:"staff"`
}

func NewUserProfile(user *model.User) UserProfile {
	return UserProfile{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Staff:    user.Staff,
	}
}

type LoginResponse struct {
	Token   string      `json:"token"`
	Message string      `json:"message"`
	User    UserProfile `json:"user"`
}
