package consts

// UserField 是允许做唯一性检查的用户字段。
type UserField string

const (
	UserFieldUsername UserField = "username"
	UserFieldEmail    UserField = "email"
)
