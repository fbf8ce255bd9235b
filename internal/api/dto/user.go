package dto

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=20"`
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required" validate:"min=6,max=20"`
}

// CredentialDTO 登录凭证，用户名或邮箱二选一
type CredentialDTO struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password string  `json:"password" binding:"required"`
}

// TokenDTO 登录成功返回
type TokenDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 用户资料
type UserDTO struct {
	UserID       uint64 `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	ContentCount int64  `json:"content_count"`
	CreatedAt    string `json:"created_at,omitempty"`

	// SuperUpvoteUsedToday 今日超级赞是否已用，实时派生不走缓存
	SuperUpvoteUsedToday bool `json:"super_upvote_used_today"`
}

// UpdateProfileDTO 修改用户名或邮箱，指针字段支持局部更新
type UpdateProfileDTO struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=20"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// DeleteAccountDTO 注销确认，密码加确认短语双重校验
type DeleteAccountDTO struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// ChangePasswordDTO 修改密码
type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required" validate:"min=6,max=20"`
	NewPassword string `json:"new_password" binding:"required" validate:"min=6,max=20"`
}

// SettingsDTO 用户偏好设置，指针字段支持局部更新
type SettingsDTO struct {
	NotifyOnRemix     *bool `json:"notify_on_remix,omitempty"`
	NotifyOnQAAnswer  *bool `json:"notify_on_qa_answer,omitempty"`
	HideArchivedPosts *bool `json:"hide_archived_posts,omitempty"`
	AutoLoadImages    *bool `json:"auto_load_images,omitempty"`
	ShowNSFW          *bool `json:"show_nsfw,omitempty"`
	BlurNSFW          *bool `json:"blur_nsfw,omitempty"`
}
