package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/model"
	"Mosaic/internal/pkg/consts"
	"Mosaic/internal/pkg/mongo"
	"Mosaic/internal/pkg/redis"
	"Mosaic/internal/pkg/security"
	"Mosaic/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) error
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, id uint64) (*dto.UserDTO, error)
	// UpdateProfile 修改用户名或邮箱，用户名变更经 CDC 同步进搜索索引
	UpdateProfile(ctx context.Context, id uint64, req *dto.UpdateProfileDTO) error
	ChangePassword(ctx context.Context, id uint64, req *dto.ChangePasswordDTO) error
	GetSettings(ctx context.Context, id uint64) (*dto.SettingsDTO, error)
	UpdateSettings(ctx context.Context, id uint64, req *dto.SettingsDTO) error
	// DeleteAccount 注销账号，内容与关注关系一并清除
	DeleteAccount(ctx context.Context, id uint64, req *dto.DeleteAccountDTO) error
}

// deleteAccountConfirmPhrase 注销必须原样回传的确认短语
const deleteAccountConfirmPhrase = "DELETE MY ACCOUNT"

type userServiceImpl struct {
	db               *gorm.DB
	userRepo         repository.UserRepo
	contentRepo      repository.ContentRepo
	hashtagRepo      repository.HashtagRepo
	savedRepo        repository.SavedRepo
	moderationRepo   repository.ModerationRepo
	notificationRepo mongo.NotificationRepo
}

func NewUserService(
	db *gorm.DB,
	userRepo repository.UserRepo,
	contentRepo repository.ContentRepo,
	hashtagRepo repository.HashtagRepo,
	savedRepo repository.SavedRepo,
	moderationRepo repository.ModerationRepo,
	notificationRepo mongo.NotificationRepo,
) UserService {
	return &userServiceImpl{
		db:               db,
		userRepo:         userRepo,
		contentRepo:      contentRepo,
		hashtagRepo:      hashtagRepo,
		savedRepo:        savedRepo,
		moderationRepo:   moderationRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) error {
	if _, err := s.userRepo.GetUserByUsername(ctx, req.Username); err == nil {
		return ErrUserUsernameExist
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if _, err := s.userRepo.GetUserByEmail(ctx, req.Email); err == nil {
		return ErrUserEmailExist
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,

		NotifyOnRemix:    true,
		NotifyOnQAAnswer: true,
		AutoLoadImages:   true,
		BlurNSFW:         true,
	}

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if isDuplicateError(err) {
			return ErrUserExist
		}
		return err
	}
	return nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	var user *model.User
	var err error

	switch {
	case req.Username != nil:
		user, err = s.userRepo.GetUserByUsername(ctx, *req.Username)
	case req.Email != nil:
		user, err = s.userRepo.GetUserByEmail(ctx, *req.Email)
	default:
		return nil, ErrMissingLoginCredentials
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err = security.CheckPasswordHash(req.Password, user.PasswordHash); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenDTO{Token: token, User: profile}, nil
}

// Logout 把 Token 签名写入黑名单，有效期覆盖 Token 剩余寿命
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, time.Hour*24*7)
}

// GetProfile 内容数走短缓存，今日超级赞状态实时派生，跨零点不会读到旧值
func (s *userServiceImpl) GetProfile(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	key := consts.UserProfileKey + strconv.FormatUint(id, 10)
	contentCount, err := redis.GetInt64(ctx, key)
	if err != nil {
		if contentCount, err = s.contentRepo.CountByUser(ctx, id); err != nil {
			return nil, err
		}
		if err = redis.SetWithExpiration(ctx, key, contentCount, time.Hour); err != nil {
			log.WarnContext(ctx, "cache content count failed", "err", err, "key", key)
		}
	}

	usedToday := user.LastSuperUpvoteAt != nil && !user.LastSuperUpvoteAt.Before(startOfDay(time.Now()))

	return &dto.UserDTO{
		UserID:               user.ID,
		Username:             user.Username,
		Email:                user.Email,
		ContentCount:         contentCount,
		CreatedAt:            user.CreatedAt.Format(time.RFC3339),
		SuperUpvoteUsedToday: usedToday,
	}, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, id uint64, req *dto.UpdateProfileDTO) error {
	updates := make(map[string]interface{})
	if req.Username != nil {
		if _, err := s.userRepo.GetUserByUsername(ctx, *req.Username); err == nil {
			return ErrUserUsernameExist
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		if _, err := s.userRepo.GetUserByEmail(ctx, *req.Email); err == nil {
			return ErrUserEmailExist
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.userRepo.UpdateUser(ctx, id, updates); err != nil {
		if isDuplicateError(err) {
			return ErrUserExist
		}
		return err
	}
	return nil
}

func (s *userServiceImpl) ChangePassword(ctx context.Context, id uint64, req *dto.ChangePasswordDTO) error {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err = security.CheckPasswordHash(req.OldPassword, user.PasswordHash); err != nil {
		return ErrPasswordIncorrect
	}

	passwordHash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateUser(ctx, id, map[string]interface{}{"password_hash": passwordHash})
}

func (s *userServiceImpl) GetSettings(ctx context.Context, id uint64) (*dto.SettingsDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &dto.SettingsDTO{
		NotifyOnRemix:     &user.NotifyOnRemix,
		NotifyOnQAAnswer:  &user.NotifyOnQAAnswer,
		HideArchivedPosts: &user.HideArchivedPosts,
		AutoLoadImages:    &user.AutoLoadImages,
		ShowNSFW:          &user.ShowNSFW,
		BlurNSFW:          &user.BlurNSFW,
	}, nil
}

// UpdateSettings 局部更新，只落非空字段
func (s *userServiceImpl) UpdateSettings(ctx context.Context, id uint64, req *dto.SettingsDTO) error {
	updates := make(map[string]interface{})
	if req.NotifyOnRemix != nil {
		updates["notify_on_remix"] = *req.NotifyOnRemix
	}
	if req.NotifyOnQAAnswer != nil {
		updates["notify_on_qa_answer"] = *req.NotifyOnQAAnswer
	}
	if req.HideArchivedPosts != nil {
		updates["hide_archived_posts"] = *req.HideArchivedPosts
	}
	if req.AutoLoadImages != nil {
		updates["auto_load_images"] = *req.AutoLoadImages
	}
	if req.ShowNSFW != nil {
		updates["show_nsfw"] = *req.ShowNSFW
	}
	if req.BlurNSFW != nil {
		updates["blur_nsfw"] = *req.BlurNSFW
	}
	if len(updates) == 0 {
		return nil
	}
	return s.userRepo.UpdateUser(ctx, id, updates)
}

func (s *userServiceImpl) DeleteAccount(ctx context.Context, id uint64, req *dto.DeleteAccountDTO) error {
	if req.Confirmation != deleteAccountConfirmPhrase {
		return ErrParamInvalid
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err = security.CheckPasswordHash(req.Password, user.PasswordHash); err != nil {
		return ErrPasswordIncorrect
	}

	contents, err := s.contentRepo.ListByUser(ctx, id, 10000, 0)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contentRepo := s.contentRepo.WithTx(tx)
		for _, c := range contents {
			if err := contentRepo.DeleteContent(ctx, c.ID); err != nil {
				return err
			}
		}
		if err := s.hashtagRepo.DeleteFollowsByUser(ctx, id); err != nil {
			return err
		}
		if err := s.savedRepo.DeleteSavedByUser(ctx, id); err != nil {
			return err
		}
		if err := s.moderationRepo.DeleteHidesByUser(ctx, id); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).DeleteUser(ctx, id)
	})
	if err != nil {
		return err
	}

	if err = s.notificationRepo.DeleteByRecipient(ctx, id); err != nil {
		log.WarnContext(ctx, "delete notifications failed", "err", err, "userID", id)
	}
	return redis.DeleteKey(ctx, consts.UserProfileKey+strconv.FormatUint(id, 10))
}
