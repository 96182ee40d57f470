package service

import (
	"errors"

	"canvas_blog/internal/domain/user/model"
	"canvas_blog/internal/domain/user/repository"
	"canvas_blog/internal/pkg/apperr"
	"canvas_blog/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// UserService 用户服务
type UserService interface {
	Register(email, password, nickname string) (*model.User, error)
	Login(email, password string) (string, *model.User, error)
	GetProfile(id string) (*model.User, error)
	UpdateProfile(userID, nickname, avatarURL string) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Register 注册新用户
// 邮箱已占用返回 Conflict，错误信息不区分"已注册"细节之外的情况
func (s *userService) Register(email, password, nickname string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, apperr.New(apperr.ErrInvalidArgument, "email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrInternal, "failed to hash password", err)
	}

	user := &model.User{
		Email:    email,
		Password: string(hashed),
		Nickname: nickname,
	}
	if err := s.users.Create(user); err != nil {
		if apperr.GetCode(err) == apperr.ErrConflict {
			return nil, apperr.New(apperr.ErrConflict, "email already registered")
		}
		return nil, err
	}
	return user, nil
}

// Login 登录，成功返回 JWT
// 用户不存在和密码错误返回同一个错误，不给枚举邮箱的机会
func (s *userService) Login(email, password string) (string, *model.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if apperr.GetCode(err) == apperr.ErrNotFound {
			return "", nil, apperr.New(apperr.ErrInvalidArgument, "invalid email or password")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", nil, apperr.New(apperr.ErrInvalidArgument, "invalid email or password")
		}
		return "", nil, apperr.Wrap(apperr.ErrInternal, "failed to verify password", err)
	}

	token, _, err := utils.GenerateToken(user.ID)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.ErrInternal, "failed to issue token", err)
	}
	return token, user, nil
}

// GetProfile 用户资料
func (s *userService) GetProfile(id string) (*model.User, error) {
	return s.users.GetByID(id)
}

// UpdateProfile 更新昵称和头像
func (s *userService) UpdateProfile(userID, nickname, avatarURL string) (*model.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if nickname != "" {
		user.Nickname = nickname
	}
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
