package service

import (
	"errors"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupReq struct {
	Name        string `json:"name" binding:"omitempty,max=100"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required,e164|numeric,min=10,max=16"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginReq struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type UpdatePhoneReq struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,e164|numeric,min=10,max=16"`
}

type UpdatePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Signup(req SignupReq) (*AuthResult, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if exists, err := s.UserRepo.ExistsByPhone(req.PhoneNumber, ""); err != nil {
		return nil, err
	} else if exists {
		return nil, util.ErrPhoneRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    string(hashedPassword),
		Role:        model.RoleUser,
		LastLogin:   time.Now(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("User registered", zap.String("userID", user.ID))
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(req LoginReq) (*AuthResult, error) {
	user, err := s.UserRepo.FindByPhone(req.PhoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) CurrentUser(p model.Principal) (*model.User, error) {
	user, err := s.UserRepo.FindByID(p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdatePhone(p model.Principal, req UpdatePhoneReq) (*model.User, error) {
	user, err := s.CurrentUser(p)
	if err != nil {
		return nil, err
	}
	if exists, err := s.UserRepo.ExistsByPhone(req.PhoneNumber, user.ID); err != nil {
		return nil, err
	} else if exists {
		return nil, util.ErrPhoneRegistered
	}

	user.PhoneNumber = req.PhoneNumber
	if err := s.UserRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrPhoneRegistered
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdatePassword(p model.Principal, req UpdatePasswordReq) error {
	user, err := s.CurrentUser(p)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return util.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Update(user)
}

func (s *AuthService) ListUsers() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

// DevToken 为开发身份签发令牌，生产模式下路由不会注册
func (s *AuthService) DevToken(p model.Principal) (string, error) {
	return util.GenerateDevJWT(p, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}
