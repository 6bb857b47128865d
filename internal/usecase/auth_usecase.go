package usecase

import (
	"fmt"
	"io"

	"propmarket/internal/entity"
	"propmarket/internal/repo/persistent"
	"propmarket/pkg/jwt"
	"propmarket/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(email, username, password, name string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID string) (*entity.User, error)
	UploadAvatar(userID string, file io.Reader, contentType string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	uploader   Uploader
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	uploader Uploader,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		uploader:   uploader,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(email, username, password, name string) (*entity.User, string, error) {
	_, err := uc.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", fmt.Errorf("user with this email already exists")
	}

	_, err = uc.userRepo.GetByUsername(username)
	if err == nil {
		return nil, "", fmt.Errorf("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		Name:     name,
		Role:     entity.RoleUser,
		IsActive: true,
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		return nil, "", fmt.Errorf("account is deactivated")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) UploadAvatar(userID string, file io.Reader, contentType string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s", userID)
	avatarURL, err := uc.uploader.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := uc.userRepo.UpdateAvatar(userID, avatarURL); err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	user.AvatarURL = avatarURL
	user.Password = ""
	return user, nil
}
