package persistent

import (
	"propmarket/internal/entity"
	"propmarket/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateAvatar(userID, avatarURL string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	user.ID = userModel.ID
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(user *entity.User) error {
	return r.db.Save(ToUserModel(user)).Error
}

func (r *userRepository) UpdateAvatar(userID, avatarURL string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", userID).
		Update("avatar_url", avatarURL).Error
}
