package persistent

import (
	"propmarket/internal/entity"
	"propmarket/internal/model"

	"gorm.io/gorm"
)

type PropertyRepository interface {
	Create(property *entity.Property) error
	GetByID(id string) (*entity.Property, error)
	Update(property *entity.Property) error
	Delete(id string) error
	Search(filter entity.PropertyFilter) ([]*entity.Property, error)
	ListByOwner(userID string) ([]*entity.Property, error)
	CountLiveByOwner(userID string) (int64, error)
	AddImage(image *entity.PropertyImage) error
	AddViews(id string, delta int64) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *entity.Property) error {
	propertyModel := ToPropertyModel(property)
	if err := r.db.Create(propertyModel).Error; err != nil {
		return err
	}
	property.ID = propertyModel.ID
	return nil
}

func (r *propertyRepository) GetByID(id string) (*entity.Property, error) {
	var propertyModel model.PropertyModel
	err := r.db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", id).First(&propertyModel).Error
	if err != nil {
		return nil, err
	}
	return ToPropertyEntity(&propertyModel), nil
}

func (r *propertyRepository) Update(property *entity.Property) error {
	return r.db.Save(ToPropertyModel(property)).Error
}

func (r *propertyRepository) Delete(id string) error {
	return r.db.Delete(&model.PropertyModel{}, "id = ?", id).Error
}

func (r *propertyRepository) Search(filter entity.PropertyFilter) ([]*entity.Property, error) {
	query := r.db.Model(&model.PropertyModel{}).
		Preload("Images").
		Where("status = ?", string(entity.PropertyPublished))

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if filter.ListingType != "" {
		query = query.Where("listing_type = ?", filter.ListingType)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query = query.Order("created_at DESC").Limit(limit).Offset(filter.Offset)

	var propertyModels []model.PropertyModel
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]*entity.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = ToPropertyEntity(&propertyModels[i])
	}
	return properties, nil
}

func (r *propertyRepository) ListByOwner(userID string) ([]*entity.Property, error) {
	var propertyModels []model.PropertyModel
	err := r.db.Preload("Images").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&propertyModels).Error
	if err != nil {
		return nil, err
	}

	properties := make([]*entity.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = ToPropertyEntity(&propertyModels[i])
	}
	return properties, nil
}

// CountLiveByOwner counts the listings that consume quota: anything not yet
// sold or archived.
func (r *propertyRepository) CountLiveByOwner(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.PropertyModel{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{string(entity.PropertyDraft), string(entity.PropertyPublished)}).
		Count(&count).Error
	return count, err
}

func (r *propertyRepository) AddImage(image *entity.PropertyImage) error {
	imageModel := &model.PropertyImageModel{
		ID:         image.ID,
		PropertyID: image.PropertyID,
		ImageURL:   image.ImageURL,
		Position:   image.Position,
	}
	if err := r.db.Create(imageModel).Error; err != nil {
		return err
	}
	image.ID = imageModel.ID
	return nil
}

func (r *propertyRepository) AddViews(id string, delta int64) error {
	return r.db.Model(&model.PropertyModel{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + ?", delta)).Error
}
