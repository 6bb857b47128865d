package persistent

import (
	"propmarket/internal/entity"
	"propmarket/internal/model"

	"gorm.io/gorm"
)

type PackageRepository interface {
	Create(pkg *entity.ListingPackage) error
	GetByID(id string) (*entity.ListingPackage, error)
	Update(pkg *entity.ListingPackage) error
	ListActive() ([]*entity.ListingPackage, error)
	List() ([]*entity.ListingPackage, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(pkg *entity.ListingPackage) error {
	packageModel := ToPackageModel(pkg)
	if err := r.db.Create(packageModel).Error; err != nil {
		return err
	}
	pkg.ID = packageModel.ID
	return nil
}

func (r *packageRepository) GetByID(id string) (*entity.ListingPackage, error) {
	var packageModel model.ListingPackageModel
	if err := r.db.Where("id = ?", id).First(&packageModel).Error; err != nil {
		return nil, err
	}
	return ToPackageEntity(&packageModel), nil
}

func (r *packageRepository) Update(pkg *entity.ListingPackage) error {
	return r.db.Save(ToPackageModel(pkg)).Error
}

func (r *packageRepository) ListActive() ([]*entity.ListingPackage, error) {
	return r.list(r.db.Where("is_active = ?", true))
}

func (r *packageRepository) List() ([]*entity.ListingPackage, error) {
	return r.list(r.db)
}

func (r *packageRepository) list(query *gorm.DB) ([]*entity.ListingPackage, error) {
	var packageModels []model.ListingPackageModel
	if err := query.Order("price ASC").Find(&packageModels).Error; err != nil {
		return nil, err
	}

	packages := make([]*entity.ListingPackage, len(packageModels))
	for i := range packageModels {
		packages[i] = ToPackageEntity(&packageModels[i])
	}
	return packages, nil
}
