package usecase

import (
	"errors"
	"fmt"

	"propmarket/internal/entity"
	"propmarket/internal/repo/persistent"

	"gorm.io/gorm"
)

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrInvalidPackage  = errors.New("package price and listing limit must be positive")
)

type PackageUseCase interface {
	ListActive() ([]*entity.ListingPackage, error)
	List() ([]*entity.ListingPackage, error)
	Create(pkg *entity.ListingPackage) (*entity.ListingPackage, error)
	Update(pkg *entity.ListingPackage) (*entity.ListingPackage, error)
	Deactivate(packageID string) error
}

type packageUseCase struct {
	packageRepo persistent.PackageRepository
}

func NewPackageUseCase(packageRepo persistent.PackageRepository) PackageUseCase {
	return &packageUseCase{packageRepo: packageRepo}
}

func (uc *packageUseCase) ListActive() ([]*entity.ListingPackage, error) {
	packages, err := uc.packageRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (uc *packageUseCase) List() ([]*entity.ListingPackage, error) {
	packages, err := uc.packageRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (uc *packageUseCase) Create(pkg *entity.ListingPackage) (*entity.ListingPackage, error) {
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	if err := uc.packageRepo.Create(pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	return pkg, nil
}

func (uc *packageUseCase) Update(pkg *entity.ListingPackage) (*entity.ListingPackage, error) {
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	existing, err := uc.packageRepo.GetByID(pkg.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}

	pkg.CreatedAt = existing.CreatedAt
	if err := uc.packageRepo.Update(pkg); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return pkg, nil
}

func (uc *packageUseCase) Deactivate(packageID string) error {
	pkg, err := uc.packageRepo.GetByID(packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPackageNotFound
		}
		return fmt.Errorf("failed to load package: %w", err)
	}

	pkg.IsActive = false
	if err := uc.packageRepo.Update(pkg); err != nil {
		return fmt.Errorf("failed to deactivate package: %w", err)
	}
	return nil
}

func validatePackage(pkg *entity.ListingPackage) error {
	if pkg.Price <= 0 || pkg.ListingLimit <= 0 {
		return ErrInvalidPackage
	}
	if pkg.Type != entity.PackageTopup && pkg.Type != entity.PackageSubscription {
		return ErrInvalidPackage
	}
	if pkg.Type == entity.PackageSubscription && pkg.DurationDays <= 0 {
		return ErrInvalidPackage
	}
	return nil
}
