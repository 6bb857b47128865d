package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"propmarket/internal/entity"
	"propmarket/internal/repo/persistent"
	"propmarket/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrQuotaExceeded  = errors.New("listing quota exceeded; purchase a package to post more")
	ErrPackageExpired = errors.New("listing package expired; renew to post new listings")
	ErrNotOwner       = errors.New("property does not belong to caller")
)

// viewFlushEvery controls how many Redis-counted views accumulate before the
// counter is flushed into the property row.
const viewFlushEvery = 10

type PropertyUseCase interface {
	Create(userID string, property *entity.Property) (*entity.Property, error)
	Get(propertyID string) (*entity.Property, error)
	Update(userID string, property *entity.Property) (*entity.Property, error)
	Delete(userID, propertyID string) error
	Search(filter entity.PropertyFilter) ([]*entity.Property, error)
	ListMine(userID string) ([]*entity.Property, error)
	UploadImage(userID, propertyID string, file io.Reader, contentType string, position int) (*entity.PropertyImage, error)
}

type propertyUseCase struct {
	propertyRepo persistent.PropertyRepository
	userRepo     persistent.UserRepository
	uploader     Uploader
	redisClient  *redis.Client
	logger       *logger.Logger
}

func NewPropertyUseCase(
	propertyRepo persistent.PropertyRepository,
	userRepo persistent.UserRepository,
	uploader Uploader,
	redisClient *redis.Client,
	logger *logger.Logger,
) PropertyUseCase {
	return &propertyUseCase{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		uploader:     uploader,
		redisClient:  redisClient,
		logger:       logger,
	}
}

// Create posts a new listing, enforcing the owner's quota: the number of live
// listings must stay under listingLimit, and a subscription expiry, when set,
// must still be in the future.
func (uc *propertyUseCase) Create(userID string, property *entity.Property) (*entity.Property, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.PackageExpiry != nil && user.PackageExpiry.Before(time.Now()) {
		return nil, ErrPackageExpired
	}

	live, err := uc.propertyRepo.CountLiveByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	if live >= int64(user.ListingLimit) {
		return nil, ErrQuotaExceeded
	}

	property.UserID = userID
	if property.Status == "" {
		property.Status = entity.PropertyDraft
	}
	if err := uc.propertyRepo.Create(property); err != nil {
		uc.logger.Error("Failed to create property: %v", err)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	return property, nil
}

func (uc *propertyUseCase) Get(propertyID string) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	uc.countView(propertyID)
	return property, nil
}

func (uc *propertyUseCase) Update(userID string, property *entity.Property) (*entity.Property, error) {
	existing, err := uc.propertyRepo.GetByID(property.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	property.UserID = existing.UserID
	property.Views = existing.Views
	property.CreatedAt = existing.CreatedAt
	if err := uc.propertyRepo.Update(property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return property, nil
}

func (uc *propertyUseCase) Delete(userID, propertyID string) error {
	existing, err := uc.propertyRepo.GetByID(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("failed to load property: %w", err)
	}
	if existing.UserID != userID {
		return ErrNotOwner
	}

	if err := uc.propertyRepo.Delete(propertyID); err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func (uc *propertyUseCase) Search(filter entity.PropertyFilter) ([]*entity.Property, error) {
	properties, err := uc.propertyRepo.Search(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	return properties, nil
}

func (uc *propertyUseCase) ListMine(userID string) ([]*entity.Property, error) {
	properties, err := uc.propertyRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (uc *propertyUseCase) UploadImage(userID, propertyID string, file io.Reader, contentType string, position int) (*entity.PropertyImage, error) {
	existing, err := uc.propertyRepo.GetByID(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	key := fmt.Sprintf("properties/%s/%s", propertyID, uuid.New().String())
	imageURL, err := uc.uploader.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload image for property %s: %v", propertyID, err)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image := &entity.PropertyImage{
		PropertyID: propertyID,
		ImageURL:   imageURL,
		Position:   position,
	}
	if err := uc.propertyRepo.AddImage(image); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	return image, nil
}

// countView buffers view counts in Redis and flushes them to the row in
// batches. Best effort: a missing Redis connection just skips counting.
func (uc *propertyUseCase) countView(propertyID string) {
	if uc.redisClient == nil {
		return
	}

	ctx := context.Background()
	key := fmt.Sprintf("property_views:%s", propertyID)
	count, err := uc.redisClient.Incr(ctx, key).Result()
	if err != nil {
		uc.logger.Warn("Failed to count view for property %s: %v", propertyID, err)
		return
	}

	if count%viewFlushEvery == 0 {
		if err := uc.propertyRepo.AddViews(propertyID, viewFlushEvery); err != nil {
			uc.logger.Warn("Failed to flush views for property %s: %v", propertyID, err)
		}
	}
}
