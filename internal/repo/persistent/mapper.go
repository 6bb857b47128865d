package persistent

import (
	"propmarket/internal/entity"
	"propmarket/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:            m.ID,
		Email:         m.Email,
		Username:      m.Username,
		Password:      m.Password,
		Name:          m.Name,
		AvatarURL:     m.AvatarURL,
		Role:          entity.UserRole(m.Role),
		ListingLimit:  m.ListingLimit,
		PackageExpiry: m.PackageExpiry,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:            e.ID,
		Email:         e.Email,
		Username:      e.Username,
		Password:      e.Password,
		Name:          e.Name,
		AvatarURL:     e.AvatarURL,
		Role:          string(e.Role),
		ListingLimit:  e.ListingLimit,
		PackageExpiry: e.PackageExpiry,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToPropertyEntity(m *model.PropertyModel) *entity.Property {
	if m == nil {
		return nil
	}

	images := make([]entity.PropertyImage, len(m.Images))
	for i := range m.Images {
		images[i] = entity.PropertyImage{
			ID:         m.Images[i].ID,
			PropertyID: m.Images[i].PropertyID,
			ImageURL:   m.Images[i].ImageURL,
			Position:   m.Images[i].Position,
		}
	}

	return &entity.Property{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		Description:  m.Description,
		Price:        m.Price,
		City:         m.City,
		Address:      m.Address,
		Bedrooms:     m.Bedrooms,
		Bathrooms:    m.Bathrooms,
		SurfaceArea:  m.SurfaceArea,
		PropertyType: m.PropertyType,
		ListingType:  entity.ListingType(m.ListingType),
		Status:       entity.PropertyStatus(m.Status),
		Views:        m.Views,
		Images:       images,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToPropertyModel(e *entity.Property) *model.PropertyModel {
	if e == nil {
		return nil
	}

	return &model.PropertyModel{
		ID:           e.ID,
		UserID:       e.UserID,
		Title:        e.Title,
		Description:  e.Description,
		Price:        e.Price,
		City:         e.City,
		Address:      e.Address,
		Bedrooms:     e.Bedrooms,
		Bathrooms:    e.Bathrooms,
		SurfaceArea:  e.SurfaceArea,
		PropertyType: e.PropertyType,
		ListingType:  string(e.ListingType),
		Status:       string(e.Status),
		Views:        e.Views,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToPackageEntity(m *model.ListingPackageModel) *entity.ListingPackage {
	if m == nil {
		return nil
	}

	return &entity.ListingPackage{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		ListingLimit: m.ListingLimit,
		DurationDays: m.DurationDays,
		Type:         entity.PackageType(m.Type),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToPackageModel(e *entity.ListingPackage) *model.ListingPackageModel {
	if e == nil {
		return nil
	}

	return &model.ListingPackageModel{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Price:        e.Price,
		ListingLimit: e.ListingLimit,
		DurationDays: e.DurationDays,
		Type:         string(e.Type),
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToOrderEntity(m *model.OrderModel) *entity.Order {
	if m == nil {
		return nil
	}

	return &entity.Order{
		ID:           m.ID,
		UserID:       m.UserID,
		PackageID:    m.PackageID,
		Package:      ToPackageEntity(m.Package),
		Amount:       m.Amount,
		Status:       entity.OrderStatus(m.Status),
		SnapToken:    m.SnapToken,
		SnapURL:      m.SnapURL,
		PaymentProof: m.PaymentProof,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToOrderModel(e *entity.Order) *model.OrderModel {
	if e == nil {
		return nil
	}

	return &model.OrderModel{
		ID:           e.ID,
		UserID:       e.UserID,
		PackageID:    e.PackageID,
		Amount:       e.Amount,
		Status:       string(e.Status),
		SnapToken:    e.SnapToken,
		SnapURL:      e.SnapURL,
		PaymentProof: e.PaymentProof,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToOfferEntity(m *model.OfferModel) *entity.Offer {
	if m == nil {
		return nil
	}

	return &entity.Offer{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		UserID:     m.UserID,
		Amount:     m.Amount,
		Status:     entity.OfferStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToOfferModel(e *entity.Offer) *model.OfferModel {
	if e == nil {
		return nil
	}

	return &model.OfferModel{
		ID:         e.ID,
		PropertyID: e.PropertyID,
		UserID:     e.UserID,
		Amount:     e.Amount,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func ToOfferHistoryModel(e *entity.OfferHistory) *model.OfferHistoryModel {
	if e == nil {
		return nil
	}

	return &model.OfferHistoryModel{
		ID:        e.ID,
		OfferID:   e.OfferID,
		SenderID:  e.SenderID,
		Action:    string(e.Action),
		Price:     e.Price,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

func ToTransactionEntity(m *model.TransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:            m.ID,
		PropertyID:    m.PropertyID,
		PropertyTitle: m.PropertyTitle,
		BuyerID:       m.BuyerID,
		SellerID:      m.SellerID,
		Amount:        m.Amount,
		Status:        entity.TransactionStatus(m.Status),
		PaymentProof:  m.PaymentProof,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToTransactionModel(e *entity.Transaction) *model.TransactionModel {
	if e == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:            e.ID,
		PropertyID:    e.PropertyID,
		PropertyTitle: e.PropertyTitle,
		BuyerID:       e.BuyerID,
		SellerID:      e.SellerID,
		Amount:        e.Amount,
		Status:        string(e.Status),
		PaymentProof:  e.PaymentProof,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
