package repository

import (
	"go-partsledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerRepository interface {
	Create(partner *model.Partner) error
	FindAll() ([]model.Partner, error)
	FindByID(id uuid.UUID) (*model.Partner, error)
	Update(partner *model.Partner) error
	Delete(id uuid.UUID) error
}

type partnerRepo struct {
	db *gorm.DB
}

func NewPartnerRepo(db *gorm.DB) PartnerRepository {
	return &partnerRepo{db}
}

func (r *partnerRepo) Create(partner *model.Partner) error {
	return r.db.Create(partner).Error
}

func (r *partnerRepo) FindAll() ([]model.Partner, error) {
	var partners []model.Partner
	err := r.db.Order("name ASC").Find(&partners).Error
	return partners, err
}

func (r *partnerRepo) FindByID(id uuid.UUID) (*model.Partner, error) {
	var partner model.Partner
	err := r.db.First(&partner, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepo) Update(partner *model.Partner) error {
	return r.db.Save(partner).Error
}

func (r *partnerRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Partner{}, "id = ?", id).Error
}
