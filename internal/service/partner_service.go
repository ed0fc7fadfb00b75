package service

import (
	"errors"
	"fmt"

	"go-partsledger/internal/model"
	"go-partsledger/internal/repository"
	"go-partsledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerService interface {
	CreatePartner(req *model.Partner, userID string) error
	UpdatePartner(id uuid.UUID, req *model.Partner, userID string) (*model.Partner, error)
	DeletePartner(id uuid.UUID) error
	GetAllPartners() ([]model.Partner, error)
	GetPartnerByID(id uuid.UUID) (*model.Partner, error)
}

type partnerService struct {
	partnerRepo repository.PartnerRepository
}

func NewPartnerService(repo repository.PartnerRepository) PartnerService {
	return &partnerService{partnerRepo: repo}
}

func (s *partnerService) CreatePartner(req *model.Partner, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.partnerRepo.Create(req)
}

func (s *partnerService) UpdatePartner(id uuid.UUID, req *model.Partner, userID string) (*model.Partner, error) {
	existing, err := s.partnerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}

	existing.Name = req.Name
	existing.Type = req.Type
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.UpdatedBy = userID

	if err := s.partnerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *partnerService) DeletePartner(id uuid.UUID) error {
	if _, err := s.partnerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPartnerNotFound
		}
		return err
	}
	return s.partnerRepo.Delete(id)
}

func (s *partnerService) GetAllPartners() ([]model.Partner, error) {
	return s.partnerRepo.FindAll()
}

func (s *partnerService) GetPartnerByID(id uuid.UUID) (*model.Partner, error) {
	partner, err := s.partnerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}
