package service

import (
	"context"
	"fmt"

	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateMakerInput struct {
	// ID is the authenticated actor id; uuid.Nil lets the store pick one.
	ID       uuid.UUID
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,email"`
	URLPhoto string `validate:"omitempty,url"`
	Phone    string `validate:"max=32"`
}

type MakerService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewMakerService(store repository.Store, logger *zap.Logger) *MakerService {
	return &MakerService{store: store, logger: logger}
}

func (s *MakerService) CreateMaker(ctx context.Context, in CreateMakerInput) (*model.Maker, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	maker := &model.Maker{
		ID:       in.ID,
		Name:     in.Name,
		Email:    in.Email,
		URLPhoto: in.URLPhoto,
		Phone:    in.Phone,
	}
	if err := s.store.Makers().Create(ctx, maker); err != nil {
		return nil, fmt.Errorf("failed to create maker: %w", err)
	}

	s.logger.Info("maker created", zap.String("maker_id", maker.ID.String()))
	return maker, nil
}
