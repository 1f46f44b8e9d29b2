package services

import (
	"context"
	"fmt"

	"github.com/localrag/ragchat-cli/internal/core/ports/driven"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// Ensure ModelService implements the interface.
var _ driving.ModelService = (*ModelService)(nil)

// ModelService lists the models available on the local provider.
type ModelService struct {
	gateway driven.BackendGateway
}

// NewModelService creates a model listing service.
func NewModelService(gateway driven.BackendGateway) *ModelService {
	return &ModelService{gateway: gateway}
}

// List returns model names in server order.
func (s *ModelService) List(ctx context.Context) ([]string, error) {
	models, err := s.gateway.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return models, nil
}
