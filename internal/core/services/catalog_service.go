package services

import (
	"context"
	"errors"

	"projectgate/internal/adapters/persistence/models"
	"projectgate/internal/adapters/persistence/repositories"
	"projectgate/internal/core/domain"

	"gorm.io/gorm"
)

// CatalogService implements ProjectCatalog over the shared projects table
type CatalogService struct {
	projectRepo repositories.ProjectRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(projectRepo repositories.ProjectRepository) *CatalogService {
	return &CatalogService{projectRepo: projectRepo}
}

// GetByID resolves a published project by ID. Unpublished projects are
// invisible to this core.
func (s *CatalogService) GetByID(ctx context.Context, id uint) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	if !project.IsPublished {
		return nil, domain.ErrProjectNotFound
	}
	return toDomainProject(project), nil
}

// List lists published projects with pagination
func (s *CatalogService) List(ctx context.Context, offset, limit int) ([]*domain.Project, int64, error) {
	projects, total, err := s.projectRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Project, 0, len(projects))
	for _, p := range projects {
		result = append(result, toDomainProject(p))
	}
	return result, total, nil
}

func toDomainProject(p *models.Project) *domain.Project {
	return &domain.Project{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		DemoURL:     p.DemoURL,
		DownloadURL: p.DownloadURL,
		IsPublished: p.IsPublished,
	}
}
