package services

import (
	"fmt"

	"musyoka.dev/internal/models"
)

// CategoryTab is one button of the gallery filter
type CategoryTab struct {
	ID    models.Category `json:"id"`
	Label string          `json:"label"`
	Count int             `json:"count"`
}

// categoryOrder is the order the filter buttons are shown in
var categoryOrder = []struct {
	id    models.Category
	label string
}{
	{models.CategoryAll, "All Projects"},
	{models.CategoryWebApp, "Web Apps"},
	{models.CategoryPlatform, "Platforms"},
	{models.CategoryTool, "Tools"},
	{models.CategoryAutomation, "Automation"},
}

// ProjectService handles project-related operations
type ProjectService struct {
	projects *models.ProjectList
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects *models.ProjectList) *ProjectService {
	return &ProjectService{projects: projects}
}

// GetAll returns all projects
func (s *ProjectService) GetAll() []models.Project {
	return s.projects.Projects
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	for i := range s.projects.Projects {
		if s.projects.Projects[i].ID == id {
			return &s.projects.Projects[i], nil
		}
	}
	return nil, fmt.Errorf("project not found: %s", id)
}

// Filter returns the projects in the given category, keeping declaration
// order. The empty category and "all" select every project.
func (s *ProjectService) Filter(category models.Category) []models.Project {
	if category == "" || category == models.CategoryAll {
		return s.projects.Projects
	}

	filtered := make([]models.Project, 0, len(s.projects.Projects))
	for _, p := range s.projects.Projects {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// IsCategory reports whether c is one of the filter tabs
func (s *ProjectService) IsCategory(c models.Category) bool {
	for _, cat := range categoryOrder {
		if cat.id == c {
			return true
		}
	}
	return false
}

// Categories returns the filter tabs with the number of projects in each
func (s *ProjectService) Categories() []CategoryTab {
	tabs := make([]CategoryTab, len(categoryOrder))
	for i, cat := range categoryOrder {
		tabs[i] = CategoryTab{
			ID:    cat.id,
			Label: cat.label,
			Count: len(s.Filter(cat.id)),
		}
	}
	return tabs
}
