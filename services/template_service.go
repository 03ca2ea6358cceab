package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Dosada05/scrim-tournaments/models"
	"github.com/Dosada05/scrim-tournaments/repositories"
	"github.com/gosimple/slug"
)

// TemplateCatalog owns scoring templates.
type TemplateCatalog interface {
	CreateTemplate(ctx context.Context, input CreateTemplateInput) (*models.Template, error)
	ListTemplates(ctx context.Context) ([]models.Template, error)
	// GetTemplate resolves by id, then by name.
	GetTemplate(ctx context.Context, ref string) (*models.Template, error)
}

type CreateTemplateInput struct {
	Name            string `json:"name"`
	KillPoints      int    `json:"kill_points"`
	PlacementPoints []int  `json:"placement_points"`
	TeamSize        int    `json:"team_size"`
}

type templateCatalog struct {
	store   *repositories.StateStore
	logger  *slog.Logger
	metrics *Metrics
}

func NewTemplateCatalog(store *repositories.StateStore, logger *slog.Logger, metrics *Metrics) TemplateCatalog {
	return &templateCatalog{store: store, logger: logger, metrics: metrics}
}

func validateTemplateInput(input CreateTemplateInput) (string, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", validationErrorf("template name is required")
	}
	key := slug.Make(name)
	if key == "" {
		return "", "", validationErrorf("template name %q must contain letters or digits", name)
	}
	if input.KillPoints < 0 {
		return "", "", validationErrorf("kill points must be >= 0, got %d", input.KillPoints)
	}
	if input.TeamSize < 1 {
		return "", "", validationErrorf("team size must be >= 1, got %d", input.TeamSize)
	}
	if len(input.PlacementPoints) == 0 {
		return "", "", validationErrorf("placement points must contain at least one value")
	}
	return name, key, nil
}

func (s *templateCatalog) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*models.Template, error) {
	name, key, err := validateTemplateInput(input)
	if err != nil {
		s.metrics.mutation("template_create", err)
		return nil, err
	}

	points := make([]int, len(input.PlacementPoints))
	copy(points, input.PlacementPoints)

	var created models.Template
	err = s.store.Update(ctx, func(doc *models.Document) error {
		if doc.TemplateBySlug(key) != nil {
			return ErrTemplateNameConflict
		}
		created = models.Template{
			ID:              newID(),
			Name:            name,
			Slug:            key,
			KillPoints:      input.KillPoints,
			PlacementPoints: points,
			TeamSize:        input.TeamSize,
			CreatedAt:       now(),
		}
		doc.Templates = append(doc.Templates, created)
		return nil
	})
	err = persistError(err)
	s.metrics.mutation("template_create", err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "template created",
		slog.String("template_id", created.ID),
		slog.String("name", created.Name),
		slog.Int("kill_points", created.KillPoints),
		slog.Any("placement_points", created.PlacementPoints),
	)
	out := created.Clone()
	return &out, nil
}

func (s *templateCatalog) ListTemplates(ctx context.Context) ([]models.Template, error) {
	templates := make([]models.Template, 0)
	err := s.store.View(func(doc *models.Document) error {
		for _, t := range doc.Templates {
			templates = append(templates, t.Clone())
		}
		return nil
	})
	return templates, err
}

func (s *templateCatalog) GetTemplate(ctx context.Context, ref string) (*models.Template, error) {
	var found models.Template
	err := s.store.View(func(doc *models.Document) error {
		t := resolveTemplate(doc, ref)
		if t == nil {
			return ErrTemplateNotFound
		}
		found = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func resolveTemplate(doc *models.Document, ref string) *models.Template {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if t := doc.TemplateByID(ref); t != nil {
		return t
	}
	return doc.TemplateBySlug(slug.Make(ref))
}
