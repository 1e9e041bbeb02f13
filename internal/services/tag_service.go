package services

import (
	"context"
	"log"
	"strings"

	"tabemap/internal/models/response_models"
	"tabemap/internal/repositories"
	"tabemap/pkg/utils"
)

// MaxTagsPerShop caps how many tags a shop can carry.
const MaxTagsPerShop = 5

type TagServiceInterface interface {
	CleanTags(raw []string) []string
	NormalizeTags(raw []string) []string
	GetAllTags(ctx context.Context, page int, pageSize int) ([]response_models.TagResponse, error)
}

type TagService struct {
	tagRepo repositories.TagRepositoryInterface
}

func NewTagService(tagRepo repositories.TagRepositoryInterface) TagServiceInterface {
	return &TagService{tagRepo: tagRepo}
}

// CleanTags trims whitespace, drops empties and removes exact duplicates,
// preserving first-seen order. Matching is case-sensitive: "Cafe" and "cafe"
// are distinct tags.
func (t *TagService) CleanTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	cleaned := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	return cleaned
}

// NormalizeTags is CleanTags plus the per-shop cap. Registration truncates
// silently; the edit flow validates the cap instead (see shop service).
func (t *TagService) NormalizeTags(raw []string) []string {
	cleaned := t.CleanTags(raw)
	if len(cleaned) > MaxTagsPerShop {
		cleaned = cleaned[:MaxTagsPerShop]
	}
	return cleaned
}

func (t *TagService) GetAllTags(ctx context.Context, page int, pageSize int) ([]response_models.TagResponse, error) {
	tags, err := t.tagRepo.GetAllTags(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return nil, utils.ErrDatabaseError
	}

	tagResponses := make([]response_models.TagResponse, 0, len(tags))
	for _, tag := range tags {
		tagResponses = append(tagResponses, response_models.TagResponse{
			ID:   tag.ID.String(),
			Name: tag.Name,
		})
	}
	return tagResponses, nil
}
