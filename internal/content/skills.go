package content

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkillCategoryView is the localized projection of a skill category.
type SkillCategoryView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Skills       []string `json:"skills"`
	DisplayOrder int      `json:"displayOrder"`
}

// SoftSkillView is the localized projection of a soft skill.
type SoftSkillView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"displayOrder"`
}

// SkillCategoryInput carries the writable fields of a skill category.
type SkillCategoryInput struct {
	NameEN       string   `json:"nameEn"`
	NamePL       string   `json:"namePl"`
	Skills       []string `json:"skills"`
	DisplayOrder *int     `json:"displayOrder"`
}

// SoftSkillInput carries the writable fields of a soft skill.
type SoftSkillInput struct {
	NameEN       string `json:"nameEn"`
	NamePL       string `json:"namePl"`
	DisplayOrder *int   `json:"displayOrder"`
}

// ListSkillCategories returns the localized skill groups in display order.
func (s *Service) ListSkillCategories(ctx context.Context, locale string) ([]SkillCategoryView, error) {
	locale = NormalizeLocale(locale)
	var categories []SkillCategory
	err := s.db.WithContext(ctx).Order("display_order asc").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	views := make([]SkillCategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, SkillCategoryView{
			ID:           c.ID,
			Name:         pick(locale, c.NameEN, c.NamePL),
			Skills:       c.Skills,
			DisplayOrder: c.DisplayOrder,
		})
	}
	return views, nil
}

// ListAllSkillCategories returns full bilingual records for the admin.
func (s *Service) ListAllSkillCategories(ctx context.Context) ([]SkillCategory, error) {
	var categories []SkillCategory
	err := s.db.WithContext(ctx).Order("display_order asc").Find(&categories).Error
	return categories, err
}

// CreateSkillCategory persists a new skill category.
func (s *Service) CreateSkillCategory(ctx context.Context, input SkillCategoryInput) (SkillCategory, error) {
	if strings.TrimSpace(input.NameEN) == "" || strings.TrimSpace(input.NamePL) == "" {
		return SkillCategory{}, errors.New("content: skill category names are required in both languages")
	}
	displayOrder := 0
	if input.DisplayOrder != nil {
		displayOrder = *input.DisplayOrder
	} else {
		var count int64
		if err := s.db.WithContext(ctx).Model(&SkillCategory{}).Count(&count).Error; err != nil {
			return SkillCategory{}, err
		}
		displayOrder = int(count)
	}
	category := SkillCategory{
		ID:           uuid.NewString(),
		NameEN:       strings.TrimSpace(input.NameEN),
		NamePL:       strings.TrimSpace(input.NamePL),
		Skills:       input.Skills,
		DisplayOrder: displayOrder,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return SkillCategory{}, err
	}
	return category, nil
}

// UpdateSkillCategory overwrites a skill category.
func (s *Service) UpdateSkillCategory(ctx context.Context, id string, input SkillCategoryInput) (SkillCategory, error) {
	if strings.TrimSpace(input.NameEN) == "" || strings.TrimSpace(input.NamePL) == "" {
		return SkillCategory{}, errors.New("content: skill category names are required in both languages")
	}
	var category SkillCategory
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SkillCategory{}, ErrNotFound
	}
	if err != nil {
		return SkillCategory{}, err
	}

	category.NameEN = strings.TrimSpace(input.NameEN)
	category.NamePL = strings.TrimSpace(input.NamePL)
	category.Skills = input.Skills
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	category.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Save(&category).Error; err != nil {
		return SkillCategory{}, err
	}
	return category, nil
}

// DeleteSkillCategory removes a skill category by id.
func (s *Service) DeleteSkillCategory(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&SkillCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderSkillCategories reassigns display orders to match the sequence.
func (s *Service) ReorderSkillCategories(ctx context.Context, ids []string) error {
	return s.reorder(ctx, &SkillCategory{}, ids)
}

// ListSoftSkills returns the localized soft skills in display order.
func (s *Service) ListSoftSkills(ctx context.Context, locale string) ([]SoftSkillView, error) {
	locale = NormalizeLocale(locale)
	var skills []SoftSkill
	err := s.db.WithContext(ctx).Order("display_order asc").Find(&skills).Error
	if err != nil {
		return nil, err
	}
	views := make([]SoftSkillView, 0, len(skills))
	for _, skill := range skills {
		views = append(views, SoftSkillView{
			ID:           skill.ID,
			Name:         pick(locale, skill.NameEN, skill.NamePL),
			DisplayOrder: skill.DisplayOrder,
		})
	}
	return views, nil
}

// ListAllSoftSkills returns full bilingual records for the admin.
func (s *Service) ListAllSoftSkills(ctx context.Context) ([]SoftSkill, error) {
	var skills []SoftSkill
	err := s.db.WithContext(ctx).Order("display_order asc").Find(&skills).Error
	return skills, err
}

// CreateSoftSkill persists a new soft skill.
func (s *Service) CreateSoftSkill(ctx context.Context, input SoftSkillInput) (SoftSkill, error) {
	if strings.TrimSpace(input.NameEN) == "" || strings.TrimSpace(input.NamePL) == "" {
		return SoftSkill{}, errors.New("content: soft skill names are required in both languages")
	}
	displayOrder := 0
	if input.DisplayOrder != nil {
		displayOrder = *input.DisplayOrder
	} else {
		var count int64
		if err := s.db.WithContext(ctx).Model(&SoftSkill{}).Count(&count).Error; err != nil {
			return SoftSkill{}, err
		}
		displayOrder = int(count)
	}
	skill := SoftSkill{
		ID:           uuid.NewString(),
		NameEN:       strings.TrimSpace(input.NameEN),
		NamePL:       strings.TrimSpace(input.NamePL),
		DisplayOrder: displayOrder,
	}
	if err := s.db.WithContext(ctx).Create(&skill).Error; err != nil {
		return SoftSkill{}, err
	}
	return skill, nil
}

// UpdateSoftSkill overwrites a soft skill.
func (s *Service) UpdateSoftSkill(ctx context.Context, id string, input SoftSkillInput) (SoftSkill, error) {
	if strings.TrimSpace(input.NameEN) == "" || strings.TrimSpace(input.NamePL) == "" {
		return SoftSkill{}, errors.New("content: soft skill names are required in both languages")
	}
	var skill SoftSkill
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SoftSkill{}, ErrNotFound
	}
	if err != nil {
		return SoftSkill{}, err
	}

	skill.NameEN = strings.TrimSpace(input.NameEN)
	skill.NamePL = strings.TrimSpace(input.NamePL)
	if input.DisplayOrder != nil {
		skill.DisplayOrder = *input.DisplayOrder
	}
	skill.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Save(&skill).Error; err != nil {
		return SoftSkill{}, err
	}
	return skill, nil
}

// DeleteSoftSkill removes a soft skill by id.
func (s *Service) DeleteSoftSkill(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&SoftSkill{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderSoftSkills reassigns display orders to match the sequence.
func (s *Service) ReorderSoftSkills(ctx context.Context, ids []string) error {
	return s.reorder(ctx, &SoftSkill{}, ids)
}
