package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExperienceView is the localized public projection of an experience.
type ExperienceView struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Description  string     `json:"description"`
	Achievements []string   `json:"achievements"`
	DisplayOrder int        `json:"displayOrder"`
}

// ExperienceInput carries the writable fields of an experience.
type ExperienceInput struct {
	TitleEN        string     `json:"titleEn"`
	TitlePL        string     `json:"titlePl"`
	Company        string     `json:"company"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	DescriptionEN  string     `json:"descriptionEn"`
	DescriptionPL  string     `json:"descriptionPl"`
	AchievementsEN []string   `json:"achievementsEn"`
	AchievementsPL []string   `json:"achievementsPl"`
	DisplayOrder   *int       `json:"displayOrder"`
}

func (in ExperienceInput) validate() error {
	if strings.TrimSpace(in.TitleEN) == "" || strings.TrimSpace(in.TitlePL) == "" {
		return errors.New("content: experience titles are required in both languages")
	}
	if strings.TrimSpace(in.Company) == "" {
		return errors.New("content: experience company is required")
	}
	if in.StartDate.IsZero() {
		return errors.New("content: experience start date is required")
	}
	return nil
}

// ListExperiences returns the localized work history in display order.
func (s *Service) ListExperiences(ctx context.Context, locale string) ([]ExperienceView, error) {
	locale = NormalizeLocale(locale)
	var experiences []Experience
	err := s.db.WithContext(ctx).Order("display_order asc, start_date desc").Find(&experiences).Error
	if err != nil {
		return nil, err
	}
	views := make([]ExperienceView, 0, len(experiences))
	for _, e := range experiences {
		views = append(views, ExperienceView{
			ID:           e.ID,
			Title:        pick(locale, e.TitleEN, e.TitlePL),
			Company:      e.Company,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
			Description:  pick(locale, e.DescriptionEN, e.DescriptionPL),
			Achievements: pickList(locale, e.AchievementsEN, e.AchievementsPL),
			DisplayOrder: e.DisplayOrder,
		})
	}
	return views, nil
}

// ListAllExperiences returns full bilingual records for the admin screens.
func (s *Service) ListAllExperiences(ctx context.Context) ([]Experience, error) {
	var experiences []Experience
	err := s.db.WithContext(ctx).Order("display_order asc, start_date desc").Find(&experiences).Error
	return experiences, err
}

// GetExperience returns an experience by id.
func (s *Service) GetExperience(ctx context.Context, id string) (Experience, error) {
	var experience Experience
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&experience).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Experience{}, ErrNotFound
	}
	return experience, err
}

// CreateExperience persists a new experience.
func (s *Service) CreateExperience(ctx context.Context, input ExperienceInput) (Experience, error) {
	if err := input.validate(); err != nil {
		return Experience{}, err
	}
	displayOrder := 0
	if input.DisplayOrder != nil {
		displayOrder = *input.DisplayOrder
	} else {
		var count int64
		if err := s.db.WithContext(ctx).Model(&Experience{}).Count(&count).Error; err != nil {
			return Experience{}, err
		}
		displayOrder = int(count)
	}
	experience := Experience{
		ID:             uuid.NewString(),
		TitleEN:        strings.TrimSpace(input.TitleEN),
		TitlePL:        strings.TrimSpace(input.TitlePL),
		Company:        strings.TrimSpace(input.Company),
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		DescriptionEN:  input.DescriptionEN,
		DescriptionPL:  input.DescriptionPL,
		AchievementsEN: input.AchievementsEN,
		AchievementsPL: input.AchievementsPL,
		DisplayOrder:   displayOrder,
	}
	if err := s.db.WithContext(ctx).Create(&experience).Error; err != nil {
		return Experience{}, err
	}
	return experience, nil
}

// UpdateExperience overwrites the writable fields of an experience.
func (s *Service) UpdateExperience(ctx context.Context, id string, input ExperienceInput) (Experience, error) {
	if err := input.validate(); err != nil {
		return Experience{}, err
	}
	experience, err := s.GetExperience(ctx, id)
	if err != nil {
		return Experience{}, err
	}

	experience.TitleEN = strings.TrimSpace(input.TitleEN)
	experience.TitlePL = strings.TrimSpace(input.TitlePL)
	experience.Company = strings.TrimSpace(input.Company)
	experience.StartDate = input.StartDate
	experience.EndDate = input.EndDate
	experience.DescriptionEN = input.DescriptionEN
	experience.DescriptionPL = input.DescriptionPL
	experience.AchievementsEN = input.AchievementsEN
	experience.AchievementsPL = input.AchievementsPL
	if input.DisplayOrder != nil {
		experience.DisplayOrder = *input.DisplayOrder
	}
	experience.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Save(&experience).Error; err != nil {
		return Experience{}, err
	}
	return experience, nil
}

// DeleteExperience removes an experience by id.
func (s *Service) DeleteExperience(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Experience{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderExperiences reassigns display orders to match the id sequence.
func (s *Service) ReorderExperiences(ctx context.Context, ids []string) error {
	return s.reorder(ctx, &Experience{}, ids)
}
