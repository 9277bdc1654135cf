package content

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// SettingsView is the localized public projection of site settings.
type SettingsView struct {
	HeroTitle       string            `json:"heroTitle"`
	HeroSubtitle    string            `json:"heroSubtitle"`
	AboutText       string            `json:"aboutText"`
	ProfileImage    string            `json:"profileImage"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	SocialLinks     map[string]string `json:"socialLinks"`
	MetaDescription string            `json:"metaDescription"`
	OwnerName       string            `json:"ownerName"`
	SiteName        string            `json:"siteName"`
}

// SettingsInput carries the writable fields of the settings singleton.
type SettingsInput struct {
	HeroTitleEN       string            `json:"heroTitleEn"`
	HeroTitlePL       string            `json:"heroTitlePl"`
	HeroSubtitleEN    string            `json:"heroSubtitleEn"`
	HeroSubtitlePL    string            `json:"heroSubtitlePl"`
	AboutTextEN       string            `json:"aboutTextEn"`
	AboutTextPL       string            `json:"aboutTextPl"`
	ProfileImage      string            `json:"profileImage"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	SocialLinks       map[string]string `json:"socialLinks"`
	MetaDescriptionEN string            `json:"metaDescriptionEn"`
	MetaDescriptionPL string            `json:"metaDescriptionPl"`
	OwnerName         string            `json:"ownerName"`
	SiteName          string            `json:"siteName"`
}

// GetSettings returns the localized site settings. An empty view is
// returned before the first admin save.
func (s *Service) GetSettings(ctx context.Context, locale string) (SettingsView, error) {
	locale = NormalizeLocale(locale)
	settings, err := s.settingsRow(ctx)
	if err != nil {
		return SettingsView{}, err
	}
	return SettingsView{
		HeroTitle:       pick(locale, settings.HeroTitleEN, settings.HeroTitlePL),
		HeroSubtitle:    pick(locale, settings.HeroSubtitleEN, settings.HeroSubtitlePL),
		AboutText:       pick(locale, settings.AboutTextEN, settings.AboutTextPL),
		ProfileImage:    settings.ProfileImage,
		Email:           settings.Email,
		Phone:           settings.Phone,
		SocialLinks:     settings.SocialLinks,
		MetaDescription: pick(locale, settings.MetaDescriptionEN, settings.MetaDescriptionPL),
		OwnerName:       settings.OwnerName,
		SiteName:        settings.SiteName,
	}, nil
}

// GetSettingsRaw returns the full bilingual row for the admin screens.
func (s *Service) GetSettingsRaw(ctx context.Context) (SiteSettings, error) {
	return s.settingsRow(ctx)
}

// UpdateSettings upserts the singleton settings row.
func (s *Service) UpdateSettings(ctx context.Context, input SettingsInput) (SiteSettings, error) {
	settings := SiteSettings{
		ID:                siteSettingsID,
		HeroTitleEN:       input.HeroTitleEN,
		HeroTitlePL:       input.HeroTitlePL,
		HeroSubtitleEN:    input.HeroSubtitleEN,
		HeroSubtitlePL:    input.HeroSubtitlePL,
		AboutTextEN:       input.AboutTextEN,
		AboutTextPL:       input.AboutTextPL,
		ProfileImage:      input.ProfileImage,
		Email:             input.Email,
		Phone:             input.Phone,
		SocialLinks:       input.SocialLinks,
		MetaDescriptionEN: input.MetaDescriptionEN,
		MetaDescriptionPL: input.MetaDescriptionPL,
		OwnerName:         input.OwnerName,
		SiteName:          input.SiteName,
		UpdatedAt:         s.now(),
	}
	if err := s.db.WithContext(ctx).Save(&settings).Error; err != nil {
		return SiteSettings{}, err
	}
	return settings, nil
}

func (s *Service) settingsRow(ctx context.Context) (SiteSettings, error) {
	var settings SiteSettings
	err := s.db.WithContext(ctx).Where("id = ?", siteSettingsID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SiteSettings{ID: siteSettingsID}, nil
	}
	if err != nil {
		return SiteSettings{}, err
	}
	return settings, nil
}
