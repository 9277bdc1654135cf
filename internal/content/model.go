package content

import (
	"encoding/json"
	"time"
)

// Category partitions posts on the public site.
type Category string

const (
	CategoryPersonal     Category = "personal"
	CategoryProfessional Category = "professional"
)

var categoryLabels = map[Category][2]string{
	CategoryPersonal:     {"Personal Project", "Projekt Osobisty"},
	CategoryProfessional: {"Professional", "Profesjonalny"},
}

// Label returns the localized category label.
func (c Category) Label(locale string) string {
	labels, ok := categoryLabels[c]
	if !ok {
		return string(c)
	}
	if locale == LocalePL {
		return labels[1]
	}
	return labels[0]
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Post is a bilingual portfolio entry. Content is a rich-text document
// stored verbatim as JSON.
type Post struct {
	ID            string          `gorm:"column:id;primaryKey;size:36" json:"id"`
	Category      Category        `gorm:"column:category;size:32;not null;index" json:"category"`
	TitleEN       string          `gorm:"column:title_en;size:320;not null" json:"titleEn"`
	TitlePL       string          `gorm:"column:title_pl;size:320;not null" json:"titlePl"`
	Slug          string          `gorm:"column:slug;size:320;not null;uniqueIndex" json:"slug"`
	ExcerptEN     string          `gorm:"column:excerpt_en;type:text" json:"excerptEn"`
	ExcerptPL     string          `gorm:"column:excerpt_pl;type:text" json:"excerptPl"`
	ContentEN     json.RawMessage `gorm:"column:content_en;type:text" json:"contentEn"`
	ContentPL     json.RawMessage `gorm:"column:content_pl;type:text" json:"contentPl"`
	FeaturedImage string          `gorm:"column:featured_image;size:512" json:"featuredImage"`
	GithubURL     string          `gorm:"column:github_url;size:512" json:"githubUrl"`
	LiveURL       string          `gorm:"column:live_url;size:512" json:"liveUrl"`
	Published     bool            `gorm:"column:published;not null" json:"published"`
	DisplayOrder  int             `gorm:"column:display_order;not null" json:"displayOrder"`
	Hashtags      []string        `gorm:"column:hashtags;serializer:json" json:"hashtags"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

// Experience is a bilingual work-history entry. A nil EndDate marks the
// current position.
type Experience struct {
	ID             string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	TitleEN        string     `gorm:"column:title_en;size:320;not null" json:"titleEn"`
	TitlePL        string     `gorm:"column:title_pl;size:320;not null" json:"titlePl"`
	Company        string     `gorm:"column:company;size:320;not null" json:"company"`
	StartDate      time.Time  `gorm:"column:start_date;not null" json:"startDate"`
	EndDate        *time.Time `gorm:"column:end_date" json:"endDate"`
	DescriptionEN  string     `gorm:"column:description_en;type:text" json:"descriptionEn"`
	DescriptionPL  string     `gorm:"column:description_pl;type:text" json:"descriptionPl"`
	AchievementsEN []string   `gorm:"column:achievements_en;serializer:json" json:"achievementsEn"`
	AchievementsPL []string   `gorm:"column:achievements_pl;serializer:json" json:"achievementsPl"`
	DisplayOrder   int        `gorm:"column:display_order;not null" json:"displayOrder"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Experience) TableName() string {
	return "experiences"
}

// SkillCategory groups technical skills under a bilingual heading.
type SkillCategory struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	NameEN       string    `gorm:"column:name_en;size:320;not null" json:"nameEn"`
	NamePL       string    `gorm:"column:name_pl;size:320;not null" json:"namePl"`
	Skills       []string  `gorm:"column:skills;serializer:json" json:"skills"`
	DisplayOrder int       `gorm:"column:display_order;not null" json:"displayOrder"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SkillCategory) TableName() string {
	return "skill_categories"
}

// SoftSkill is a single bilingual soft-skill entry.
type SoftSkill struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	NameEN       string    `gorm:"column:name_en;size:320;not null" json:"nameEn"`
	NamePL       string    `gorm:"column:name_pl;size:320;not null" json:"namePl"`
	DisplayOrder int       `gorm:"column:display_order;not null" json:"displayOrder"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SoftSkill) TableName() string {
	return "soft_skills"
}

// SiteSettings is the singleton row of site-wide copy and contact data.
const siteSettingsID = 1

type SiteSettings struct {
	ID                int               `gorm:"column:id;primaryKey" json:"id"`
	HeroTitleEN       string            `gorm:"column:hero_title_en;size:320" json:"heroTitleEn"`
	HeroTitlePL       string            `gorm:"column:hero_title_pl;size:320" json:"heroTitlePl"`
	HeroSubtitleEN    string            `gorm:"column:hero_subtitle_en;type:text" json:"heroSubtitleEn"`
	HeroSubtitlePL    string            `gorm:"column:hero_subtitle_pl;type:text" json:"heroSubtitlePl"`
	AboutTextEN       string            `gorm:"column:about_text_en;type:text" json:"aboutTextEn"`
	AboutTextPL       string            `gorm:"column:about_text_pl;type:text" json:"aboutTextPl"`
	ProfileImage      string            `gorm:"column:profile_image;size:512" json:"profileImage"`
	Email             string            `gorm:"column:email;size:320" json:"email"`
	Phone             string            `gorm:"column:phone;size:64" json:"phone"`
	SocialLinks       map[string]string `gorm:"column:social_links;serializer:json" json:"socialLinks"`
	MetaDescriptionEN string            `gorm:"column:meta_description_en;type:text" json:"metaDescriptionEn"`
	MetaDescriptionPL string            `gorm:"column:meta_description_pl;type:text" json:"metaDescriptionPl"`
	OwnerName         string            `gorm:"column:owner_name;size:320" json:"ownerName"`
	SiteName          string            `gorm:"column:site_name;size:320" json:"siteName"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
