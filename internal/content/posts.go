package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PostView is the localized public projection of a post.
type PostView struct {
	ID            string          `json:"id"`
	Category      Category        `json:"category"`
	CategoryLabel string          `json:"categoryLabel"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Excerpt       string          `json:"excerpt"`
	Content       json.RawMessage `json:"content,omitempty"`
	FeaturedImage string          `json:"featuredImage"`
	GithubURL     string          `json:"githubUrl"`
	LiveURL       string          `json:"liveUrl"`
	Hashtags      []string        `json:"hashtags"`
	DisplayOrder  int             `json:"displayOrder"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// PostPage is one page of localized posts.
type PostPage struct {
	Items      []PostView `json:"items"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int        `json:"totalPages"`
}

// PostQuery filters and paginates the public post listing.
type PostQuery struct {
	Category Category
	Hashtag  string
	Page     int
	Size     int
}

// PostInput carries the writable fields of a post.
type PostInput struct {
	Category      Category        `json:"category"`
	TitleEN       string          `json:"titleEn"`
	TitlePL       string          `json:"titlePl"`
	Slug          string          `json:"slug"`
	ExcerptEN     string          `json:"excerptEn"`
	ExcerptPL     string          `json:"excerptPl"`
	ContentEN     json.RawMessage `json:"contentEn"`
	ContentPL     json.RawMessage `json:"contentPl"`
	FeaturedImage string          `json:"featuredImage"`
	GithubURL     string          `json:"githubUrl"`
	LiveURL       string          `json:"liveUrl"`
	Published     bool            `json:"published"`
	DisplayOrder  *int            `json:"displayOrder"`
	Hashtags      []string        `json:"hashtags"`
}

func (in PostInput) validate() error {
	if !in.Category.Valid() {
		return fmt.Errorf("content: unknown category %q", in.Category)
	}
	if strings.TrimSpace(in.TitleEN) == "" || strings.TrimSpace(in.TitlePL) == "" {
		return errors.New("content: post titles are required in both languages")
	}
	return nil
}

// ListPublishedPosts returns one localized page of published posts,
// optionally filtered by category or hashtag.
func (s *Service) ListPublishedPosts(ctx context.Context, query PostQuery, locale string) (PostPage, error) {
	locale = NormalizeLocale(locale)
	page := query.Page
	if page < 1 {
		page = 1
	}
	size := query.Size
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	tx := s.db.WithContext(ctx).Model(&Post{}).Where("published = ?", true)
	if query.Category != "" {
		if !query.Category.Valid() {
			return PostPage{}, fmt.Errorf("content: unknown category %q", query.Category)
		}
		tx = tx.Where("category = ?", query.Category)
	}

	var posts []Post
	if err := tx.Order("display_order asc, created_at desc").Find(&posts).Error; err != nil {
		return PostPage{}, err
	}

	// Hashtags live in a JSON column; the filter is applied after the
	// fetch rather than in SQL.
	if tag := strings.TrimSpace(query.Hashtag); tag != "" {
		filtered := posts[:0]
		for _, post := range posts {
			for _, h := range post.Hashtags {
				if strings.EqualFold(h, tag) {
					filtered = append(filtered, post)
					break
				}
			}
		}
		posts = filtered
	}

	total := int64(len(posts))
	totalPages := int((total + int64(size) - 1) / int64(size))
	start := (page - 1) * size
	if start > len(posts) {
		start = len(posts)
	}
	end := start + size
	if end > len(posts) {
		end = len(posts)
	}

	items := make([]PostView, 0, end-start)
	for _, post := range posts[start:end] {
		items = append(items, s.postView(post, locale, false))
	}
	return PostPage{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// GetPostBySlug returns the localized post, content included. Only
// published posts are visible through this lookup.
func (s *Service) GetPostBySlug(ctx context.Context, slugValue, locale string) (PostView, error) {
	var post Post
	err := s.db.WithContext(ctx).Where("slug = ? AND published = ?", slugValue, true).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PostView{}, ErrNotFound
	}
	if err != nil {
		return PostView{}, err
	}
	return s.postView(post, NormalizeLocale(locale), true), nil
}

// ListHashtags returns the distinct hashtags across published posts.
func (s *Service) ListHashtags(ctx context.Context) ([]string, error) {
	var posts []Post
	if err := s.db.WithContext(ctx).Where("published = ?", true).Find(&posts).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, post := range posts {
		for _, tag := range post.Hashtags {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// CategoryView pairs a category value with its localized label.
type CategoryView struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
}

// Categories lists the known categories with localized labels.
func (s *Service) Categories(locale string) []CategoryView {
	locale = NormalizeLocale(locale)
	return []CategoryView{
		{Value: CategoryPersonal, Label: CategoryPersonal.Label(locale)},
		{Value: CategoryProfessional, Label: CategoryProfessional.Label(locale)},
	}
}

// ListPosts returns every post, drafts included, for the admin screens.
func (s *Service) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := s.db.WithContext(ctx).Order("display_order asc, created_at desc").Find(&posts).Error
	return posts, err
}

// GetPost returns a post by id regardless of publish state.
func (s *Service) GetPost(ctx context.Context, id string) (Post, error) {
	var post Post
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Post{}, ErrNotFound
	}
	return post, err
}

// CreatePost persists a new post. A missing slug is generated from the
// English title; a missing display order lands after the category's
// current maximum.
func (s *Service) CreatePost(ctx context.Context, input PostInput) (Post, error) {
	if err := input.validate(); err != nil {
		return Post{}, err
	}

	slugValue := strings.TrimSpace(input.Slug)
	if slugValue == "" {
		generated, err := s.uniqueSlug(ctx, input.TitleEN, "")
		if err != nil {
			return Post{}, err
		}
		slugValue = generated
	}

	displayOrder := 0
	if input.DisplayOrder != nil {
		displayOrder = *input.DisplayOrder
	} else {
		max, err := s.maxDisplayOrder(ctx, input.Category)
		if err != nil {
			return Post{}, err
		}
		displayOrder = max + 1
	}

	post := Post{
		ID:            uuid.NewString(),
		Category:      input.Category,
		TitleEN:       strings.TrimSpace(input.TitleEN),
		TitlePL:       strings.TrimSpace(input.TitlePL),
		Slug:          slugValue,
		ExcerptEN:     input.ExcerptEN,
		ExcerptPL:     input.ExcerptPL,
		ContentEN:     input.ContentEN,
		ContentPL:     input.ContentPL,
		FeaturedImage: input.FeaturedImage,
		GithubURL:     input.GithubURL,
		LiveURL:       input.LiveURL,
		Published:     input.Published,
		DisplayOrder:  displayOrder,
		Hashtags:      input.Hashtags,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return Post{}, err
	}
	return post, nil
}

// UpdatePost overwrites the writable fields of an existing post.
func (s *Service) UpdatePost(ctx context.Context, id string, input PostInput) (Post, error) {
	if err := input.validate(); err != nil {
		return Post{}, err
	}
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return Post{}, err
	}

	slugValue := strings.TrimSpace(input.Slug)
	if slugValue == "" {
		slugValue = post.Slug
	}
	if slugValue != post.Slug {
		unique, err := s.uniqueSlug(ctx, slugValue, post.ID)
		if err != nil {
			return Post{}, err
		}
		slugValue = unique
	}

	post.Category = input.Category
	post.TitleEN = strings.TrimSpace(input.TitleEN)
	post.TitlePL = strings.TrimSpace(input.TitlePL)
	post.Slug = slugValue
	post.ExcerptEN = input.ExcerptEN
	post.ExcerptPL = input.ExcerptPL
	post.ContentEN = input.ContentEN
	post.ContentPL = input.ContentPL
	post.FeaturedImage = input.FeaturedImage
	post.GithubURL = input.GithubURL
	post.LiveURL = input.LiveURL
	post.Published = input.Published
	post.Hashtags = input.Hashtags
	if input.DisplayOrder != nil {
		post.DisplayOrder = *input.DisplayOrder
	}
	post.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Save(&post).Error; err != nil {
		return Post{}, err
	}
	return post, nil
}

// DeletePost removes a post by id.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderPosts reassigns display orders to match the given id sequence.
func (s *Service) ReorderPosts(ctx context.Context, ids []string) error {
	return s.reorder(ctx, &Post{}, ids)
}

func (s *Service) reorder(ctx context.Context, model interface{}, ids []string) error {
	if len(ids) == 0 {
		return errors.New("content: reorder requires at least one id")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, id := range ids {
			result := tx.Model(model).Where("id = ?", id).Update("display_order", index)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: id %s", ErrNotFound, id)
			}
		}
		return nil
	})
}

func (s *Service) maxDisplayOrder(ctx context.Context, category Category) (int, error) {
	var max *int
	err := s.db.WithContext(ctx).Model(&Post{}).
		Where("category = ?", category).
		Select("MAX(display_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// uniqueSlug slugifies the candidate and appends -2, -3, ... until the
// value is free. excludeID skips the post being updated.
func (s *Service) uniqueSlug(ctx context.Context, candidate, excludeID string) (string, error) {
	base := slug.Make(candidate)
	if base == "" {
		base = "post"
	}
	value := base
	for suffix := 2; ; suffix++ {
		tx := s.db.WithContext(ctx).Model(&Post{}).Where("slug = ?", value)
		if excludeID != "" {
			tx = tx.Where("id <> ?", excludeID)
		}
		var count int64
		if err := tx.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return value, nil
		}
		value = fmt.Sprintf("%s-%d", base, suffix)
	}
}

func (s *Service) postView(post Post, locale string, withContent bool) PostView {
	view := PostView{
		ID:            post.ID,
		Category:      post.Category,
		CategoryLabel: post.Category.Label(locale),
		Title:         pick(locale, post.TitleEN, post.TitlePL),
		Slug:          post.Slug,
		Excerpt:       pick(locale, post.ExcerptEN, post.ExcerptPL),
		FeaturedImage: post.FeaturedImage,
		GithubURL:     post.GithubURL,
		LiveURL:       post.LiveURL,
		Hashtags:      post.Hashtags,
		DisplayOrder:  post.DisplayOrder,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
	if withContent {
		if locale == LocalePL {
			view.Content = post.ContentPL
		} else {
			view.Content = post.ContentEN
		}
	}
	return view
}
