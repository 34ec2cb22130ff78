package service

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tinyblog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidMonth = errors.New("invalid archive month")
)

// PostService wraps post related database operations.
type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title        string
	Body         string
	Excerpt      string
	CategoryID   uint
	AuthorID     uint
	TagIDs       []uint
	CreatedTime  time.Time
	ModifiedTime time.Time
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb, now: time.Now}
}

// WithClock 替换服务使用的时钟，主要用于测试。
func (s *PostService) WithClock(now func() time.Time) *PostService {
	s.now = now
	return s
}

// ListAll returns all posts ordered by created time descending.
func (s *PostService) ListAll() ([]db.Post, error) {
	var posts []db.Post
	if err := s.listQuery().Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByCategory returns the posts of one category, newest first.
func (s *PostService) ListByCategory(categoryID uint) ([]db.Post, error) {
	var posts []db.Post
	if err := s.listQuery().Where("posts.category_id = ?", categoryID).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByTag returns the posts carrying a tag, newest first.
func (s *PostService) ListByTag(tagID uint) ([]db.Post, error) {
	var posts []db.Post
	if err := s.listQuery().
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByMonth 返回创建时间落在指定月份（UTC）内的文章。
func (s *PostService) ListByMonth(year int, month time.Month) ([]db.Post, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var posts []db.Post
	if err := s.listQuery().
		Where("posts.created_time >= ? AND posts.created_time < ?", start, end).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a post by id with its relations preloaded.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Category").Preload("Tags").Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a post and associates tags in a transaction.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	created := input.CreatedTime
	if created.IsZero() {
		created = s.now()
	}
	modified := input.ModifiedTime
	if modified.IsZero() {
		modified = created
	}

	post := db.Post{
		Title:        strings.TrimSpace(input.Title),
		Body:         input.Body,
		Excerpt:      strings.TrimSpace(input.Excerpt),
		CreatedTime:  created.UTC(),
		ModifiedTime: modified.UTC(),
		CategoryID:   input.CategoryID,
		AuthorID:     input.AuthorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := findTags(tx, input.TagIDs)
		if err != nil {
			return err
		}
		post.Tags = tags
		return tx.Create(&post).Error
	})
	if err != nil {
		return nil, translateReferenceError(err)
	}

	return s.Get(post.ID)
}

// Update applies updates to an existing post and refreshes its modified time.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Body = input.Body
	existing.Excerpt = strings.TrimSpace(input.Excerpt)
	existing.CategoryID = input.CategoryID
	existing.AuthorID = input.AuthorID
	existing.ModifiedTime = s.now().UTC()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := findTags(tx, input.TagIDs)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&existing).Error; err != nil {
			return err
		}
		return tx.Model(&existing).Association("Tags").Replace(tags)
	})
	if err != nil {
		return nil, translateReferenceError(err)
	}

	return s.Get(id)
}

// Delete removes a post by id; its tags are kept.
func (s *PostService) Delete(id uint) error {
	if err := db.DeleteRecord(s.db, &db.Post{ID: id}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, db.ErrMissingPrimaryKey) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *PostService) listQuery() *gorm.DB {
	return s.db.Model(&db.Post{}).
		Preload("Category").
		Preload("Tags").
		Preload("Author").
		Order("posts.created_time desc").
		Order("posts.id desc")
}

func findTags(tx *gorm.DB, ids []uint) ([]db.Tag, error) {
	ids = lo.Uniq(lo.Filter(ids, func(id uint, _ int) bool { return id != 0 }))
	if len(ids) == 0 {
		return []db.Tag{}, nil
	}

	var tags []db.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

func translateReferenceError(err error) error {
	switch {
	case errors.Is(err, db.ErrCategoryMissing):
		return ErrCategoryNotFound
	case errors.Is(err, db.ErrAuthorMissing):
		return ErrAuthorNotFound
	default:
		return err
	}
}
