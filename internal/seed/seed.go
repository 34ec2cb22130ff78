// Package seed 从 YAML 文件批量导入分类、标签与文章。
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tinyblog/internal/db"
	"github.com/tinyblog/internal/logging"
	"github.com/tinyblog/internal/service"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

var ErrInvalidFixture = errors.New("invalid fixture")

// Fixture 是种子文件的顶层结构。
type Fixture struct {
	Author     AuthorFixture `yaml:"author"`
	Categories []string      `yaml:"categories"`
	Tags       []string      `yaml:"tags"`
	Posts      []PostFixture `yaml:"posts"`
}

type AuthorFixture struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type PostFixture struct {
	Title        string    `yaml:"title"`
	Body         string    `yaml:"body"`
	Excerpt      string    `yaml:"excerpt"`
	Category     string    `yaml:"category"`
	Tags         []string  `yaml:"tags"`
	CreatedTime  time.Time `yaml:"created_time"`
	ModifiedTime time.Time `yaml:"modified_time"`
}

// Services 是 Apply 写入时使用的服务集合。
type Services struct {
	Authors    *service.AuthorService
	Categories *service.CategoryService
	Tags       *service.TagService
	Posts      *service.PostService
}

// NewServices builds the service set on top of one database handle.
func NewServices(gdb *gorm.DB) Services {
	return Services{
		Authors:    service.NewAuthorService(gdb),
		Categories: service.NewCategoryService(gdb),
		Tags:       service.NewTagService(gdb),
		Posts:      service.NewPostService(gdb),
	}
}

// Result 统计一次导入实际新建的记录数。
type Result struct {
	Categories int
	Tags       int
	Posts      int
}

// Parse decodes and validates a fixture document.
func Parse(r io.Reader) (*Fixture, error) {
	var fixture Fixture
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidFixture)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	if err := fixture.validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

func (f *Fixture) validate() error {
	f.Author.Username = strings.TrimSpace(f.Author.Username)
	f.Categories = normalizeNames(f.Categories)
	f.Tags = normalizeNames(f.Tags)

	if len(f.Posts) > 0 && (f.Author.Username == "" || f.Author.Password == "") {
		return fmt.Errorf("%w: posts require an author with username and password", ErrInvalidFixture)
	}
	if lo.Contains(f.Categories, "") {
		return fmt.Errorf("%w: category name is empty", ErrInvalidFixture)
	}
	if lo.Contains(f.Tags, "") {
		return fmt.Errorf("%w: tag name is empty", ErrInvalidFixture)
	}

	for i := range f.Posts {
		post := &f.Posts[i]
		post.Title = strings.TrimSpace(post.Title)
		post.Category = strings.TrimSpace(post.Category)
		post.Tags = normalizeNames(post.Tags)

		if post.Title == "" {
			return fmt.Errorf("%w: post #%d has no title", ErrInvalidFixture, i+1)
		}
		if !lo.Contains(f.Categories, post.Category) {
			return fmt.Errorf("%w: post %q refers to undeclared category %q", ErrInvalidFixture, post.Title, post.Category)
		}
		if missing, _ := lo.Difference(post.Tags, f.Tags); len(missing) > 0 {
			return fmt.Errorf("%w: post %q refers to undeclared tags %s", ErrInvalidFixture, post.Title, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Apply writes the fixture. Categories and tags are matched by name so the
// same file can be applied repeatedly; posts are matched by title within
// their category.
func Apply(ctx context.Context, svc Services, fixture *Fixture) (Result, error) {
	var result Result
	if fixture == nil {
		return result, nil
	}

	categoryIDs := make(map[string]uint, len(fixture.Categories))
	for _, name := range fixture.Categories {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		category, created, err := ensureCategory(svc.Categories, name)
		if err != nil {
			return result, fmt.Errorf("category %q: %w", name, err)
		}
		if created {
			result.Categories++
		}
		categoryIDs[name] = category.ID
	}

	tagIDs := make(map[string]uint, len(fixture.Tags))
	for _, name := range fixture.Tags {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		tag, created, err := ensureTag(svc.Tags, name)
		if err != nil {
			return result, fmt.Errorf("tag %q: %w", name, err)
		}
		if created {
			result.Tags++
		}
		tagIDs[name] = tag.ID
	}

	if len(fixture.Posts) == 0 {
		return result, nil
	}

	author, err := svc.Authors.Ensure(fixture.Author.Username, fixture.Author.Password)
	if err != nil {
		return result, fmt.Errorf("author %q: %w", fixture.Author.Username, err)
	}

	for _, item := range fixture.Posts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		categoryID := categoryIDs[item.Category]
		existing, err := svc.Posts.ListByCategory(categoryID)
		if err != nil {
			return result, err
		}
		if lo.ContainsBy(existing, func(p db.Post) bool { return p.Title == item.Title }) {
			logging.Logger.WithField("title", item.Title).Debug("seed: post already exists")
			continue
		}

		post, err := svc.Posts.Create(service.PostInput{
			Title:        item.Title,
			Body:         item.Body,
			Excerpt:      item.Excerpt,
			CategoryID:   categoryID,
			AuthorID:     author.ID,
			TagIDs:       lo.Map(item.Tags, func(name string, _ int) uint { return tagIDs[name] }),
			CreatedTime:  item.CreatedTime,
			ModifiedTime: item.ModifiedTime,
		})
		if err != nil {
			return result, fmt.Errorf("post %q: %w", item.Title, err)
		}
		result.Posts++
		logging.Logger.WithFields(logrus.Fields{
			"id":       post.ID,
			"title":    post.Title,
			"category": item.Category,
		}).Info("seed: post created")
	}

	return result, nil
}

func ensureCategory(svc *service.CategoryService, name string) (*db.Category, bool, error) {
	category, err := svc.FindByName(name)
	if err == nil {
		return category, false, nil
	}
	if !errors.Is(err, service.ErrCategoryNotFound) {
		return nil, false, err
	}
	category, err = svc.Create(name)
	return category, err == nil, err
}

func ensureTag(svc *service.TagService, name string) (*db.Tag, bool, error) {
	tag, err := svc.FindByName(name)
	if err == nil {
		return tag, false, nil
	}
	if !errors.Is(err, service.ErrTagNotFound) {
		return nil, false, err
	}
	tag, err = svc.Create(name)
	return tag, err == nil, err
}

func normalizeNames(names []string) []string {
	return lo.Uniq(lo.Map(names, func(name string, _ int) string { return strings.TrimSpace(name) }))
}
