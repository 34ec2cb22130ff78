package seed

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinyblog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sampleFixture = `
author:
  username: admin
  password: admin123
categories: [Go, Django]
tags: [tutorial, web]
posts:
  - title: January
    body: "# 一月"
    category: Go
    tags: [tutorial]
    created_time: 2020-01-01T00:00:00Z
  - title: March
    body: "三月正文"
    excerpt: 三月摘要
    category: Django
    tags: [tutorial, web]
    created_time: 2020-03-01T00:00:00Z
  - title: February
    body: "二月正文"
    category: Go
    created_time: 2020-02-01T00:00:00Z
`

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:seed-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func TestParse(t *testing.T) {
	fixture, err := Parse(strings.NewReader(sampleFixture))
	require.NoError(t, err)

	assert.Equal(t, "admin", fixture.Author.Username)
	assert.Equal(t, []string{"Go", "Django"}, fixture.Categories)
	require.Len(t, fixture.Posts, 3)
	assert.Equal(t, []string{"tutorial", "web"}, fixture.Posts[1].Tags)
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), fixture.Posts[1].CreatedTime.UTC())
}

func TestParseRejectsInvalidFixtures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "unknown field", doc: "author: {username: a, password: b}\nwidgets: [x]\n"},
		{name: "undeclared category", doc: "author: {username: a, password: b}\ncategories: [Go]\nposts:\n  - {title: t, body: b, category: Rust}\n"},
		{name: "undeclared tag", doc: "author: {username: a, password: b}\ncategories: [Go]\nposts:\n  - {title: t, body: b, category: Go, tags: [x]}\n"},
		{name: "posts without author", doc: "categories: [Go]\nposts:\n  - {title: t, body: b, category: Go}\n"},
		{name: "blank category", doc: "categories: [\"  \"]\n"},
		{name: "untitled post", doc: "author: {username: a, password: b}\ncategories: [Go]\nposts:\n  - {body: b, category: Go}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidFixture)
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	gdb := setupSeedTestDB(t)
	svc := NewServices(gdb)

	fixture, err := Parse(strings.NewReader(sampleFixture))
	require.NoError(t, err)

	result, err := Apply(context.Background(), svc, fixture)
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 2, Tags: 2, Posts: 3}, result)

	again, err := Apply(context.Background(), svc, fixture)
	require.NoError(t, err)
	assert.Equal(t, Result{}, again)

	posts, err := svc.Posts.ListAll()
	require.NoError(t, err)
	titles := make([]string, 0, len(posts))
	for _, post := range posts {
		titles = append(titles, post.Title)
	}
	assert.Equal(t, []string{"March", "February", "January"}, titles)

	assert.Equal(t, "Django", posts[0].Category.Name)
	assert.Len(t, posts[0].Tags, 2)
	assert.Equal(t, "三月摘要", posts[0].Excerpt)
	assert.Equal(t, "admin", posts[0].Author.Username)
}

func TestApplyHonoursCancelledContext(t *testing.T) {
	gdb := setupSeedTestDB(t)

	fixture, err := Parse(strings.NewReader(sampleFixture))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Apply(ctx, NewServices(gdb), fixture)
	assert.ErrorIs(t, err, context.Canceled)

	var count int64
	require.NoError(t, gdb.Model(&db.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}
