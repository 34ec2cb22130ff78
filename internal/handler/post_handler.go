package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/tinyblog/internal/db"
)

type postResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	CreatedTime  time.Time `json:"created_time"`
	ModifiedTime time.Time `json:"modified_time"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	Author       string    `json:"author"`
}

func newPostResponse(post db.Post, _ int) postResponse {
	return postResponse{
		ID:           post.ID,
		Title:        post.Title,
		Excerpt:      Excerpt(post),
		CreatedTime:  post.CreatedTime,
		ModifiedTime: post.ModifiedTime,
		Category:     post.Category.Name,
		Tags:         lo.Map(post.Tags, func(tag db.Tag, _ int) string { return tag.Name }),
		Author:       post.Author.Username,
	}
}

// GetPosts 以 JSON 返回全部文章，顺序与首页一致
func (a *API) GetPosts(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		abortWithJSONError(c, err, "获取文章列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_list": lo.Map(posts, newPostResponse)})
}

// GetPost 获取单篇文章
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		abortWithJSONError(c, err, "获取文章失败")
		return
	}

	response := newPostResponse(*post, 0)
	c.JSON(http.StatusOK, gin.H{"post": response, "body": post.Body})
}
