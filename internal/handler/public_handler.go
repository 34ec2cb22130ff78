package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Index renders every post, newest first, bound to post_list.
func (a *API) Index(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "blog/index.html", gin.H{
		"title":     "首页",
		"post_list": posts,
	})
}

// ShowPostDetail renders a single post with its body converted from Markdown.
func (a *API) ShowPostDetail(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	content, err := renderMarkdown(post.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "blog/detail.html", gin.H{
		"title":   post.Title,
		"post":    post,
		"content": content,
	})
}

// ShowCategory lists the posts of one category.
func (a *API) ShowCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	category, err := a.categories.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	posts, err := a.posts.ListByCategory(category.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "blog/index.html", gin.H{
		"title":     category.Name,
		"heading":   "分类：" + category.Name,
		"post_list": posts,
	})
}

// ShowTag lists the posts carrying one tag.
func (a *API) ShowTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	tag, err := a.tags.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	posts, err := a.posts.ListByTag(tag.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "blog/index.html", gin.H{
		"title":     tag.Name,
		"heading":   "标签：" + tag.Name,
		"post_list": posts,
	})
}

// ShowArchive lists the posts created in one calendar month.
func (a *API) ShowArchive(c *gin.Context) {
	year, yearErr := strconv.Atoi(c.Param("year"))
	month, monthErr := strconv.Atoi(c.Param("month"))
	if yearErr != nil || monthErr != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	posts, err := a.posts.ListByMonth(year, time.Month(month))
	if err != nil {
		abortWithError(c, err)
		return
	}

	heading := fmt.Sprintf("归档：%d 年 %d 月", year, month)
	a.renderHTML(c, http.StatusOK, "blog/index.html", gin.H{
		"title":     heading,
		"heading":   heading,
		"post_list": posts,
	})
}
