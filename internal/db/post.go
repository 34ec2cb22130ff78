package db

import (
	"time"

	"gorm.io/gorm"
)

// Post 定义了文章模型
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:70;not null" json:"title" validate:"required,max=70"`
	Body         string    `gorm:"type:text;not null" json:"body" validate:"required"`
	CreatedTime  time.Time `gorm:"not null;index" json:"created_time" validate:"required"`
	ModifiedTime time.Time `gorm:"not null" json:"modified_time" validate:"required"`
	// 摘要可以为空
	Excerpt string `gorm:"size:200;not null;default:''" json:"excerpt" validate:"max=200"`

	CategoryID uint     `gorm:"not null;index" json:"category_id" validate:"required"`
	Category   Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"category" validate:"-"`
	Tags       []Tag    `gorm:"many2many:post_tags;" json:"tags" validate:"-"`
	AuthorID   uint     `gorm:"not null;index" json:"author_id" validate:"required"`
	Author     User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author" validate:"-"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) PrimaryKey() uint { return p.ID }

func (p *Post) Validate() error { return validateStruct(p) }

// DeleteRules 删除文章时移除它与标签的关联行。
func (p *Post) DeleteRules() []DeleteRule {
	return []DeleteRule{{Action: Detach, Table: "post_tags", Column: "post_id"}}
}

// BeforeSave 校验字段约束，并确认分类与作者存在。
// 时间统一转为 UTC 存储，sqlite 按文本比较时间列。
func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.CreatedTime = p.CreatedTime.UTC()
	p.ModifiedTime = p.ModifiedTime.UTC()

	if err := p.Validate(); err != nil {
		return err
	}

	count, err := countByID(tx, &Category{}, p.CategoryID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryMissing
	}

	count, err = countByID(tx, &User{}, p.AuthorID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrAuthorMissing
	}
	return nil
}

func loadPostsBy(column string) func(tx *gorm.DB, id uint) ([]Persistable, error) {
	return func(tx *gorm.DB, id uint) ([]Persistable, error) {
		var posts []Post
		if err := tx.Where(column+" = ?", id).Find(&posts).Error; err != nil {
			return nil, err
		}
		dependents := make([]Persistable, 0, len(posts))
		for i := range posts {
			dependents = append(dependents, &posts[i])
		}
		return dependents, nil
	}
}
