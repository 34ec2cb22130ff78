package db

import "gorm.io/gorm"

// Category 定义了文章分类，一个分类下可以有多篇文章。
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) PrimaryKey() uint { return c.ID }

func (c *Category) Validate() error { return validateStruct(c) }

// DeleteRules 删除分类时级联删除其下全部文章。
func (c *Category) DeleteRules() []DeleteRule {
	return []DeleteRule{{
		Action: Cascade,
		Table:  "posts",
		Column: "category_id",
		Load:   loadPostsBy("category_id"),
	}}
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	return c.Validate()
}
