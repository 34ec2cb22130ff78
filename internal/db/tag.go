package db

import "gorm.io/gorm"

// Tag 定义了标签模型，与文章是多对多关系
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Posts []Post `gorm:"many2many:post_tags;" json:"-" validate:"-"`
}

func (Tag) TableName() string { return "tags" }

func (t *Tag) PrimaryKey() uint { return t.ID }

func (t *Tag) Validate() error { return validateStruct(t) }

// DeleteRules 删除标签只解除关联，文章保留。
func (t *Tag) DeleteRules() []DeleteRule {
	return []DeleteRule{{Action: Detach, Table: "post_tags", Column: "tag_id"}}
}

func (t *Tag) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}
