package service

import (
	"errors"

	"github.com/tinyblog/internal/db"
	"gorm.io/gorm"
)

var ErrAuthorNotFound = errors.New("author not found")

// AuthorService 管理文章作者，作者即 users 表中的用户。
type AuthorService struct {
	db *gorm.DB
}

// NewAuthorService creates an AuthorService instance.
func NewAuthorService(gdb *gorm.DB) *AuthorService {
	return &AuthorService{db: gdb}
}

// Ensure returns the named author, creating it with a bcrypt hashed password when absent.
func (s *AuthorService) Ensure(username, password string) (*db.User, error) {
	user, err := db.EnsureUser(s.db, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNameRequired
	}
	return user, nil
}

// Get fetches an author by id.
func (s *AuthorService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes an author together with every post they wrote.
func (s *AuthorService) Delete(id uint) error {
	if err := db.DeleteRecord(s.db, &db.User{ID: id}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, db.ErrMissingPrimaryKey) {
			return ErrAuthorNotFound
		}
		return err
	}
	return nil
}
