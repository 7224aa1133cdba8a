// Package service holds the business logic of authboard: user persistence
// and the authentication use-case.
package service

import (
	"authboard/database"
	"authboard/database/model"
)

// UserService persists and looks up user accounts. Each call acquires its
// own connection from the pool and releases it on return.
type UserService struct{}

// Create inserts a new user row and returns the populated entity. The
// caller is expected to classify a duplicate-email failure via
// database.IsDuplicateKey.
func (s *UserService) Create(username string, email string, passwordHash string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID returns the user with the given id, or nil if absent. Absence is
// not an error.
func (s *UserService) GetByID(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail returns the user registered under email, or nil if absent.
func (s *UserService) GetByEmail(email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return user, nil
}
