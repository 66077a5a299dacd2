package repositories

import (
	"errors"

	"gigwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(userID string) error

	// FindFreelancersWithSkills returns freelancer accounts having at
	// least one of the given skills, with their Skills association
	// loaded. Fake accounts are excluded.
	FindFreelancersWithSkills(skillIDs []string) ([]models.User, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Skills").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	// The unique index on email is the source of truth, so concurrent
	// registrations race down to a constraint violation, not a read check.
	err := r.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) Delete(userID string) error {
	return r.db.Delete(&models.User{}, "id = ?", userID).Error
}

func (r *UserRepositoryImpl) FindFreelancersWithSkills(skillIDs []string) ([]models.User, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}

	var users []models.User
	err := r.db.
		Preload("Skills").
		Distinct("users.*").
		Joins("JOIN user_skills ON user_skills.user_id = users.id").
		Where("user_skills.skill_id IN ?", skillIDs).
		Where("users.account_type = ?", models.AccountTypeFreelancer).
		Where("users.is_fake = ?", false).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
