package services

import (
	"errors"
	"strings"

	"github.com/communitypulse/backend/internal/dto"
	"github.com/communitypulse/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotProfileOwner = errors.New("not authorized to update this profile")
	ErrInvalidRole     = errors.New("invalid role")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Profile returns one user together with post/flag counts.
func (s *UserService) Profile(id uuid.UUID) (*dto.UserProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var postCount, flagCount int64
	s.db.Model(&models.Post{}).Where("author_id = ?", id).Count(&postCount)
	s.db.Model(&models.Flag{}).Where("flagged_by = ?", id).Count(&flagCount)

	return &dto.UserProfileResponse{
		PublicUser: dto.NewPublicUser(&user),
		Stats:      dto.UserStats{Posts: postCount, Flags: flagCount},
	}, nil
}

// UpdateProfile edits name/email for self or by an admin.
func (s *UserService) UpdateProfile(id, actorID uuid.UUID, actorRole string, req *dto.UpdateProfileRequest) (*models.User, error) {
	if id != actorID && actorRole != models.RoleAdmin {
		return nil, ErrNotProfileOwner
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		if len(name) < 2 || len(name) > 100 {
			return nil, errors.New("name must be between 2 and 100 characters")
		}
		updates["name"] = name
	}
	if req.Email != "" && req.Email != user.Email {
		var existing models.User
		if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return nil, ErrEmailTaken
		}
		updates["email"] = req.Email
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.User
	if err := s.db.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// List returns users for the admin panel with optional search and role
// filters.
func (s *UserService) List(search, role string, page, limit int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.User{})
	if search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", needle, needle)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error
	return users, total, err
}

// SetRole changes a user's role (admin only, enforced at the route).
func (s *UserService) SetRole(id uuid.UUID, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ErrUserNotFound
	}
	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return &user, nil
}
