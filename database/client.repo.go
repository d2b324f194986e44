package database

import (
	"context"
	"strings"

	"healthtrack/models"

	"gorm.io/gorm"
)

// likeEscaper escapes LIKE wildcards with '!', an escape character every
// supported dialect accepts inside a plain string literal.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ListClients returns every client ordered by name.
func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	if err := s.DB.WithContext(ctx).Order("name asc").Order("id asc").Find(&clients).Error; err != nil {
		return nil, Classify(err)
	}
	return clients, nil
}

// SearchClients returns clients whose stored name contains term. The term is
// matched literally; callers normalise its case.
func (s *Store) SearchClients(ctx context.Context, term string) ([]models.Client, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"

	clients := []models.Client{}
	err := s.DB.WithContext(ctx).
		Where("name LIKE ? ESCAPE '!'", pattern).
		Order("name asc").Order("id asc").
		Find(&clients).Error
	if err != nil {
		return nil, Classify(err)
	}
	return clients, nil
}

// FindClient loads one client, optionally with its enrollments and their programs.
func (s *Store) FindClient(ctx context.Context, id uint, withEnrollments bool) (*models.Client, error) {
	q := s.DB.WithContext(ctx)
	if withEnrollments {
		q = q.Preload("Enrollments", orderByEnrolledAt).Preload("Enrollments.Program")
	}

	var client models.Client
	if err := q.First(&client, id).Error; err != nil {
		return nil, Classify(err)
	}
	if withEnrollments && client.Enrollments == nil {
		client.Enrollments = []models.Enrollment{}
	}
	return &client, nil
}

func (s *Store) CreateClient(ctx context.Context, client *models.Client) error {
	return Classify(s.DB.WithContext(ctx).Create(client).Error)
}

// UpdateClient overwrites every mutable column of the client identified by client.ID.
func (s *Store) UpdateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	result := s.DB.WithContext(ctx).Model(&models.Client{ID: client.ID}).Updates(map[string]interface{}{
		"name":    client.Name,
		"age":     client.Age,
		"gender":  client.Gender,
		"phone":   client.Phone,
		"address": client.Address,
	})
	if result.Error != nil {
		return nil, Classify(result.Error)
	}
	return s.FindClient(ctx, client.ID, false)
}

// DeleteClient removes the client's enrollments and then the client, in one
// transaction. ErrNotFound is returned, and nothing is removed, when the client
// does not exist.
func (s *Store) DeleteClient(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Client{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return Classify(err)
}
