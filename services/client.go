package services

import (
	"context"
	"errors"
	"strings"

	"healthtrack/database"
	"healthtrack/models"
)

// ClientStore is the persistence the client service needs.
type ClientStore interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	SearchClients(ctx context.Context, term string) ([]models.Client, error)
	FindClient(ctx context.Context, id uint, withEnrollments bool) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClient(ctx context.Context, client *models.Client) (*models.Client, error)
	DeleteClient(ctx context.Context, id uint) error
}

// ClientInput holds every client field; all of them are mandatory.
type ClientInput struct {
	Name    string `json:"name" label:"Name" validate:"required"`
	Age     *int   `json:"age" label:"Age" validate:"required,gte=0" invalid:"Age must be a non-negative number"`
	Gender  string `json:"gender" label:"Gender" validate:"required"`
	Phone   string `json:"phone" label:"Phone" validate:"required"`
	Address string `json:"address" label:"Address" validate:"required"`
}

const msgClientNotFound = "Client not found"

type ClientService struct {
	store ClientStore
}

func NewClientService(store ClientStore) *ClientService {
	return &ClientService{store: store}
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, unexpected(err)
	}
	return clients, nil
}

// Search returns clients whose name contains namePart, ignoring case.
func (s *ClientService) Search(ctx context.Context, namePart string) ([]models.Client, error) {
	term := strings.ToLower(trimmed(namePart))
	if term == "" {
		return nil, validationError("Search term is required")
	}
	clients, err := s.store.SearchClients(ctx, term)
	if err != nil {
		return nil, unexpected(err)
	}
	return clients, nil
}

// Get returns a client with its enrollments, each joined to its program.
func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.store.FindClient(ctx, id, true)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound(msgClientNotFound)
	}
	if err != nil {
		return nil, unexpected(err)
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	client, err := normalizeClient(in)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateClient(ctx, client); err != nil {
		return nil, unexpected(err)
	}
	return client, nil
}

// Update overwrites all fields of an existing client.
func (s *ClientService) Update(ctx context.Context, id uint, in ClientInput) (*models.Client, error) {
	client, err := normalizeClient(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.FindClient(ctx, id, false); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound(msgClientNotFound)
		}
		return nil, unexpected(err)
	}

	client.ID = id
	updated, err := s.store.UpdateClient(ctx, client)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound(msgClientNotFound)
	}
	if err != nil {
		return nil, unexpected(err)
	}
	return updated, nil
}

// Delete removes the client together with all of its enrollments.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	err := s.store.DeleteClient(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound(msgClientNotFound)
	}
	if err != nil {
		return unexpected(err)
	}
	return nil
}

func normalizeClient(in ClientInput) (*models.Client, error) {
	in.Name = trimmed(in.Name)
	in.Gender = trimmed(in.Gender)
	in.Phone = trimmed(in.Phone)
	in.Address = trimmed(in.Address)
	if err := checkInput(&in); err != nil {
		return nil, err
	}

	return &models.Client{
		Name:    strings.ToLower(in.Name),
		Age:     *in.Age,
		Gender:  in.Gender,
		Phone:   in.Phone,
		Address: in.Address,
	}, nil
}
