package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. Solo nombres es obligatorio.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.FirstNames == "" {
		return nil, domain.ErrInvalidInput
	}
	birth, err := parseOptionalDate(in.BirthDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		FirstNames:   in.FirstNames,
		LastNames:    in.LastNames,
		DNI:          in.DNI,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		BirthDate:    birth,
		Notes:        in.Notes,
		RegisteredAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente; nil si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// List devuelve todos los clientes ordenados por fecha_registro descendente.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Search busca por nombres, apellidos, dni o celular.
func (uc *CustomerUseCase) Search(ctx context.Context, term string) ([]*dto.CustomerResponse, error) {
	if term == "" {
		return uc.List(ctx)
	}
	list, err := uc.repo.Search(ctx, term, 20)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza los campos de un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.FirstNames == "" {
		return nil, domain.ErrInvalidInput
	}
	birth, err := parseOptionalDate(in.BirthDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	customer.FirstNames = in.FirstNames
	customer.LastNames = in.LastNames
	customer.DNI = in.DNI
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.Address = in.Address
	customer.BirthDate = birth
	customer.Notes = in.Notes
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina físicamente a un cliente (a diferencia de los usuarios).
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		FirstNames:   c.FirstNames,
		LastNames:    c.LastNames,
		DNI:          c.DNI,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		BirthDate:    c.BirthDate,
		Notes:        c.Notes,
		RegisteredAt: c.RegisteredAt,
	}
}
