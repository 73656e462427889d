// Package sale implementa el registro de compras: una cabecera más sus líneas
// con snapshot de precio, escritas en una única transacción PostgreSQL.
package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una misma transacción.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sales repository.SaleRepository,
		products repository.ProductRepository,
	) error) error
}

// UseCase casos de uso de compras.
type UseCase struct {
	tx        TxRunner
	sales     repository.SaleRepository
	customers repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, sales repository.SaleRepository, customers repository.CustomerRepository) *UseCase {
	return &UseCase{tx: tx, sales: sales, customers: customers}
}

// Create registra una compra. El precio unitario de cada línea es el precio
// vigente del producto en ese momento; el total es la suma de los subtotales y
// NO se recalcula jamás, aunque el precio del producto cambie después.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Date:       now,
		CreatedAt:  now,
	}

	err = uc.tx.Run(ctx, func(sales repository.SaleRepository, products repository.ProductRepository) error {
		total := decimal.Zero
		details := make([]entity.SaleDetail, 0, len(in.Lines))
		for _, line := range in.Lines {
			product, err := products.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			qty := decimal.NewFromInt(int64(line.Quantity))
			subtotal := product.Price.Mul(qty)
			details = append(details, entity.SaleDetail{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
				Subtotal:    subtotal,
			})
			total = total.Add(subtotal)
		}
		sale.Total = total
		sale.Details = details

		if err := sales.CreateHeader(ctx, sale); err != nil {
			return err
		}
		for i := range sale.Details {
			if err := sales.CreateDetail(ctx, &sale.Details[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetByID obtiene una compra con sus líneas; nil si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// ListByCustomer historial de compras de un cliente (más reciente primero).
func (uc *UseCase) ListByCustomer(ctx context.Context, customerID string) ([]*dto.SaleResponse, error) {
	list, err := uc.sales.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Details))
	for _, d := range s.Details {
		lines = append(lines, dto.SaleLineResponse{
			ProductID: d.ProductID,
			Product:   d.ProductName,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		Date:       s.Date,
		Total:      s.Total,
		Lines:      lines,
	}
}
