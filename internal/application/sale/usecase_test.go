package sale_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/application/sale"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memSaleRepo struct {
	headers []*entity.Sale
	details []*entity.SaleDetail
	failOn  string // id de producto cuyo detalle falla al insertarse
}

func (r *memSaleRepo) CreateHeader(ctx context.Context, s *entity.Sale) error {
	r.headers = append(r.headers, s)
	return nil
}
func (r *memSaleRepo) CreateDetail(ctx context.Context, d *entity.SaleDetail) error {
	if r.failOn != "" && d.ProductID == r.failOn {
		return errors.New("detalle_compra: inserción fallida")
	}
	r.details = append(r.details, d)
	return nil
}
func (r *memSaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	for _, s := range r.headers {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (r *memSaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.headers {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *memSaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error) {
	return r.headers, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(ctx context.Context, p *entity.Product) error { return nil }
func (r *memProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) List(ctx context.Context) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(ctx context.Context, p *entity.Product) error { return nil }
func (r *memProductRepo) Delete(ctx context.Context, id string) error         { return nil }

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *memCustomerRepo) Create(ctx context.Context, c *entity.Customer) error { return nil }
func (r *memCustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *memCustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *memCustomerRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *memCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (r *memCustomerRepo) Delete(ctx context.Context, id string) error          { return nil }

// memTxRunner simula la transacción: pasa los mismos repos en memoria y, si fn
// falla, descarta todo lo escrito durante el "tx" (rollback).
type memTxRunner struct {
	sales    *memSaleRepo
	products *memProductRepo
}

func (t *memTxRunner) Run(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	headersBefore := len(t.sales.headers)
	detailsBefore := len(t.sales.details)
	if err := fn(t.sales, t.products); err != nil {
		t.sales.headers = t.sales.headers[:headersBefore]
		t.sales.details = t.sales.details[:detailsBefore]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	customerID = "00000000-0000-0000-0000-000000000010"
	prodCono   = "00000000-0000-0000-0000-000000000021"
	prodLitro  = "00000000-0000-0000-0000-000000000022"
)

func buildSaleUseCase(t *testing.T) (*sale.UseCase, *memSaleRepo, *memProductRepo) {
	t.Helper()
	sales := &memSaleRepo{}
	products := &memProductRepo{products: map[string]*entity.Product{
		prodCono:  {ID: prodCono, Name: "Cono doble", Price: decimal.RequireFromString("6.50")},
		prodLitro: {ID: prodLitro, Name: "Litro de lúcuma", Price: decimal.RequireFromString("24.90")},
	}}
	customers := &memCustomerRepo{customers: map[string]*entity.Customer{
		customerID: {ID: customerID, FirstNames: "Lucía"},
	}}
	tx := &memTxRunner{sales: sales, products: products}
	return sale.NewUseCase(tx, sales, customers), sales, products
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_TotalEsSumaDeSubtotales(t *testing.T) {
	uc, sales, _ := buildSaleUseCase(t)

	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: customerID,
		Lines: []dto.SaleLineRequest{
			{ProductID: prodCono, Quantity: 3},  // 19.50
			{ProductID: prodLitro, Quantity: 1}, // 24.90
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, decimal.RequireFromString("44.40").Equal(out.Total),
		"total esperado 44.40, obtenido %s", out.Total)

	require.Len(t, out.Lines, 2)
	assert.True(t, decimal.RequireFromString("19.50").Equal(out.Lines[0].Subtotal))
	assert.True(t, decimal.RequireFromString("6.50").Equal(out.Lines[0].UnitPrice))
	assert.Equal(t, "Cono doble", out.Lines[0].Product)

	require.Len(t, sales.headers, 1)
	assert.Len(t, sales.details, 2)
}

// El precio unitario es un snapshot: cambiar el precio del producto después de
// la venta no altera el histórico.
func TestCreateSale_SnapshotDePrecio(t *testing.T) {
	uc, sales, products := buildSaleUseCase(t)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: customerID,
		Lines:      []dto.SaleLineRequest{{ProductID: prodCono, Quantity: 2}},
	})
	require.NoError(t, err)

	// Sube el precio del catálogo.
	products.products[prodCono].Price = decimal.RequireFromString("9.00")

	stored, err := uc.GetByID(context.Background(), sales.headers[0].ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, decimal.RequireFromString("6.50").Equal(stored.Lines[0].UnitPrice),
		"el precio histórico no debe seguir al catálogo")
	assert.True(t, decimal.RequireFromString("13.00").Equal(stored.Total))
}

func TestCreateSale_ValidaEntrada(t *testing.T) {
	uc, _, _ := buildSaleUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSaleRequest{CustomerID: customerID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas no hay venta")

	_, err = uc.Create(ctx, dto.CreateSaleRequest{
		CustomerID: customerID,
		Lines:      []dto.SaleLineRequest{{ProductID: prodCono, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero es inválida")

	_, err = uc.Create(ctx, dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: prodCono, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cliente requerido")
}

func TestCreateSale_ClienteOProductoInexistente(t *testing.T) {
	uc, sales, _ := buildSaleUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSaleRequest{
		CustomerID: "no-existe",
		Lines:      []dto.SaleLineRequest{{ProductID: prodCono, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.CreateSaleRequest{
		CustomerID: customerID,
		Lines:      []dto.SaleLineRequest{{ProductID: "no-existe", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, sales.headers, "nada debe persistirse")
}

// Cabecera y líneas viven o mueren juntas: si una línea falla dentro de la
// transacción, la cabecera tampoco queda.
func TestCreateSale_FalloDeLineaDeshaceTodo(t *testing.T) {
	uc, sales, _ := buildSaleUseCase(t)
	sales.failOn = prodLitro

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		CustomerID: customerID,
		Lines: []dto.SaleLineRequest{
			{ProductID: prodCono, Quantity: 1},
			{ProductID: prodLitro, Quantity: 1},
		},
	})
	require.Error(t, err)

	assert.Empty(t, sales.headers, "la cabecera debe deshacerse con la transacción")
	assert.Empty(t, sales.details, "las líneas previas deben deshacerse con la transacción")
}
