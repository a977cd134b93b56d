package products

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:products_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  sku TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  barcode TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestService_CreateAndGet(t *testing.T) {
	db := setupProductsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	barcode := " 0123456789012 "
	created, err := svc.Create(ctx, CreateProductInput{SKU: " SKU-A ", Name: " Box Small ", Barcode: &barcode})
	require.NoError(t, err)
	assert.Equal(t, "SKU-A", created.SKU)
	assert.Equal(t, "Box Small", created.Name)
	require.NotNil(t, created.Barcode)
	assert.Equal(t, "0123456789012", *created.Barcode)

	got, err := svc.Get(ctx, "SKU-A")
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	got, err = svc.GetByBarcode(ctx, "0123456789012")
	require.NoError(t, err)
	assert.Equal(t, "SKU-A", got.SKU)
}

func TestService_CreateDuplicateSKU(t *testing.T) {
	db := setupProductsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductInput{SKU: "SKU-A", Name: "Box Small"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateProductInput{SKU: "SKU-A", Name: "Box Other"})
	require.Error(t, err)

	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestService_UpdateCosmeticFields(t *testing.T) {
	db := setupProductsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductInput{SKU: "SKU-A", Name: "Box Small"})
	require.NoError(t, err)

	name := "Box Small v2"
	barcode := "9999999999999"
	updated, err := svc.Update(ctx, "SKU-A", UpdateProductInput{Name: &name, Barcode: &barcode})
	require.NoError(t, err)
	assert.Equal(t, "Box Small v2", updated.Name)
	require.NotNil(t, updated.Barcode)
	assert.Equal(t, "9999999999999", *updated.Barcode)

	// clearing the barcode stores NULL
	empty := "  "
	updated, err = svc.Update(ctx, "SKU-A", UpdateProductInput{Barcode: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Barcode)
}

func TestService_UpdateValidation(t *testing.T) {
	db := setupProductsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductInput{SKU: "SKU-A", Name: "Box Small"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "SKU-A", UpdateProductInput{})
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	blank := ""
	_, err = svc.Update(ctx, "SKU-A", UpdateProductInput{Name: &blank})
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	name := "Ghost"
	_, err = svc.Update(ctx, "SKU-MISSING", UpdateProductInput{Name: &name})
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestService_ListOrdersByName(t *testing.T) {
	db := setupProductsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductInput{SKU: "SKU-B", Name: "Tape"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateProductInput{SKU: "SKU-A", Name: "Box"})
	require.NoError(t, err)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Box", products[0].Name)
	assert.Equal(t, "Tape", products[1].Name)
}
