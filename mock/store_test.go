/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
	"github.com/suparena/storekit/registry"
)

func TestCreateAssignsKeysAndToken(t *testing.T) {
	s := New()
	ctx := context.Background()

	c := &models.Customer{Name: "Ada", Surname: "Lovelace", Username: "ada"}
	require.NoError(t, s.Customers().Create(ctx, c))

	pk, rk := c.Keys()
	assert.Equal(t, "Customer", pk)
	assert.NotEmpty(t, rk)
	assert.NotEmpty(t, c.ConcurrencyToken())

	got, err := s.Customers().Get(ctx, pk, rk)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.ConcurrencyToken(), got.ConcurrencyToken())
}

func TestCreateDuplicateKeyFails(t *testing.T) {
	s := New()
	ctx := context.Background()

	c := &models.Customer{Name: "Ada"}
	c.SetRowKey("c-1")
	require.NoError(t, s.Customers().Create(ctx, c))

	dup := &models.Customer{Name: "Other"}
	dup.SetRowKey("c-1")
	err := s.Customers().Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.IsDuplicateKey(err))
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	c := &models.Customer{Name: "Ada"}
	require.NoError(t, s.Customers().Create(ctx, c))
	pk, rk := c.Keys()

	first, err := s.Customers().Get(ctx, pk, rk)
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := s.Customers().Get(ctx, pk, rk)
	require.NoError(t, err)
	assert.Equal(t, "Ada", second.Name)
}

func TestGetAbsentAndBlankKeys(t *testing.T) {
	s := New()
	ctx := context.Background()

	got, err := s.Customers().Get(ctx, "Customer", "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Customers().Get(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateStaleTokenConflictsThenRetrySucceeds(t *testing.T) {
	s := New()
	ctx := context.Background()
	products := s.Products()

	p := &models.Product{Name: "Widget", Price: models.MustParsePrice("19.99"), StockAvailable: 10}
	require.NoError(t, products.Create(ctx, p))
	pk, rk := p.Keys()

	// A concurrent writer rotates the token.
	other, err := products.Get(ctx, pk, rk)
	require.NoError(t, err)
	other.StockAvailable = 9
	require.NoError(t, products.Update(ctx, other))

	stale := *p
	stale.StockAvailable = 7
	err = products.Update(ctx, &stale)
	require.Error(t, err)
	assert.True(t, errors.IsConcurrencyConflict(err))

	// Re-read to pick up the current token, then retry.
	fresh, err := products.Get(ctx, pk, rk)
	require.NoError(t, err)
	fresh.StockAvailable = 7
	require.NoError(t, products.Update(ctx, fresh))

	got, err := products.Get(ctx, pk, rk)
	require.NoError(t, err)
	assert.Equal(t, 7, got.StockAvailable)
	assert.NotEqual(t, other.ConcurrencyToken(), got.ConcurrencyToken())
}

func TestUpdateRequiresToken(t *testing.T) {
	s := New()

	p := &models.Product{Name: "Widget"}
	p.SetPartitionKey("Product")
	p.SetRowKey("p-1")
	err := s.Products().Update(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	c := &models.Customer{Name: "Ada"}
	require.NoError(t, s.Customers().Create(ctx, c))
	pk, rk := c.Keys()

	require.NoError(t, s.Customers().Delete(ctx, pk, rk))
	require.NoError(t, s.Customers().Delete(ctx, pk, rk))
	require.NoError(t, s.Customers().Delete(ctx, "", ""))

	got, err := s.Customers().Get(ctx, pk, rk)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderPlacementDecrementsStock(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := &models.Product{Name: "Widget", Price: models.MustParsePrice("19.99"), StockAvailable: 10}
	require.NoError(t, s.Products().Create(ctx, p))
	pk, rk := p.Keys()

	quantity := 3
	order := &models.Order{
		ProductID:   rk,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		TotalPrice:  p.Price.MulInt(quantity),
		Status:      models.StatusSubmitted,
	}
	require.NoError(t, s.Orders().Create(ctx, order))

	p.StockAvailable -= quantity
	require.NoError(t, s.Products().Update(ctx, p))

	got, err := s.Products().Get(ctx, pk, rk)
	require.NoError(t, err)
	assert.Equal(t, 7, got.StockAvailable)
	assert.Equal(t, "59.97", order.TotalPrice.String())
}

func TestUpdateOrderStatus(t *testing.T) {
	s := New()
	ctx := context.Background()

	order := &models.Order{Status: models.StatusSubmitted}
	require.NoError(t, s.Orders().Create(ctx, order))
	pk, rk := order.Keys()

	require.NoError(t, s.UpdateOrderStatus(ctx, rk, models.StatusShipped))

	got, err := s.Orders().Get(ctx, pk, rk)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, got.Status)
	assert.NotEqual(t, order.ConcurrencyToken(), got.ConcurrencyToken())

	err = s.UpdateOrderStatus(ctx, "missing", models.StatusShipped)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestQueueReceiveIsFIFOAndAcknowledges(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Queues().Send(ctx, registry.OrderQueue, "first"))
	require.NoError(t, s.Queues().Send(ctx, registry.OrderQueue, "second"))

	got, err := s.Queues().Receive(ctx, registry.OrderQueue)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", *got)

	got, err = s.Queues().Receive(ctx, registry.OrderQueue)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", *got)

	got, err = s.Queues().Receive(ctx, registry.OrderQueue)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBlobUploadNaming(t *testing.T) {
	s := New()
	ctx := context.Background()

	image := models.FileContent{Name: "widget.png", Reader: strings.NewReader("png")}
	locator, err := s.Blobs().Upload(ctx, image, registry.ImageContainer)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(locator, "https://"))
	assert.True(t, strings.HasSuffix(locator, ".png"))
	assert.NotContains(t, locator, "widget")

	doc := models.FileContent{Name: "receipt.pdf", Reader: strings.NewReader("%PDF")}
	name, err := s.Blobs().Upload(ctx, doc, registry.DocumentContainer)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(name, "https://"))
	assert.True(t, strings.HasSuffix(name, "_receipt.pdf"))

	require.NoError(t, s.Blobs().Delete(ctx, name, registry.DocumentContainer))
	require.NoError(t, s.Blobs().Delete(ctx, name, registry.DocumentContainer))
}

func TestFileShareRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()
	assert.True(t, s.Files().Available())

	content := models.FileContent{Name: "contract.pdf", Reader: strings.NewReader("%PDF")}
	name, err := s.Files().Upload(ctx, content, registry.ContractsShare, registry.PaymentsDirectory)
	require.NoError(t, err)

	data, err := s.Files().Download(ctx, registry.ContractsShare, registry.PaymentsDirectory, name)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	_, err = s.Files().Download(ctx, registry.ContractsShare, registry.PaymentsDirectory, "missing.pdf")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFileShareCanBeDisabled(t *testing.T) {
	s := New(WithoutFileShare())
	ctx := context.Background()

	assert.False(t, s.Files().Available())

	_, err := s.Files().Upload(ctx, models.FileContent{Name: "x", Reader: strings.NewReader("x")},
		registry.ContractsShare, registry.PaymentsDirectory)
	require.Error(t, err)
	assert.True(t, errors.IsCapabilityUnavailable(err))

	_, err = s.Files().Download(ctx, registry.ContractsShare, registry.PaymentsDirectory, "x")
	require.Error(t, err)
	assert.True(t, errors.IsCapabilityUnavailable(err))
}
