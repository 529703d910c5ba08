//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package direct

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storekit/config"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
	"github.com/suparena/storekit/registry"
)

func integrationBackend(t *testing.T) *Backend {
	t.Helper()
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	cfg := config.DirectConfig{
		Region:    os.Getenv("STOREKIT_AWS_REGION"),
		AccessKey: os.Getenv("STOREKIT_AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("STOREKIT_AWS_SECRET_KEY"),
		Endpoint:  os.Getenv("STOREKIT_AWS_ENDPOINT"),
	}
	if cfg.Region == "" {
		t.Skip("STOREKIT_AWS_REGION not set, skipping integration tests")
	}

	b, err := New(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	require.NoError(t, b.Provision(context.Background()).Err())
	return b
}

func TestIntegrationProductLifecycle(t *testing.T) {
	b := integrationBackend(t)
	ctx := context.Background()
	products := b.Products()

	p := &models.Product{
		Name:           "Widget",
		Description:    "Integration test widget",
		Price:          models.MustParsePrice("19.99"),
		StockAvailable: 10,
	}
	require.NoError(t, products.Create(ctx, p))
	_, rowKey := p.Keys()
	require.NotEmpty(t, rowKey)
	require.NotEmpty(t, p.ConcurrencyToken())
	defer products.Delete(ctx, "Product", rowKey)

	// create → get returns an equal entity with the same token
	got, err := products.Get(ctx, "Product", rowKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Name, got.Name)
	assert.True(t, p.Price.Equal(got.Price))
	assert.Equal(t, p.ConcurrencyToken(), got.ConcurrencyToken())

	// duplicate create is rejected
	dup := &models.Product{Name: "Widget"}
	dup.SetPartitionKey("Product")
	dup.SetRowKey(rowKey)
	assert.True(t, errors.IsDuplicateKey(products.Create(ctx, dup)))

	// a stale token loses; the fresh token wins and rotates
	stale := *got
	got.StockAvailable = 7
	require.NoError(t, products.Update(ctx, got))
	assert.NotEqual(t, stale.ConcurrencyToken(), got.ConcurrencyToken())

	stale.StockAvailable = 3
	assert.True(t, errors.IsConcurrencyConflict(products.Update(ctx, &stale)))

	reread, err := products.Get(ctx, "Product", rowKey)
	require.NoError(t, err)
	reread.StockAvailable = 3
	assert.NoError(t, products.Update(ctx, reread))

	// idempotent delete
	require.NoError(t, products.Delete(ctx, "Product", rowKey))
	require.NoError(t, products.Delete(ctx, "Product", rowKey))
	gone, err := products.Get(ctx, "Product", rowKey)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestIntegrationOrderStatus(t *testing.T) {
	b := integrationBackend(t)
	ctx := context.Background()

	o := &models.Order{
		CustomerID:  "integration-customer",
		ProductID:   "integration-product",
		ProductName: "Widget",
		OrderDate:   time.Now().UTC().Truncate(time.Second),
		Quantity:    3,
		UnitPrice:   models.MustParsePrice("19.99"),
		TotalPrice:  models.MustParsePrice("59.97"),
		Status:      models.StatusSubmitted,
	}
	require.NoError(t, b.Orders().Create(ctx, o))
	_, rowKey := o.Keys()
	defer b.Orders().Delete(ctx, "Order", rowKey)

	require.NoError(t, b.UpdateOrderStatus(ctx, rowKey, models.StatusShipped))

	got, err := b.Orders().Get(ctx, "Order", rowKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusShipped, got.Status)
	assert.NotEqual(t, o.ConcurrencyToken(), got.ConcurrencyToken(),
		"status change must rotate the token")

	assert.True(t, errors.IsNotFound(b.UpdateOrderStatus(ctx, "missing-order", models.StatusShipped)))
}

func TestIntegrationQueues(t *testing.T) {
	b := integrationBackend(t)
	ctx := context.Background()

	payload := `{"orderId":"integration-order","status":"Submitted"}`
	require.NoError(t, b.Queues().Send(ctx, registry.OrderQueue, payload))

	received, err := b.Queues().Receive(ctx, registry.OrderQueue)
	require.NoError(t, err)
	if received != nil {
		assert.NotEmpty(t, *received)
	}
}

func TestIntegrationBlobsAndFiles(t *testing.T) {
	b := integrationBackend(t)
	ctx := context.Background()

	locator, err := b.Blobs().Upload(ctx, models.FileContent{
		Name:        "widget.png",
		ContentType: "image/png",
		Size:        4,
		Reader:      strings.NewReader("png!"),
	}, registry.ImageContainer)
	require.NoError(t, err)
	assert.Contains(t, locator, registry.ImageContainer)

	if !b.Files().Available() {
		t.Log("file share unavailable, skipping hierarchical store checks")
		return
	}

	name, err := b.Files().Upload(ctx, models.FileContent{
		Name:        "proof.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Reader:      strings.NewReader("pdf!"),
	}, registry.ContractsShare, registry.PaymentsDirectory)
	require.NoError(t, err)

	data, err := b.Files().Download(ctx, registry.ContractsShare, registry.PaymentsDirectory, name)
	require.NoError(t, err)
	assert.Equal(t, "pdf!", string(data))
}
