/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remote

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/suparena/storekit"
	"github.com/suparena/storekit/config"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
	"github.com/suparena/storekit/registry"
)

// Collection routes of the resource API.
const (
	customersRoute = "customers"
	productsRoute  = "products"
	ordersRoute    = "orders"
	uploadsRoute   = "uploads"

	proofOfPaymentRoute = "proof-of-payment"
	orderStatusRoute    = "status"
)

// Backend implements the store contract on top of the remote resource
// API. It deliberately covers a narrower surface than the direct backend:
// queues, the hierarchical file share, blob deletion and full order
// replacement are not exposed by the API, and the corresponding
// operations fail with errors.ErrCapabilityUnavailable rather than being
// silently emulated.
type Backend struct {
	client *Client
	log    *slog.Logger

	customers *resource[*models.Customer, customerDTO]
	products  *resource[*models.Product, productDTO]
	orders    *resource[*models.Order, orderDTO]
}

var _ storekit.Store = (*Backend)(nil)

// New builds a remote backend from the given configuration. No network
// traffic happens until the first operation.
func New(cfg config.RemoteConfig, log *slog.Logger) (*Backend, error) {
	if log == nil {
		log = slog.Default()
	}
	client, err := NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	b := &Backend{client: client, log: log}

	b.customers = newResource(client, codec[*models.Customer, customerDTO]{
		kind:      models.KindCustomer,
		route:     customersRoute,
		newEntity: func() *models.Customer { return &models.Customer{} },
		apply:     applyCustomer,
		createBody: func(c *models.Customer) (requestBody, error) {
			return jsonBody(customerBody(c))
		},
		updateBody: func(c *models.Customer) (requestBody, error) {
			return jsonBody(customerBody(c))
		},
	})
	b.products = newResource(client, codec[*models.Product, productDTO]{
		kind:      models.KindProduct,
		route:     productsRoute,
		newEntity: func() *models.Product { return &models.Product{} },
		apply:     applyProduct,
		createBody: func(p *models.Product) (requestBody, error) {
			return productForm(p, nil)
		},
		updateBody: func(p *models.Product) (requestBody, error) {
			return productForm(p, nil)
		},
	})
	b.orders = newResource(client, codec[*models.Order, orderDTO]{
		kind:      models.KindOrder,
		route:     ordersRoute,
		newEntity: func() *models.Order { return &models.Order{} },
		apply:     applyOrder,
		createBody: func(o *models.Order) (requestBody, error) {
			return jsonBody(orderCreateDTO{
				CustomerID: o.CustomerID,
				ProductID:  o.ProductID,
				Quantity:   o.Quantity,
			})
		},
		// Orders are placed and then driven through status transitions;
		// the API has no replacement route.
		updateBody: nil,
	})
	return b, nil
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func (b *Backend) WithHTTPClient(httpc *http.Client) *Backend {
	b.client.WithHTTPClient(httpc)
	return b
}

func customerBody(c *models.Customer) customerDTO {
	_, rowKey := c.Keys()
	return customerDTO{
		ID:              rowKey,
		Name:            c.Name,
		Surname:         c.Surname,
		Username:        c.Username,
		Email:           c.Email,
		ShippingAddress: c.ShippingAddress,
	}
}

// Customers returns the customer entity store.
func (b *Backend) Customers() storekit.EntityStore[*models.Customer] { return b.customers }

// Products returns the product entity store. Create and Update send the
// product as a multipart form without an image part; use
// CreateProductWithImage or UpdateProductWithImage to attach one.
func (b *Backend) Products() storekit.EntityStore[*models.Product] { return b.products }

// Orders returns the order entity store. Update is unavailable; use
// UpdateOrderStatus for the supported transition.
func (b *Backend) Orders() storekit.EntityStore[*models.Order] { return b.orders }

// UpdateOrderStatus records a status transition via the dedicated PATCH
// route.
func (b *Backend) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if orderID == "" {
		return errors.NewValidationError("orderId", "must not be empty")
	}
	if status == "" {
		return errors.NewValidationError("status", "must not be empty")
	}
	op := "UpdateOrderStatus"
	target := b.client.endpoint(ordersRoute, orderID, orderStatusRoute)

	body, err := jsonBody(orderStatusDTO{Status: status})
	if err != nil {
		return errors.NewBackendError(op, target, err)
	}
	resp, err := b.client.do(ctx, op, http.MethodPatch, target, body.reader, body.contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return errors.NewNotFoundError(string(models.KindOrder), orderID)
	}
	return checkStatus(op, target, resp)
}

// CreateProductWithImage creates a product with its image in one multipart
// request. The entity is refreshed from the response, including the image
// locator the service stored.
func (b *Backend) CreateProductWithImage(ctx context.Context, product *models.Product, image *models.FileContent) error {
	return b.sendProduct(ctx, "CreateProduct", http.MethodPost,
		b.client.endpoint(productsRoute), product, image)
}

// UpdateProductWithImage replaces a product and its image in one multipart
// request.
func (b *Backend) UpdateProductWithImage(ctx context.Context, product *models.Product, image *models.FileContent) error {
	_, rowKey := product.Keys()
	if rowKey == "" {
		return errors.NewValidationError("rowKey", "must not be empty on update")
	}
	return b.sendProduct(ctx, "UpdateProduct", http.MethodPut,
		b.client.endpoint(productsRoute, rowKey), product, image)
}

func (b *Backend) sendProduct(ctx context.Context, op, method, target string, product *models.Product, image *models.FileContent) error {
	body, err := productForm(product, image)
	if err != nil {
		return errors.NewBackendError(op, target, err)
	}
	resp, err := b.client.do(ctx, op, method, target, body.reader, body.contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		_, rowKey := product.Keys()
		return errors.NewNotFoundError(string(models.KindProduct), rowKey)
	}
	if err := checkStatus(op, target, resp); err != nil {
		return err
	}
	var dto productDTO
	if err := decodeJSON(op, target, resp, &dto); err != nil {
		return err
	}
	applyProduct(&dto, product)
	return nil
}

// UploadProofOfPayment stores a proof-of-payment document and returns the
// file name the service assigned.
func (b *Backend) UploadProofOfPayment(ctx context.Context, content models.FileContent, orderID, customerName string) (string, error) {
	op := "UploadProofOfPayment"
	target := b.client.endpoint(uploadsRoute, proofOfPaymentRoute)

	body, err := proofOfPaymentForm(content, orderID, customerName)
	if err != nil {
		return "", errors.NewBackendError(op, target, err)
	}
	resp, err := b.client.do(ctx, op, http.MethodPost, target, body.reader, body.contentType)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(op, target, resp); err != nil {
		return "", err
	}
	var result uploadResultDTO
	if err := decodeJSON(op, target, resp, &result); err != nil {
		return "", err
	}
	return result.FileName, nil
}

// Blobs returns the blob capability. Only proof-of-payment uploads into
// the private document container are supported; everything else reports
// the capability as unavailable.
func (b *Backend) Blobs() storekit.BlobStore { return &blobClient{b: b} }

// Queues returns the queue capability, which the resource API does not
// expose.
func (b *Backend) Queues() storekit.QueueStore { return unavailableQueues{} }

// Files returns the hierarchical file capability, which the resource API
// does not expose.
func (b *Backend) Files() storekit.FileStore { return unavailableFiles{} }

type blobClient struct {
	b *Backend
}

func (bc *blobClient) Upload(ctx context.Context, content models.FileContent, container string) (string, error) {
	if container != registry.DocumentContainer {
		return "", errors.NewCapabilityUnavailableError("blobs",
			"the resource API only accepts uploads into "+registry.DocumentContainer)
	}
	return bc.b.UploadProofOfPayment(ctx, content, "", "")
}

func (bc *blobClient) Delete(ctx context.Context, name, container string) error {
	return errors.NewCapabilityUnavailableError("blobs",
		"the resource API does not expose blob deletion")
}

type unavailableQueues struct{}

func (unavailableQueues) Send(ctx context.Context, queue, payload string) error {
	return errors.NewCapabilityUnavailableError("queues",
		"the resource API does not expose queue messaging")
}

func (unavailableQueues) Receive(ctx context.Context, queue string) (*string, error) {
	return nil, errors.NewCapabilityUnavailableError("queues",
		"the resource API does not expose queue messaging")
}

type unavailableFiles struct{}

func (unavailableFiles) Upload(ctx context.Context, content models.FileContent, share, dir string) (string, error) {
	return "", errors.NewCapabilityUnavailableError("files",
		"the resource API does not expose the file share")
}

func (unavailableFiles) Download(ctx context.Context, share, dir, name string) ([]byte, error) {
	return nil, errors.NewCapabilityUnavailableError("files",
		"the resource API does not expose the file share")
}

func (unavailableFiles) Available() bool { return false }
