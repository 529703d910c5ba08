/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import "github.com/suparena/storekit/models"

// Physical names of the non-tabular collections provisioned by the direct
// backend. The image container is public-readable; payment proofs are
// private; the contracts share holds a payments subdirectory.
const (
	// ImageContainer holds product images and is public-readable, so blob
	// locators returned for it are dereferenceable URLs.
	ImageContainer = "product-images"

	// DocumentContainer holds proof-of-payment documents and is private;
	// locators returned for it are opaque object names.
	DocumentContainer = "payment-proofs"

	// OrderQueue receives order notification messages.
	OrderQueue = "order-notifications"

	// StockQueue receives stock update messages.
	StockQueue = "stock-updates"

	// ContractsShare is the hierarchical file share.
	ContractsShare = "contracts"

	// PaymentsDirectory is the subdirectory provisioned inside the share.
	PaymentsDirectory = "payments"
)

// tableNames maps each known entity kind to its physical collection name.
// The mapping is explicit rather than derived from type names, so renaming
// a Go type can never silently retarget a collection.
var tableNames = map[models.Kind]string{
	models.KindCustomer: "Customers",
	models.KindProduct:  "Products",
	models.KindOrder:    "Orders",
}

// factories creates an empty entity for each known kind.
var factories = map[models.Kind]func() models.Entity{
	models.KindCustomer: func() models.Entity { return &models.Customer{} },
	models.KindProduct:  func() models.Entity { return &models.Product{} },
	models.KindOrder:    func() models.Entity { return &models.Order{} },
}

// TableName returns the physical collection name for a kind. Unknown kinds
// fall back to the documented kind + "s" rule.
func TableName(kind models.Kind) string {
	if name, ok := tableNames[kind]; ok {
		return name
	}
	return string(kind) + "s"
}

// Kinds returns every registered entity kind.
func Kinds() []models.Kind {
	kinds := make([]models.Kind, 0, len(tableNames))
	for k := range tableNames {
		kinds = append(kinds, k)
	}
	return kinds
}

// NewEntity creates an empty entity of the given kind. The second return
// value is false for unregistered kinds.
func NewEntity(kind models.Kind) (models.Entity, bool) {
	fn, ok := factories[kind]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// IsPublicContainer reports whether blobs in the container are readable
// without authentication, which determines the locator form returned by
// blob uploads.
func IsPublicContainer(container string) bool {
	return container == ImageContainer
}
