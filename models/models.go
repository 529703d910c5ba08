/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import "time"

// Kind identifies an entity kind. The kind doubles as the fixed partition
// key for every entity of that kind; it is a collection selector, not a
// caller-chosen sharding key.
type Kind string

const (
	KindCustomer Kind = "Customer"
	KindProduct  Kind = "Product"
	KindOrder    Kind = "Order"
)

// Order status values. The set is open ended: no transition table is
// enforced at the storage layer, the last write wins subject to the
// concurrency token. Transition legality is a business-rule concern
// layered above storage.
const (
	StatusSubmitted  = "Submitted"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Entity is the capability every storable record provides. Concrete entity
// pointers (*Customer, *Product, *Order) satisfy it by embedding TableKeys.
type Entity interface {
	// EntityKind returns the entity kind.
	EntityKind() Kind

	// Keys returns the (partition key, row key) pair.
	Keys() (partitionKey, rowKey string)

	// SetPartitionKey assigns the partition key. The partition key is
	// fixed per kind; backends set it to the kind name when persisting an
	// entity whose partition key is still blank.
	SetPartitionKey(partitionKey string)

	// SetRowKey assigns the row key. Backends call it exactly once, when
	// persisting an entity whose row key is still blank; a row key is
	// immutable afterwards.
	SetRowKey(rowKey string)

	// ConcurrencyToken returns the opaque token assigned by the backend on
	// the last successful write. Callers must treat it as inert: never
	// parse it, never fabricate it.
	ConcurrencyToken() string

	// SetConcurrencyToken assigns a fresh token. Owned exclusively by
	// backends; every successful write rotates it.
	SetConcurrencyToken(token string)
}

// TableKeys carries the two-part key and the concurrency token shared by all
// entity kinds. Entities embed it by value.
type TableKeys struct {
	PartitionKey string `json:"partitionKey" dynamodbav:"PK"`
	RowKey       string `json:"rowKey" dynamodbav:"SK"`
	ETag         string `json:"etag,omitempty" dynamodbav:"ETag"`
}

// Keys returns the (partition key, row key) pair.
func (k *TableKeys) Keys() (string, string) { return k.PartitionKey, k.RowKey }

// SetPartitionKey assigns the partition key.
func (k *TableKeys) SetPartitionKey(partitionKey string) { k.PartitionKey = partitionKey }

// SetRowKey assigns the row key.
func (k *TableKeys) SetRowKey(rowKey string) { k.RowKey = rowKey }

// ConcurrencyToken returns the opaque concurrency token.
func (k *TableKeys) ConcurrencyToken() string { return k.ETag }

// SetConcurrencyToken assigns a fresh concurrency token.
func (k *TableKeys) SetConcurrencyToken(token string) { k.ETag = token }

// Customer is a registered buyer.
type Customer struct {
	TableKeys

	Name            string `json:"name" dynamodbav:"Name"`
	Surname         string `json:"surname" dynamodbav:"Surname"`
	Username        string `json:"username" dynamodbav:"Username"`
	Email           string `json:"email" dynamodbav:"Email"`
	ShippingAddress string `json:"shippingAddress" dynamodbav:"ShippingAddress"`
}

// EntityKind returns KindCustomer.
func (*Customer) EntityKind() Kind { return KindCustomer }

// Product is a catalog entry.
type Product struct {
	TableKeys

	Name        string `json:"name" dynamodbav:"Name"`
	Description string `json:"description" dynamodbav:"Description"`
	// Price is validated once, at input time, via ParsePrice. There is no
	// lazy string representation with fallback parsing.
	Price          Price  `json:"price" dynamodbav:"Price"`
	StockAvailable int    `json:"stockAvailable" dynamodbav:"StockAvailable"`
	ImageRef       string `json:"imageRef,omitempty" dynamodbav:"ImageRef"`
}

// EntityKind returns KindProduct.
func (*Product) EntityKind() Kind { return KindProduct }

// Order records a purchase of one product by one customer.
type Order struct {
	TableKeys

	CustomerID   string `json:"customerId" dynamodbav:"CustomerID"`
	CustomerName string `json:"customerName" dynamodbav:"CustomerName"`
	ProductID    string `json:"productId" dynamodbav:"ProductID"`
	ProductName  string `json:"productName" dynamodbav:"ProductName"`
	// OrderDate is always a UTC instant.
	OrderDate  time.Time `json:"orderDate" dynamodbav:"OrderDate"`
	Quantity   int       `json:"quantity" dynamodbav:"Quantity"`
	UnitPrice  Price     `json:"unitPrice" dynamodbav:"UnitPrice"`
	TotalPrice Price     `json:"totalPrice" dynamodbav:"TotalPrice"`
	Status     string    `json:"status" dynamodbav:"Status"`
}

// EntityKind returns KindOrder.
func (*Order) EntityKind() Kind { return KindOrder }
