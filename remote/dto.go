/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remote

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/storekit/models"
)

// Wire representations used by the resource API. Field names follow the
// service's camelCase contract and are kept separate from the storage
// models so either side can evolve independently.

type customerDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shippingAddress"`
}

type productDTO struct {
	ID             string       `json:"id"`
	ProductName    string       `json:"productName"`
	Description    string       `json:"description"`
	Price          models.Price `json:"price"`
	StockAvailable int          `json:"stockAvailable"`
	ImageURL       string       `json:"imageUrl,omitempty"`
}

type orderDTO struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	OrderDateUTC strfmt.DateTime `json:"orderDateUtc"`
	Quantity     int             `json:"quantity"`
	UnitPrice    models.Price    `json:"unitPrice"`
	TotalPrice   models.Price    `json:"totalPrice"`
	Status       string          `json:"status"`
}

// orderCreateDTO is the request body for placing an order; the service
// derives names, prices and the order date itself.
type orderCreateDTO struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
}

// orderStatusDTO is the PATCH body for a status transition.
type orderStatusDTO struct {
	Status string `json:"status"`
}

// uploadResultDTO is the response of the proof-of-payment upload route.
type uploadResultDTO struct {
	FileName string `json:"fileName"`
}

func applyCustomer(d *customerDTO, c *models.Customer) {
	c.SetPartitionKey(string(models.KindCustomer))
	c.SetRowKey(d.ID)
	c.Name = d.Name
	c.Surname = d.Surname
	c.Username = d.Username
	c.Email = d.Email
	c.ShippingAddress = d.ShippingAddress
}

func customerFromDTO(d *customerDTO) *models.Customer {
	c := &models.Customer{}
	applyCustomer(d, c)
	return c
}

func applyProduct(d *productDTO, p *models.Product) {
	p.SetPartitionKey(string(models.KindProduct))
	p.SetRowKey(d.ID)
	p.Name = d.ProductName
	p.Description = d.Description
	p.Price = d.Price
	p.StockAvailable = d.StockAvailable
	p.ImageRef = d.ImageURL
}

func productFromDTO(d *productDTO) *models.Product {
	p := &models.Product{}
	applyProduct(d, p)
	return p
}

func applyOrder(d *orderDTO, o *models.Order) {
	o.SetPartitionKey(string(models.KindOrder))
	o.SetRowKey(d.ID)
	o.CustomerID = d.CustomerID
	o.CustomerName = d.CustomerName
	o.ProductID = d.ProductID
	o.ProductName = d.ProductName
	o.OrderDate = time.Time(d.OrderDateUTC).UTC()
	o.Quantity = d.Quantity
	o.UnitPrice = d.UnitPrice
	o.TotalPrice = d.TotalPrice
	o.Status = d.Status
}

func orderFromDTO(d *orderDTO) *models.Order {
	o := &models.Order{}
	applyOrder(d, o)
	return o
}
