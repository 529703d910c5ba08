/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remote

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"github.com/suparena/storekit/models"
)

// Multipart form construction for the two upload-style routes. Field names
// are the PascalCase names the service binds; Price is always sent with a
// decimal point regardless of locale.

func productForm(p *models.Product, image *models.FileContent) (requestBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"ProductName", p.Name},
		{"Description", p.Description},
		{"Price", p.Price.String()},
		{"StockAvailable", strconv.Itoa(p.StockAvailable)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return requestBody{}, err
		}
	}
	if p.ImageRef != "" {
		if err := w.WriteField("ImageUrl", p.ImageRef); err != nil {
			return requestBody{}, err
		}
	}
	if image != nil && image.Reader != nil {
		if err := writeFilePart(w, "ImageFile", image); err != nil {
			return requestBody{}, err
		}
	}
	if err := w.Close(); err != nil {
		return requestBody{}, err
	}
	return requestBody{reader: &buf, contentType: w.FormDataContentType()}, nil
}

func proofOfPaymentForm(content models.FileContent, orderID, customerName string) (requestBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := writeFilePart(w, "ProofOfPayment", &content); err != nil {
		return requestBody{}, err
	}
	if orderID != "" {
		if err := w.WriteField("OrderId", orderID); err != nil {
			return requestBody{}, err
		}
	}
	if customerName != "" {
		if err := w.WriteField("CustomerName", customerName); err != nil {
			return requestBody{}, err
		}
	}
	if err := w.Close(); err != nil {
		return requestBody{}, err
	}
	return requestBody{reader: &buf, contentType: w.FormDataContentType()}, nil
}

// writeFilePart adds a file part with an explicit content type, which
// multipart.Writer.CreateFormFile cannot express.
func writeFilePart(w *multipart.Writer, field string, content *models.FileContent) error {
	name := content.Name
	if name == "" {
		name = "file"
	}
	contentType := content.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, content.Reader)
	return err
}
