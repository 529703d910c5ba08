/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package direct

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storekit/config"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/models"
)

func testBackend(t *testing.T, endpoint string) *Backend {
	t.Helper()
	b, err := New(context.Background(), config.DirectConfig{
		Region:    "af-south-1",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  endpoint,
	}, slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	require.NoError(t, err)
	return b
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func TestNewRequiresRegion(t *testing.T) {
	_, err := New(context.Background(), config.DirectConfig{}, nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestIsDevelopmentEndpoint(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"http://localhost:4566":         true,
		"http://127.0.0.1:4566":         true,
		"https://localstack.internal":   true,
		"https://s3.af-south-1.amazonaws.com": false,
		"https://minio.example.net":     false,
	}
	for endpoint, want := range cases {
		assert.Equal(t, want, isDevelopmentEndpoint(endpoint), "endpoint %q", endpoint)
	}
}

func TestFileStoreDisabledOnDevelopmentEndpoint(t *testing.T) {
	b := testBackend(t, "http://localhost:4566")

	assert.False(t, b.Files().Available(),
		"file store must be unavailable against a development endpoint")

	_, err := b.Files().Upload(context.Background(), models.FileContent{
		Name:   "receipt.pdf",
		Reader: strings.NewReader("x"),
	}, "contracts", "payments")
	assert.True(t, errors.IsCapabilityUnavailable(err))

	_, err = b.Files().Download(context.Background(), "contracts", "payments", "receipt.pdf")
	assert.True(t, errors.IsCapabilityUnavailable(err))
}

func TestFileStoreAvailableByDefault(t *testing.T) {
	b := testBackend(t, "")
	assert.True(t, b.Files().Available())
}

func TestGetWithBlankKeysReturnsAbsent(t *testing.T) {
	b := testBackend(t, "")

	for _, keys := range [][2]string{{"", "row"}, {"Customer", ""}, {"", ""}, {"  ", "row"}} {
		c, err := b.Customers().Get(context.Background(), keys[0], keys[1])
		require.NoError(t, err, "blank keys must never be an error")
		assert.Nil(t, c)
	}
}

func TestDeleteWithBlankKeysIsNoop(t *testing.T) {
	b := testBackend(t, "")
	assert.NoError(t, b.Orders().Delete(context.Background(), "", ""))
}

func TestUpdateRequiresToken(t *testing.T) {
	b := testBackend(t, "")

	p := &models.Product{Name: "Widget", Price: models.MustParsePrice("19.99")}
	p.SetPartitionKey("Product")
	p.SetRowKey("p-1")

	err := b.Products().Update(context.Background(), p)
	assert.True(t, errors.IsValidationError(err),
		"update without a prior read token must be rejected before any write")
}

func TestUpdateRequiresKeys(t *testing.T) {
	b := testBackend(t, "")

	p := &models.Product{Name: "Widget"}
	p.SetConcurrencyToken("tok")
	err := b.Products().Update(context.Background(), p)
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	b := testBackend(t, "")

	assert.True(t, errors.IsValidationError(b.UpdateOrderStatus(context.Background(), "", models.StatusShipped)))
	assert.True(t, errors.IsValidationError(b.UpdateOrderStatus(context.Background(), "o-1", " ")))
}

func TestImageObjectName(t *testing.T) {
	name := imageObjectName("photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".JPG"), "extension must be preserved: %q", name)
	assert.Len(t, name, 36+len(".JPG"), "name must be a UUID plus extension: %q", name)

	// User-supplied names never influence the stored identifier.
	a := imageObjectName("../../etc/passwd.png")
	assert.False(t, strings.Contains(a, "/"), "no path separators in %q", a)
	assert.NotEqual(t, imageObjectName("x.png"), imageObjectName("x.png"))
}

func TestDocumentObjectName(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "20250314_092653_proof.pdf", documentObjectName(at, "proof.pdf"))

	// Zoned input still yields the UTC prefix.
	zone := time.FixedZone("SAST", 2*3600)
	assert.Equal(t, "20250314_092653_proof.pdf",
		documentObjectName(time.Date(2025, 3, 14, 11, 26, 53, 0, zone), "proof.pdf"))

	// Directory components are stripped from caller names.
	assert.Equal(t, "20250314_092653_proof.pdf",
		documentObjectName(at, `C:\uploads\proof.pdf`))
	assert.Equal(t, "20250314_092653_file", documentObjectName(at, ""))
}

func TestObjectURL(t *testing.T) {
	b := testBackend(t, "")
	assert.Equal(t,
		"https://product-images.s3.af-south-1.amazonaws.com/abc.png",
		b.blobs.objectURL("product-images", "abc.png"))

	dev := testBackend(t, "http://localhost:4566")
	assert.Equal(t,
		"http://localhost:4566/product-images/abc.png",
		dev.blobs.objectURL("product-images", "abc.png"))
}

func TestProvisionReportErr(t *testing.T) {
	ok := &ProvisionReport{}
	assert.NoError(t, ok.Err())

	failed := &ProvisionReport{Queues: fmt.Errorf("queue boom")}
	err := failed.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue boom")
}
