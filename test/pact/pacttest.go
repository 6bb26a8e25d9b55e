//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "order-api"
	ConsumerName = "storefront"

	StateCatalogBaseline = "catalog baseline"
	StateProductInStock  = "product with id 11 has 5 units in stock"
	StateProductDrained  = "product with id 12 has no stock"
	StateOrderExists     = "order with id 301 exists"
	StateOrderMissing    = "no order with id 404"
)

const (
	InStockProductID int64 = 11
	DrainedProductID int64 = 12

	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 404
)

const (
	exampleCustomerEmail = "pact.buyer@example.com"
	examplePlacedAt      = "2026-06-12T10:00:00Z"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable test data for order interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"id":            ExistingOrderID,
		"customerEmail": exampleCustomerEmail,
		"totalAmount":   1999.80,
		"status":        "confirmed",
		"placedAt":      examplePlacedAt,
		"items": []map[string]any{
			{"productId": InStockProductID, "quantity": 2, "unitPrice": 999.90},
		},
	}
}

// ExampleProductPayload provides stable test data for catalog interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"id":            InStockProductID,
		"name":          "Pact Laptop",
		"price":         999.90,
		"stockQuantity": 5,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
