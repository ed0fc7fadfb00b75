package invoice

import (
	"bytes"
	"fmt"
	"testing"
	"time"
)

func testSnapshot(items int) *Snapshot {
	snap := &Snapshot{
		Date:            time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		CustomerName:    "Gulf Motors W.L.L",
		CustomerAddress: "Building 1234, Road 5678, Block 910, Tubli, Kingdom of Bahrain",
		CustomerPhone:   "+973 17001122",
		VATPercent:      dec("10"),
	}
	for i := 0; i < items; i++ {
		snap.Items = append(snap.Items, Item{
			SKU:      fmt.Sprintf("BP-%04d", i),
			Name:     fmt.Sprintf("Brake Pad Set %d", i),
			Quantity: 2,
			Price:    dec("12.500"),
		})
	}
	return snap
}

func testMeta() EditMeta {
	return EditMeta{
		InvoiceNumber: "INV-0001",
		PaymentTerms:  "CREDIT",
		DueDate:       time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		SalesPerson:   "Ali Hassan",
	}
}

// Renders run without any asset files on disk; images are simply skipped.
func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(AssetsFromDir(t.TempDir()))

	pdf, err := r.Render(testSnapshot(3), testMeta())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
	if len(pdf) < 1000 {
		t.Errorf("output suspiciously small: %d bytes", len(pdf))
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer(AssetsFromDir(t.TempDir()))
	snap := testSnapshot(5)
	meta := testMeta()

	first, err := r.Render(snap, meta)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Render(snap, meta)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different bytes")
	}
}

func TestRenderMultiPageInvoice(t *testing.T) {
	r := NewRenderer(AssetsFromDir(t.TempDir()))

	// Enough items to force continuation pages.
	n := A4Layout.FirstPageCapacity() + A4Layout.ContPageCapacity() + 5
	pdf, err := r.Render(testSnapshot(n), testMeta())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestRenderEmptyInvoice(t *testing.T) {
	r := NewRenderer(AssetsFromDir(t.TempDir()))

	pdf, err := r.Render(testSnapshot(0), testMeta())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}
