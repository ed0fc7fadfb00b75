package model

import "testing"

func TestBelowMinStock(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		min   int
		want  bool
	}{
		{"below threshold", 2, 5, true},
		{"at threshold", 5, 5, false},
		{"above threshold", 8, 5, false},
		{"zero stock", 0, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{StockQuantity: tt.stock, MinStockLevel: tt.min}
			if got := p.BelowMinStock(); got != tt.want {
				t.Errorf("stock %d / min %d: got %v, want %v", tt.stock, tt.min, got, tt.want)
			}
		})
	}
}
