package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEqualShare(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		count   int
		want    string
		wantErr bool
	}{
		{
			name:  "even division",
			total: "100.00",
			count: 2,
			want:  "50",
		},
		{
			name:  "single borrower gets everything",
			total: "100.00",
			count: 1,
			want:  "100",
		},
		{
			name:  "three-way split rounds half up",
			total: "100.00",
			count: 3,
			want:  "33.33",
		},
		{
			name:  "rounding boundary",
			total: "0.05",
			count: 2,
			want:  "0.03",
		},
		{
			name:    "zero borrowers errors",
			total:   "100.00",
			count:   0,
			wantErr: true,
		},
		{
			name:    "negative borrowers errors",
			total:   "100.00",
			count:   -1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			got, err := EqualShare(total, tt.count)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("EqualShare(%s, %d) expected error, got %s", tt.total, tt.count, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualShare(%s, %d) failed: %v", tt.total, tt.count, err)
			}
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("EqualShare(%s, %d) = %s, want %s", tt.total, tt.count, got, want)
			}
		})
	}
}

func TestEqualShare_DriftAccepted(t *testing.T) {
	// 100 / 3 = 33.33 each; 3 * 33.33 = 99.99. The 0.01 drift is kept.
	total := decimal.RequireFromString("100.00")
	share, err := EqualShare(total, 3)
	if err != nil {
		t.Fatalf("EqualShare failed: %v", err)
	}

	sum := share.Mul(decimal.NewFromInt(3))
	if sum.Equal(total) {
		t.Errorf("expected drift, got exact sum %s", sum)
	}
	if !sum.Equal(decimal.RequireFromString("99.99")) {
		t.Errorf("sum of shares = %s, want 99.99", sum)
	}
}

func TestExactShare(t *testing.T) {
	// Full-precision division, no 2-place rounding.
	total := decimal.RequireFromString("100.00")
	share, err := ExactShare(total, 3)
	if err != nil {
		t.Fatalf("ExactShare failed: %v", err)
	}

	rounded, err := EqualShare(total, 3)
	if err != nil {
		t.Fatalf("EqualShare failed: %v", err)
	}
	if share.Equal(rounded) {
		t.Errorf("ExactShare should keep more precision than EqualShare, both = %s", share)
	}
	if share.Cmp(decimal.RequireFromString("33.33")) <= 0 {
		t.Errorf("ExactShare = %s, want > 33.33", share)
	}

	if _, err := ExactShare(total, 0); err == nil {
		t.Error("ExactShare with zero borrowers should error")
	}
}

func TestSharesMatchTotal(t *testing.T) {
	tests := []struct {
		name   string
		shares []string
		total  string
		want   bool
	}{
		{
			name:   "exact match",
			shares: []string{"50.00", "50.00"},
			total:  "100.00",
			want:   true,
		},
		{
			name:   "within tolerance",
			shares: []string{"33.33", "33.33", "33.33"},
			total:  "100.00",
			want:   true,
		},
		{
			name:   "exactly at tolerance",
			shares: []string{"49.99", "50.00"},
			total:  "100.00",
			want:   true,
		},
		{
			name:   "just past tolerance",
			shares: []string{"49.98", "50.00"},
			total:  "100.00",
			want:   false,
		},
		{
			name:   "overshoot rejected too",
			shares: []string{"50.02", "50.00"},
			total:  "100.00",
			want:   false,
		},
		{
			name:   "no shares against nonzero total",
			shares: nil,
			total:  "100.00",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := make([]decimal.Decimal, len(tt.shares))
			for i, s := range tt.shares {
				shares[i] = decimal.RequireFromString(s)
			}
			got := SharesMatchTotal(shares, decimal.RequireFromString(tt.total))
			if got != tt.want {
				t.Errorf("SharesMatchTotal(%v, %s) = %v, want %v", tt.shares, tt.total, got, tt.want)
			}
		})
	}
}
