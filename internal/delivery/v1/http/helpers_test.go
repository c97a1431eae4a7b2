package http

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0.01", 1},
		{"12.50", 1250},
		{"12.5", 1250},
		{"999999.99", 99999999},
		{"100", 10000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			if err != nil {
				t.Fatalf("bad test input: %v", err)
			}
			if got := priceToCents(d); got != tt.want {
				t.Errorf("priceToCents(%s) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestCentsToNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{1, "0.01"},
		{1250, "12.50"},
		{10000, "100.00"},
		{99999999, "999999.99"},
	}

	for _, tt := range tests {
		if got := string(centsToNumber(tt.in)); got != tt.want {
			t.Errorf("centsToNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriceFieldError(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		rejects bool
	}{
		{name: "minimum accepted", in: "0.01"},
		{name: "maximum accepted", in: "999999.99"},
		{name: "zero rejected", in: "0", rejects: true},
		{name: "negative rejected", in: "-5.00", rejects: true},
		{name: "above maximum rejected", in: "1000000.00", rejects: true},
		{name: "three decimals rejected", in: "9.999", rejects: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			if err != nil {
				t.Fatalf("bad test input: %v", err)
			}
			fe := priceFieldError(d)
			if tt.rejects && fe == nil {
				t.Errorf("priceFieldError(%s) accepted, want rejection", tt.in)
			}
			if !tt.rejects && fe != nil {
				t.Errorf("priceFieldError(%s) rejected: %+v", tt.in, fe)
			}
		})
	}
}

func TestValidateUpdateDTOChecksOnlyPresentFields(t *testing.T) {
	if errs := validateUpdateDTO(&UpdateMenuItemDTO{}); len(errs) != 0 {
		t.Errorf("empty update produced field errors: %+v", errs)
	}

	bad := "x"
	if errs := validateUpdateDTO(&UpdateMenuItemDTO{Name: &bad}); len(errs) != 1 {
		t.Errorf("short name not rejected: %+v", errs)
	}
}
