package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogrepo "promopro_backend/internal/catalog/repository"
	"promopro_backend/internal/quotes/domain"
	"promopro_backend/platform/apperr"
)

type stubPricing struct {
	markup decimal.Decimal
	minQty int
}

func (s stubPricing) GetGlobalMarkup() decimal.Decimal { return s.markup }
func (s stubPricing) GetMinOrderQty() int              { return s.minQty }

func testEngine() *Engine {
	return NewEngine(stubPricing{markup: decimal.NewFromFloat(1.35), minQty: 50})
}

func testProduct(baseNetCost string) catalogrepo.Product {
	base, _ := decimal.NewFromString(baseNetCost)
	sku := "TH-400"
	return catalogrepo.Product{
		ID:          uuid.New(),
		SKU:         &sku,
		Name:        "Termo Matterhorn 400ml",
		BaseNetCost: base,
		Active:      true,
	}
}

func testTechniques() []catalogrepo.PrintTechnique {
	maxLow := 49
	maxMid := 249
	return []catalogrepo.PrintTechnique{
		{
			ID:            uuid.New(),
			Name:          "Serigrafia",
			FixedSetupFee: decimal.NewFromInt(350),
			Tiers: []catalogrepo.VolumeTier{
				{MinQty: 1, MaxQty: &maxLow, UnitCost: decimal.NewFromFloat(8.50)},
				{MinQty: 50, MaxQty: &maxMid, UnitCost: decimal.NewFromFloat(6.00)},
				{MinQty: 250, MaxQty: nil, UnitCost: decimal.NewFromFloat(4.25)},
			},
			Active: true,
		},
	}
}

func TestComputeLineItem_TechniqueTierPricing(t *testing.T) {
	engine := testEngine()

	item, err := engine.ComputeLineItem(testProduct("100"), testTechniques(), Configuration{
		Quantity:      10,
		TechniqueName: "Serigrafia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100 * 1.35 + 8.50 = 143.50; 143.50 * 10 + 350 = 1785.00
	if got := item.UnitPrice.StringFixed(2); got != "143.50" {
		t.Fatalf("expected unit price 143.50, got %s", got)
	}
	if got := item.SetupFee.StringFixed(2); got != "350.00" {
		t.Fatalf("expected setup fee 350.00, got %s", got)
	}
	if got := item.LineTotal.StringFixed(2); got != "1785.00" {
		t.Fatalf("expected line total 1785.00, got %s", got)
	}
}

func TestComputeLineItem_SelectsTierByQuantity(t *testing.T) {
	engine := testEngine()

	cases := []struct {
		qty  int
		unit string
	}{
		{qty: 49, unit: "143.50"},
		{qty: 50, unit: "141.00"},
		{qty: 249, unit: "141.00"},
		{qty: 250, unit: "139.25"},
		{qty: 5000, unit: "139.25"},
	}
	for _, tc := range cases {
		item, err := engine.ComputeLineItem(testProduct("100"), testTechniques(), Configuration{
			Quantity:      tc.qty,
			TechniqueName: "Serigrafia",
		})
		if err != nil {
			t.Fatalf("qty %d: unexpected error: %v", tc.qty, err)
		}
		if got := item.UnitPrice.StringFixed(2); got != tc.unit {
			t.Fatalf("qty %d: expected unit price %s, got %s", tc.qty, tc.unit, got)
		}
	}
}

func TestComputeLineItem_RejectsNonPositiveQuantity(t *testing.T) {
	engine := testEngine()

	for _, qty := range []int{0, -3} {
		_, err := engine.ComputeLineItem(testProduct("100"), testTechniques(), Configuration{
			Quantity:      qty,
			TechniqueName: "Serigrafia",
		})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("qty %d: expected validation error, got %v", qty, err)
		}
	}
}

func TestComputeLineItem_UnknownTechnique(t *testing.T) {
	engine := testEngine()

	_, err := engine.ComputeLineItem(testProduct("100"), testTechniques(), Configuration{
		Quantity:      50,
		TechniqueName: "Grabado Laser",
	})
	if !apperr.Is(err, apperr.KindUnprocessable) {
		t.Fatalf("expected unprocessable error, got %v", err)
	}
}

func TestComputeLineItem_TierGapRefusesToPrice(t *testing.T) {
	engine := testEngine()
	maxLow := 49
	techniques := []catalogrepo.PrintTechnique{
		{
			Name:          "Serigrafia",
			FixedSetupFee: decimal.NewFromInt(350),
			Tiers: []catalogrepo.VolumeTier{
				{MinQty: 1, MaxQty: &maxLow, UnitCost: decimal.NewFromFloat(8.50)},
				{MinQty: 100, MaxQty: nil, UnitCost: decimal.NewFromFloat(6.00)},
			},
		},
	}

	_, err := engine.ComputeLineItem(testProduct("100"), techniques, Configuration{
		Quantity:      75,
		TechniqueName: "Serigrafia",
	})
	if !apperr.Is(err, apperr.KindUnprocessable) {
		t.Fatalf("expected unprocessable error for tier gap, got %v", err)
	}
}

func TestComputeLineItem_LegacyLogoFormats(t *testing.T) {
	engine := testEngine()

	cases := []struct {
		format domain.LogoFormat
		unit   string
		setup  string
		total  string
	}{
		// base 100 * 1.35 = 135.00 marked up, qty 50
		{format: domain.LogoFormatNone, unit: "135.00", setup: "0.00", total: "6750.00"},
		{format: domain.LogoFormatTextOnly, unit: "153.00", setup: "0.00", total: "7650.00"},
		{format: domain.LogoFormatOneColor, unit: "143.50", setup: "350.00", total: "7525.00"},
		{format: domain.LogoFormatFullColor, unit: "151.50", setup: "1050.00", total: "8625.00"},
	}
	for _, tc := range cases {
		item, err := engine.ComputeLineItem(testProduct("100"), nil, Configuration{
			Quantity:   50,
			LogoFormat: tc.format,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.format, err)
		}
		if got := item.UnitPrice.StringFixed(2); got != tc.unit {
			t.Fatalf("%s: expected unit price %s, got %s", tc.format, tc.unit, got)
		}
		if got := item.SetupFee.StringFixed(2); got != tc.setup {
			t.Fatalf("%s: expected setup fee %s, got %s", tc.format, tc.setup, got)
		}
		if got := item.LineTotal.StringFixed(2); got != tc.total {
			t.Fatalf("%s: expected line total %s, got %s", tc.format, tc.total, got)
		}
	}
}

func TestComputeLineItem_TechniqueAndFormatAreExclusive(t *testing.T) {
	engine := testEngine()

	_, err := engine.ComputeLineItem(testProduct("100"), testTechniques(), Configuration{
		Quantity:      50,
		TechniqueName: "Serigrafia",
		LogoFormat:    domain.LogoFormatOneColor,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestComputeLineItem_MissingBaseCostPricesAsZero(t *testing.T) {
	engine := testEngine()
	product := testProduct("0")

	item, err := engine.ComputeLineItem(product, testTechniques(), Configuration{
		Quantity:      50,
		TechniqueName: "Serigrafia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := item.UnitPrice.StringFixed(2); got != "6.00" {
		t.Fatalf("expected unit price 6.00, got %s", got)
	}
}

func TestComputeLineItem_PrecisionCarriesThroughMultiplication(t *testing.T) {
	engine := testEngine()

	// 33.33 * 1.35 = 44.9955 exactly; 44.9955 * 100 = 4499.55.
	item, err := engine.ComputeLineItem(testProduct("33.33"), nil, Configuration{
		Quantity:   100,
		LogoFormat: domain.LogoFormatNone,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := item.LineTotal.StringFixed(2); got != "4499.55" {
		t.Fatalf("expected line total 4499.55, got %s", got)
	}
}

func TestClampQuantity(t *testing.T) {
	engine := testEngine()

	cases := []struct {
		in, out int
	}{
		{in: 1, out: 50},
		{in: 49, out: 50},
		{in: 50, out: 50},
		{in: 51, out: 51},
		{in: 0, out: 0},
		{in: -5, out: -5},
	}
	for _, tc := range cases {
		if got := engine.ClampQuantity(tc.in); got != tc.out {
			t.Fatalf("clamp %d: expected %d, got %d", tc.in, tc.out, got)
		}
	}
}
