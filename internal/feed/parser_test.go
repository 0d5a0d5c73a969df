package feed

import (
	"errors"
	"testing"
)

func TestParse_TopLevelShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not JSON", raw: `not json at all`},
		{name: "products key absent", raw: `{"items": []}`},
		{name: "products is null", raw: `{"products": null}`},
		{name: "products not an array", raw: `{"products": {"id": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("expected FormatError, got %v", err)
			}
		})
	}
}

func TestParse_ValidFeed(t *testing.T) {
	raw := `{"products": [
		{"id": 1, "title": "Shirt", "variants": [{"id": 11, "price": "19.99"}]},
		{"id": 2, "title": "Mug", "variants": [{"id": 21, "price": "5.00"}]}
	]}`

	items, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestParseProduct_RequiredFields(t *testing.T) {
	id := int64(1)
	title := "Shirt"
	empty := "   "

	tests := []struct {
		name string
		item feedProduct
	}{
		{name: "missing id", item: feedProduct{Title: &title}},
		{name: "missing title", item: feedProduct{ID: &id}},
		{name: "blank title", item: feedProduct{ID: &id, Title: &empty}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProduct(tt.item)
			var itemErr *ItemError
			if !errors.As(err, &itemErr) {
				t.Fatalf("expected ItemError, got %v", err)
			}
		})
	}
}

func TestParseProduct_OptionalFieldsAbsent(t *testing.T) {
	id := int64(7)
	title := "Plain"

	bundle, err := parseProduct(feedProduct{ID: &id, Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := bundle.Product
	if p.Handle != nil || p.Vendor != nil || p.ProductType != nil || p.ImageURL != nil {
		t.Errorf("expected absent optionals to stay nil, got %+v", p)
	}
	if p.Price != nil {
		t.Errorf("expected nil price with no variants, got %v", p.Price)
	}
	if *p.ExternalID != 7 {
		t.Errorf("expected external id 7, got %d", *p.ExternalID)
	}
}

func TestParseProduct_ImageFromFirstElement(t *testing.T) {
	id := int64(1)
	title := "Shirt"
	first := "https://cdn.example.com/a.jpg"
	second := "https://cdn.example.com/b.jpg"

	bundle, err := parseProduct(feedProduct{
		ID:     &id,
		Title:  &title,
		Images: []feedImage{{Src: &first}, {Src: &second}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Product.ImageURL == nil || *bundle.Product.ImageURL != first {
		t.Errorf("expected image %q, got %v", first, bundle.Product.ImageURL)
	}
}

func TestParseProduct_PriceFromFirstVariant(t *testing.T) {
	id := int64(1)
	title := "Shirt"
	vid1, vid2 := int64(11), int64(12)
	p1, p2 := "19.99", "29.99"

	bundle, err := parseProduct(feedProduct{
		ID:    &id,
		Title: &title,
		Variants: []feedVariant{
			{ID: &vid1, Price: &p1},
			{ID: &vid2, Price: &p2},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Product.Price == nil || bundle.Product.Price.String() != "19.99" {
		t.Errorf("expected product price 19.99, got %v", bundle.Product.Price)
	}
	if len(bundle.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(bundle.Variants))
	}
}

func TestParseProduct_MalformedFirstVariantPrice(t *testing.T) {
	id := int64(1)
	title := "Shirt"
	vid := int64(11)
	bad := "not-a-number"

	_, err := parseProduct(feedProduct{
		ID:       &id,
		Title:    &title,
		Variants: []feedVariant{{ID: &vid, Price: &bad}},
	})
	var itemErr *ItemError
	if !errors.As(err, &itemErr) {
		t.Fatalf("expected ItemError for malformed first variant price, got %v", err)
	}
}

func TestParseProduct_MalformedLaterVariantSkipped(t *testing.T) {
	id := int64(1)
	title := "Shirt"
	vid1, vid2, vid3 := int64(11), int64(12), int64(13)
	good1, bad, good2 := "10.00", "oops", "12.50"

	bundle, err := parseProduct(feedProduct{
		ID:    &id,
		Title: &title,
		Variants: []feedVariant{
			{ID: &vid1, Price: &good1},
			{ID: &vid2, Price: &bad},
			{ID: &vid3, Price: &good2},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bundle.Variants) != 2 {
		t.Errorf("expected 2 surviving variants, got %d", len(bundle.Variants))
	}
	if bundle.SkippedVariants != 1 {
		t.Errorf("expected 1 skipped variant, got %d", bundle.SkippedVariants)
	}
}

func TestParseVariant_AvailabilityDefaultsFalse(t *testing.T) {
	vid := int64(11)
	price := "9.99"
	yes := true

	tests := []struct {
		name      string
		available *bool
		want      bool
	}{
		{name: "absent", available: nil, want: false},
		{name: "explicit true", available: &yes, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseVariant(feedVariant{ID: &vid, Price: &price, Available: tt.available})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.Available != tt.want {
				t.Errorf("expected available=%v, got %v", tt.want, v.Available)
			}
		})
	}
}

func TestParseVariant_MissingID(t *testing.T) {
	price := "9.99"
	_, err := parseVariant(feedVariant{Price: &price})
	var itemErr *ItemError
	if !errors.As(err, &itemErr) {
		t.Fatalf("expected ItemError, got %v", err)
	}
}
