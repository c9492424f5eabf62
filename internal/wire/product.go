package wire

import (
	"github.com/gyaneshwarpardhi/trackwire/internal/event"
	"github.com/gyaneshwarpardhi/trackwire/internal/numeric"
)

// ProductDTO is the wire form of one product. Absent fields are omitted.
type ProductDTO struct {
	ID          string                 `json:"id,omitempty"`
	Name        string                 `json:"nm,omitempty"`
	Price       *float64               `json:"pr,omitempty"`
	Quantity    *float64               `json:"qt,omitempty"`
	Brand       string                 `json:"br,omitempty"`
	Variant     string                 `json:"va,omitempty"`
	Category    string                 `json:"ca,omitempty"`
	Position    *float64               `json:"ps,omitempty"`
	CouponCode  string                 `json:"cc,omitempty"`
	TotalAmount *float64               `json:"tpa,omitempty"`
	Attributes  map[string]interface{} `json:"attrs,omitempty"`
}

// EncodeProduct maps one product to its wire form.
func EncodeProduct(p event.Product) ProductDTO {
	return ProductDTO{
		ID:          p.Sku,
		Name:        p.Name,
		Price:       numeric.Ptr(p.Price),
		Quantity:    numeric.Ptr(p.Quantity),
		Brand:       p.Brand,
		Variant:     p.Variant,
		Category:    p.Category,
		Position:    numeric.Ptr(p.Position),
		CouponCode:  p.CouponCode,
		TotalAmount: numeric.Ptr(p.TotalAmount),
		Attributes:  p.Attributes,
	}
}

// EncodeProductList maps products in order. The result is never nil.
func EncodeProductList(products []event.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, EncodeProduct(p))
	}
	return out
}

// EncodeProductBags wraps each bag's encoded list under "ProductList" when
// running inside an embedded web view and under "pl" otherwise.
func EncodeProductBags(bags event.ProductBags, webViewEmbedded bool) map[string]map[string][]ProductDTO {
	key := "pl"
	if webViewEmbedded {
		key = "ProductList"
	}
	out := make(map[string]map[string][]ProductDTO, len(bags))
	for name, products := range bags {
		out[name] = map[string][]ProductDTO{key: EncodeProductList(products)}
	}
	return out
}
