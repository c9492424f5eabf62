package wire

import (
	"math"

	"github.com/gyaneshwarpardhi/trackwire/internal/event"
	"github.com/gyaneshwarpardhi/trackwire/internal/numeric"
)

type ShoppingCartDTO struct {
	ProductList []ProductDTO `json:"pl"`
}

type ProductActionDTO struct {
	Action          event.ProductActionType `json:"an"`
	CheckoutStep    *float64                `json:"cs,omitempty"`
	CheckoutOptions string                  `json:"co,omitempty"`
	ProductList     []ProductDTO            `json:"pl"`
	TransactionID   string                  `json:"ti,omitempty"`
	Affiliation     string                  `json:"ta,omitempty"`
	CouponCode      string                  `json:"tcc,omitempty"`
	TotalAmount     *float64                `json:"tr,omitempty"`
	ShippingAmount  *float64                `json:"ts,omitempty"`
	TaxAmount       *float64                `json:"tt,omitempty"`
}

type PromotionDTO struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"nm,omitempty"`
	Creative string      `json:"cr,omitempty"`
	Position interface{} `json:"ps"`
}

type PromotionActionDTO struct {
	Action        event.PromotionActionType `json:"an"`
	PromotionList []PromotionDTO            `json:"pl"`
}

type ImpressionDTO struct {
	ImpressionList interface{}  `json:"pil"`
	ProductList    []ProductDTO `json:"pl"`
}

// commercePayload is the single commerce sub-payload carried by a record.
type commercePayload interface {
	attach(dto DTO)
}

type cartPayload struct{ cart *event.ShoppingCart }

type productActionPayload struct{ action *event.ProductAction }

type promotionPayload struct{ action *event.PromotionAction }

type impressionsPayload struct{ impressions []event.Impression }

// resolveCommerce picks the payload by precedence:
// cart, then product action, then promotion, then impressions.
func resolveCommerce(rec *event.Record) commercePayload {
	switch {
	case rec.ShoppingCart != nil:
		return cartPayload{rec.ShoppingCart}
	case rec.ProductAction != nil:
		return productActionPayload{rec.ProductAction}
	case rec.PromotionAction != nil:
		return promotionPayload{rec.PromotionAction}
	case rec.ProductImpressions != nil:
		return impressionsPayload{rec.ProductImpressions}
	}
	return nil
}

func (p cartPayload) attach(dto DTO) {
	dto[KeyShoppingCart] = ShoppingCartDTO{ProductList: EncodeProductList(p.cart.ProductList)}
}

func (p productActionPayload) attach(dto DTO) {
	a := p.action
	dto[KeyProductAction] = ProductActionDTO{
		Action:          a.ProductActionType,
		CheckoutStep:    numeric.Ptr(a.CheckoutStep),
		CheckoutOptions: a.CheckoutOptions,
		ProductList:     EncodeProductList(a.ProductList),
		TransactionID:   a.TransactionID,
		Affiliation:     a.Affiliation,
		CouponCode:      a.CouponCode,
		TotalAmount:     numeric.Ptr(a.TotalAmount),
		ShippingAmount:  numeric.Ptr(a.ShippingAmount),
		TaxAmount:       numeric.Ptr(a.TaxAmount),
	}
}

func (p promotionPayload) attach(dto DTO) {
	list := make([]PromotionDTO, 0, len(p.action.PromotionList))
	for _, promo := range p.action.PromotionList {
		pos := promo.Position
		if falsy(pos) {
			pos = 0
		}
		list = append(list, PromotionDTO{
			ID:       promo.ID,
			Name:     promo.Name,
			Creative: promo.Creative,
			Position: pos,
		})
	}
	dto[KeyPromotionAction] = PromotionActionDTO{
		Action:        p.action.PromotionActionType,
		PromotionList: list,
	}
}

func (p impressionsPayload) attach(dto DTO) {
	out := make([]ImpressionDTO, 0, len(p.impressions))
	for _, imp := range p.impressions {
		out = append(out, ImpressionDTO{
			ImpressionList: imp.ProductImpressionList,
			ProductList:    EncodeProductList(imp.ProductList),
		})
	}
	dto[KeyProductImpressions] = out
}

// falsy reports whether v is nil, false, "", a numeric zero or NaN.
// Numeric strings such as "0" are not falsy.
func falsy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case float64:
		return x == 0 || math.IsNaN(x)
	case float32:
		return x == 0 || math.IsNaN(float64(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, _ := numeric.Parse(x)
		return f == 0
	}
	return false
}
