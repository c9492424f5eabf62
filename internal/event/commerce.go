package event

// Product is one commerce product. Numeric fields are loosely typed because
// callers may supply numbers or numeric strings.
type Product struct {
	Sku         string                 `json:"sku"`
	Name        string                 `json:"name"`
	Price       interface{}            `json:"price"`
	Quantity    interface{}            `json:"quantity"`
	Brand       string                 `json:"brand"`
	Variant     string                 `json:"variant"`
	Category    string                 `json:"category"`
	Position    interface{}            `json:"position"`
	CouponCode  string                 `json:"coupon_code"`
	TotalAmount interface{}            `json:"total_amount"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// ProductBags maps a caller-chosen bag name to its products.
type ProductBags map[string][]Product

// ShoppingCart is the cart sub-payload of a commerce event.
type ShoppingCart struct {
	ProductList []Product `json:"product_list"`
}

// ProductActionType enumerates product actions.
type ProductActionType int

const (
	ProductActionUnknown        ProductActionType = 0
	ProductActionAddToCart      ProductActionType = 1
	ProductActionRemoveFromCart ProductActionType = 2
	ProductActionCheckout       ProductActionType = 3
	ProductActionCheckoutOption ProductActionType = 4
	ProductActionClick          ProductActionType = 5
	ProductActionViewDetail     ProductActionType = 6
	ProductActionPurchase       ProductActionType = 7
	ProductActionRefund         ProductActionType = 8
)

// ProductAction describes an action applied to a list of products.
type ProductAction struct {
	ProductActionType ProductActionType `json:"product_action_type"`
	CheckoutStep      interface{}       `json:"checkout_step"`
	CheckoutOptions   string            `json:"checkout_options"`
	ProductList       []Product         `json:"product_list"`
	TransactionID     string            `json:"transaction_id"`
	Affiliation       string            `json:"affiliation"`
	CouponCode        string            `json:"coupon_code"`
	TotalAmount       interface{}       `json:"total_amount"`
	ShippingAmount    interface{}       `json:"shipping_amount"`
	TaxAmount         interface{}       `json:"tax_amount"`
}

// PromotionActionType enumerates promotion actions.
type PromotionActionType int

const (
	PromotionActionUnknown PromotionActionType = 0
	PromotionActionView    PromotionActionType = 1
	PromotionActionClick   PromotionActionType = 2
)

// Promotion is one internal promotion.
type Promotion struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Creative string      `json:"creative"`
	Position interface{} `json:"position"`
}

// PromotionAction describes an action applied to a list of promotions.
type PromotionAction struct {
	PromotionActionType PromotionActionType `json:"promotion_action_type"`
	PromotionList       []Promotion         `json:"promotion_list"`
}

// Impression is a named list of products that were shown.
type Impression struct {
	ProductImpressionList interface{} `json:"product_impression_list"`
	ProductList           []Product   `json:"product_list"`
}
