package domain

import "time"

// Product is an item listed by a seller.
type Product struct {
	ID          int64   `json:"id" bson:"_id"`
	Name        string  `json:"name" bson:"name"`
	Price       float64 `json:"price" bson:"price"`
	Description string  `json:"desc" bson:"desc"`
	SellerID    int64   `json:"seller_id" bson:"seller_id"`
	Images      []Image `json:"imgs,omitempty" bson:"-"`
}

// Image is a picture attached to a product.
type Image struct {
	ID          int64  `json:"id" bson:"_id"`
	URL         string `json:"img" bson:"img"`
	Description string `json:"desc" bson:"desc"`
	ProductID   int64  `json:"product_id" bson:"product_id"`
}

// Card is a payment card owned by a customer.
type Card struct {
	Number     string `json:"card_number" bson:"_id"`
	HolderName string `json:"card_holder_name" bson:"card_holder_name"`
	ExpMonth   int    `json:"exp_month" bson:"exp_month"`
	ExpYear    int    `json:"exp_year" bson:"exp_year"`
	CustomerID int64  `json:"-" bson:"customer_id"`
}

// BankAccount is a payout account owned by a seller.
type BankAccount struct {
	Number   string `json:"acc_num" bson:"_id"`
	Holder   string `json:"acc_holder" bson:"acc_holder"`
	BankName string `json:"bank_name" bson:"bank_name"`
	IFSCCode string `json:"ifsc_code" bson:"ifsc_code"`
	SellerID int64  `json:"-" bson:"seller_id"`
}

// OrderStatusPlaced is the status every order starts in.
const OrderStatusPlaced = "placed"

// Order records a customer buying a product from a seller.
type Order struct {
	ID          int64     `json:"id" bson:"_id"`
	CustomerID  int64     `json:"customer_id" bson:"customer_id"`
	SellerID    int64     `json:"seller_id" bson:"seller_id"`
	ProductID   int64     `json:"product_id" bson:"product_id"`
	Price       float64   `json:"price" bson:"price"`
	IsCOD       bool      `json:"is_cod" bson:"is_cod"`
	IsCancelled bool      `json:"is_cancelled" bson:"is_cancelled"`
	IsDelivered bool      `json:"is_delivered" bson:"is_delivered"`
	Status      string    `json:"status" bson:"status"`
	PlacedAt    time.Time `json:"placed_at" bson:"placed_at"`
}

// VisibleTo reports whether the identity is a party to the order.
func (o *Order) VisibleTo(id Identity) bool {
	if id.IsSeller() {
		return o.SellerID == id.ID
	}
	return o.CustomerID == id.ID
}
