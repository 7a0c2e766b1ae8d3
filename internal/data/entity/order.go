package entity

type OrderItem struct {
	ProductID int     `bson:"product_id" json:"product_id"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

// Order references users and products by id only; nothing checks them.
type Order struct {
	ID              int         `bson:"id" json:"id"`
	UserID          int         `bson:"user_id" json:"user_id"`
	OrderDate       string      `bson:"order_date" json:"order_date"`
	Status          string      `bson:"status" json:"status"`
	TotalPrice      float64     `bson:"total_price" json:"total_price"`
	Products        []OrderItem `bson:"products" json:"products"`
	ShippingAddress string      `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod   string      `bson:"payment_method" json:"payment_method"`
}

func (o Order) RecordID() int { return o.ID }
