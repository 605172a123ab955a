package model

import "bookit/shared/model"

const (
	ProductTableName  = "booking_products"
	ProductEntityName = "booking_product"

	FieldProductBookingID = "booking_id"
)

// Product is an add-on sold with a booking.
type Product struct {
	ID          string  `db:"id"`
	BookingID   string  `db:"booking_id"`
	ProductName string  `db:"product_name"`
	Qty         int     `db:"qty"`
	Price       float64 `db:"price"`
	model.Metadata
}

func (p Product) Total() float64 {
	return float64(p.Qty) * p.Price
}
