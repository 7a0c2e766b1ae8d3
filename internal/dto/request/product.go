package request

import "clothing-shop/internal/data/entity"

type ProductRequest struct {
	ID              int     `json:"id" validate:"required,gt=0"`
	ProductName     string  `json:"product_name" validate:"required"`
	ProductCategory string  `json:"product_category"`
	Size            string  `json:"size"`
	Price           float64 `json:"price" validate:"gte=0"`
	Stock           int     `json:"stock" validate:"gte=0"`
	Brand           string  `json:"brand"`
	Color           string  `json:"color"`
	Material        string  `json:"material"`
	ReleaseDate     string  `json:"release_date"`
}

func (r *ProductRequest) ToEntity() *entity.Product {
	return &entity.Product{
		ID:              r.ID,
		ProductName:     r.ProductName,
		ProductCategory: r.ProductCategory,
		Size:            r.Size,
		Price:           r.Price,
		Stock:           r.Stock,
		Brand:           r.Brand,
		Color:           r.Color,
		Material:        r.Material,
		ReleaseDate:     r.ReleaseDate,
	}
}

// ProductUpdateRequest carries a partial update; nil fields are left alone.
type ProductUpdateRequest struct {
	ID              *int     `json:"id,omitempty" validate:"omitempty,gt=0"`
	ProductName     *string  `json:"product_name,omitempty" validate:"omitempty,min=1"`
	ProductCategory *string  `json:"product_category,omitempty"`
	Size            *string  `json:"size,omitempty"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock           *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Brand           *string  `json:"brand,omitempty"`
	Color           *string  `json:"color,omitempty"`
	Material        *string  `json:"material,omitempty"`
	ReleaseDate     *string  `json:"release_date,omitempty"`
}

// ToFields returns the provided fields keyed by their stored names.
func (r *ProductUpdateRequest) ToFields() map[string]any {
	fields := make(map[string]any)

	if r.ID != nil {
		fields["id"] = *r.ID
	}
	if r.ProductName != nil {
		fields["product_name"] = *r.ProductName
	}
	if r.ProductCategory != nil {
		fields["product_category"] = *r.ProductCategory
	}
	if r.Size != nil {
		fields["size"] = *r.Size
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Stock != nil {
		fields["stock"] = *r.Stock
	}
	if r.Brand != nil {
		fields["brand"] = *r.Brand
	}
	if r.Color != nil {
		fields["color"] = *r.Color
	}
	if r.Material != nil {
		fields["material"] = *r.Material
	}
	if r.ReleaseDate != nil {
		fields["release_date"] = *r.ReleaseDate
	}

	return fields
}
