package entity

type Product struct {
	ID              int     `bson:"id" json:"id"`
	ProductName     string  `bson:"product_name" json:"product_name"`
	ProductCategory string  `bson:"product_category" json:"product_category"`
	Size            string  `bson:"size" json:"size"`
	Price           float64 `bson:"price" json:"price"`
	Stock           int     `bson:"stock" json:"stock"`
	Brand           string  `bson:"brand" json:"brand"`
	Color           string  `bson:"color" json:"color"`
	Material        string  `bson:"material" json:"material"`
	ReleaseDate     string  `bson:"release_date" json:"release_date"`
}

func (p Product) RecordID() int { return p.ID }

// ScrapedProduct is a listing pulled out of HTML. Price is kept as shown on the page.
type ScrapedProduct struct {
	Name     string `bson:"name" json:"name"`
	Price    string `bson:"price" json:"price"`
	Category string `bson:"category" json:"category"`
}
