package repository

import (
	"clothing-shop/internal/data/entity"
	"clothing-shop/pkg/database"

	"go.uber.org/zap"
)

const (
	AccountsCollection        = "accounts"
	ProductsCollection        = "products"
	UsersCollection           = "users"
	OrdersCollection          = "orders"
	ScrapedProductsCollection = "scraped_products"
)

type Repository struct {
	Account Collection[entity.Account]
	Product Collection[entity.Product]
	User    Collection[entity.User]
	Order   Collection[entity.Order]
	Scraped Collection[entity.ScrapedProduct]
}

func NewRepository(db *database.DB, log *zap.Logger) *Repository {
	return &Repository{
		Account: NewCollection[entity.Account](db, AccountsCollection, log),
		Product: NewCollection[entity.Product](db, ProductsCollection, log),
		User:    NewCollection[entity.User](db, UsersCollection, log),
		Order:   NewCollection[entity.Order](db, OrdersCollection, log),
		Scraped: NewCollection[entity.ScrapedProduct](db, ScrapedProductsCollection, log),
	}
}
