package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"
	"clothing-shop/internal/data/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type menuEnv struct {
	products *repotest.Collection[entity.Product]
	users    *repotest.Collection[entity.User]
	orders   *repotest.Collection[entity.Order]
	scraped  *repotest.Collection[entity.ScrapedProduct]
	out      strings.Builder
}

func (e *menuEnv) run(t *testing.T, input string) string {
	t.Helper()
	e.out.Reset()

	repo := &repository.Repository{
		Product: e.products,
		User:    e.users,
		Order:   e.orders,
		Scraped: e.scraped,
	}
	m := NewMenu(strings.NewReader(input), &e.out, repo, NewScraper(DefaultLayout, zap.NewNop()), zap.NewNop())
	require.NoError(t, m.Run(context.Background()))
	return e.out.String()
}

func newMenuEnv() *menuEnv {
	return &menuEnv{
		products: repotest.NewCollection[entity.Product](repository.ProductsCollection, "id"),
		users:    repotest.NewCollection[entity.User](repository.UsersCollection, "id"),
		orders:   repotest.NewCollection[entity.Order](repository.OrdersCollection, "id"),
		scraped:  repotest.NewCollection[entity.ScrapedProduct](repository.ScrapedProductsCollection),
	}
}

func lines(in ...string) string {
	return strings.Join(in, "\n") + "\n"
}

func TestMenuExit(t *testing.T) {
	env := newMenuEnv()

	out := env.run(t, lines("17"))
	assert.Contains(t, out, "17. Exit")
	assert.Contains(t, out, "Exiting the program.")

	out = env.run(t, "")
	assert.NotContains(t, out, "Exiting the program.")
}

func TestMenuStopsWhenCancelled(t *testing.T) {
	env := newMenuEnv()
	repo := &repository.Repository{Product: env.products, User: env.users, Order: env.orders, Scraped: env.scraped}
	var out strings.Builder

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMenu(strings.NewReader(lines("42", "42", "17")), &out, repo, NewScraper(DefaultLayout, zap.NewNop()), zap.NewNop())
	err := m.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), "Invalid choice")
	assert.NotContains(t, out.String(), "Exiting the program.")
}

func TestMenuInvalidChoice(t *testing.T) {
	env := newMenuEnv()

	out := env.run(t, lines("42", "abc", "17"))
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please try again."))
}

func TestMenuCreateProduct(t *testing.T) {
	env := newMenuEnv()
	product := []string{"4", "5", "Linen Shirt", "Shirts", "M", "39.90", "8", "Acme", "white", "linen", "05/01/2024"}

	out := env.run(t, lines(append(append(product, product...), "17")...))

	assert.Contains(t, out, "Record added successfully with ID: 5")
	assert.Contains(t, out, "Record with ID 5 already exists.")
	require.Equal(t, 1, env.products.Len())

	got, err := env.products.FindOne(context.Background(), repository.ByID(5))
	require.NoError(t, err)
	assert.Equal(t, entity.Product{
		ID: 5, ProductName: "Linen Shirt", ProductCategory: "Shirts", Size: "M", Price: 39.90,
		Stock: 8, Brand: "Acme", Color: "white", Material: "linen", ReleaseDate: "05/01/2024",
	}, *got)
}

func TestMenuCreateRejectsBadNumber(t *testing.T) {
	env := newMenuEnv()

	out := env.run(t, lines("4", "five", "17"))
	assert.Contains(t, out, `Invalid input: "five" is not a whole number`)
	assert.Zero(t, env.products.Len())
}

func TestMenuCreateUserAndOrder(t *testing.T) {
	env := newMenuEnv()

	out := env.run(t, lines(
		"5", "1", "Ada", "Lovelace", "ada@example.com", "F", "555", "1 Main St", "London", "LDN", "N1", "01/01/2024",
		"6", "10", "1", "02/01/2024", "pending", "79.80", "5", "2", "39.90", "1 Main St", "card",
		"17",
	))
	assert.Contains(t, out, "Record added successfully with ID: 1")
	assert.Contains(t, out, "Record added successfully with ID: 10")

	order, err := env.orders.FindOne(context.Background(), repository.ByID(10))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, []entity.OrderItem{{ProductID: 5, Quantity: 2, Price: 39.90}}, order.Products)

	user, err := env.users.FindOne(context.Background(), repository.ByID(1))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "London", user.Address.City)
}

func TestMenuUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("CoercesAndSkipsUnknown", func(t *testing.T) {
		env := newMenuEnv()
		require.NoError(t, env.products.Insert(ctx, &entity.Product{ID: 1, ProductName: "Tee", Stock: 1}))

		out := env.run(t, lines("10", "1", "stock", "20", "flavour", "mint", "price", "9.5", "done", "17"))
		assert.Contains(t, out, "Skipped:")
		assert.Contains(t, out, "Record with ID 1 updated successfully!")

		got, err := env.products.FindOne(ctx, repository.ByID(1))
		require.NoError(t, err)
		assert.Equal(t, 20, got.Stock)
		assert.Equal(t, 9.5, got.Price)
	})

	t.Run("Missing", func(t *testing.T) {
		env := newMenuEnv()

		out := env.run(t, lines("12", "3", "status", "shipped", "done", "17"))
		assert.Contains(t, out, "Record with ID 3 not found.")
		assert.Zero(t, env.orders.Len())
	})

	t.Run("NothingToUpdate", func(t *testing.T) {
		env := newMenuEnv()

		out := env.run(t, lines("11", "3", "done", "17"))
		assert.Contains(t, out, "No fields to update.")
	})
}

func TestMenuDelete(t *testing.T) {
	ctx := context.Background()
	env := newMenuEnv()
	require.NoError(t, env.products.Insert(ctx, &entity.Product{ID: 1, ProductName: "Tee"}))
	require.NoError(t, env.orders.Insert(ctx, &entity.Order{ID: 9}))

	out := env.run(t, lines("13", "Hat", "13", "Tee", "15", "8", "15", "9", "17"))

	assert.Contains(t, out, "Record 'Hat' not found.")
	assert.Contains(t, out, "Record 'Tee' deleted successfully.")
	assert.Contains(t, out, "Record with ID 8 not found.")
	assert.Contains(t, out, "Record with ID 9 deleted successfully.")
	assert.Zero(t, env.products.Len())
	assert.Zero(t, env.orders.Len())
}

func TestMenuListAndLoad(t *testing.T) {
	env := newMenuEnv()
	fixture := writeFile(t, "products.json", productsFixture)

	out := env.run(t, lines("7", "1", fixture, "7", "17"))

	assert.Contains(t, out, "No records found.")
	assert.Contains(t, out, "3 records added successfully!")
	assert.Contains(t, out, `"product_name":"Silk Scarf"`)
	assert.Equal(t, 3, env.products.Len())
}

func TestMenuLoadErrors(t *testing.T) {
	env := newMenuEnv()

	out := env.run(t, lines("2", writeFile(t, "users.json", "{not json"), "17"))
	assert.Contains(t, out, "Error loading JSON data:")
	assert.Zero(t, env.users.Len())
}

func TestMenuScrape(t *testing.T) {
	env := newMenuEnv()

	out := env.run(t, lines(
		"16", writeFile(t, "listing.html", listingHTML),
		"16", writeFile(t, "empty.html", "<html><body></body></html>"),
		"16", "/nonexistent/listing.html",
		"17",
	))

	assert.Contains(t, out, "2 products scraped from the local file.")
	assert.Contains(t, out, "2 incomplete product cards skipped.")
	assert.Contains(t, out, "2 records inserted successfully!")
	assert.Contains(t, out, "No data to save.")
	assert.Contains(t, out, "Error reading the file:")
	assert.Equal(t, 2, env.scraped.Len())
}

func TestMenuStoreFailure(t *testing.T) {
	env := newMenuEnv()
	env.products.Err = errors.New("connection refused")

	out := env.run(t, lines("7", "17"))
	assert.Contains(t, out, "Error: connection refused")
	assert.Contains(t, out, "Exiting the program.")
}

func TestMenuSeed(t *testing.T) {
	env := newMenuEnv()
	repo := &repository.Repository{Product: env.products, User: env.users, Order: env.orders, Scraped: env.scraped}
	var out strings.Builder

	m := NewMenu(strings.NewReader(""), &out, repo, NewScraper(DefaultLayout, zap.NewNop()), zap.NewNop())
	m.Seed(context.Background(), Fixtures{
		Products: writeFile(t, "products.json", productsFixture),
		Orders:   writeFile(t, "orders.json", `[{"id": 1, "user_id": 2, "products": [{"product_id": 1, "quantity": 1, "price": 120.5}]}]`),
	})

	assert.Equal(t, 3, env.products.Len())
	assert.Equal(t, 1, env.orders.Len())
	assert.Zero(t, env.users.Len())
	assert.Equal(t, 2, strings.Count(out.String(), "records added successfully!"))
}
