package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"

	"go.uber.org/zap"
)

const (
	exitChoice   = "17"
	doneSentinel = "done"
)

var menuOptions = []string{
	"Load products from JSON file",
	"Load users from JSON file",
	"Load orders from JSON file",
	"Create a new product",
	"Create a new user",
	"Create a new order",
	"Get all products",
	"Get all users",
	"Get all orders",
	"Update a product by ID",
	"Update a user by ID",
	"Update an order by ID",
	"Delete a product by name",
	"Delete a user by name",
	"Delete an order by ID",
	"Scrape local file for products",
	"Exit",
}

// catalog is the non-generic view of a Store used by menu actions.
type catalog interface {
	Label() string
	LoadFromFile(ctx context.Context, path string) (int, error)
	Dump(ctx context.Context, w io.Writer) (int, error)
	UpdateByID(ctx context.Context, id int, fields map[string]any) error
	DeleteByName(ctx context.Context, name string) error
	DeleteByID(ctx context.Context, id int) error
	ParseField(field, raw string) (any, error)
}

// inputError is a value the user typed that could not be parsed.
type inputError struct {
	msg string
}

func (e inputError) Error() string { return e.msg }

// Fixtures names JSON files to import before the menu starts. Empty paths are skipped.
type Fixtures struct {
	Products string
	Users    string
	Orders   string
}

// Menu is the interactive driver. It is either waiting for a menu choice or
// collecting the fields of the chosen action.
type Menu struct {
	in  *bufio.Scanner
	out io.Writer

	products *Store[entity.Product]
	users    *Store[entity.User]
	orders   *Store[entity.Order]
	scraped  repository.Collection[entity.ScrapedProduct]
	scraper  *Scraper

	actions map[string]func(ctx context.Context) error
	log     *zap.Logger
}

func NewMenu(in io.Reader, out io.Writer, repo *repository.Repository, scraper *Scraper, log *zap.Logger) *Menu {
	m := &Menu{
		in:       bufio.NewScanner(in),
		out:      out,
		products: NewProductStore(repo.Product, log),
		users:    NewUserStore(repo.User, log),
		orders:   NewOrderStore(repo.Order, log),
		scraped:  repo.Scraped,
		scraper:  scraper,
		log:      log.With(zap.String("component", "menu")),
	}

	m.actions = map[string]func(ctx context.Context) error{
		"1":  func(ctx context.Context) error { return m.load(ctx, m.products) },
		"2":  func(ctx context.Context) error { return m.load(ctx, m.users) },
		"3":  func(ctx context.Context) error { return m.load(ctx, m.orders) },
		"4":  m.createProduct,
		"5":  m.createUser,
		"6":  m.createOrder,
		"7":  func(ctx context.Context) error { return m.list(ctx, m.products) },
		"8":  func(ctx context.Context) error { return m.list(ctx, m.users) },
		"9":  func(ctx context.Context) error { return m.list(ctx, m.orders) },
		"10": func(ctx context.Context) error { return m.update(ctx, m.products) },
		"11": func(ctx context.Context) error { return m.update(ctx, m.users) },
		"12": func(ctx context.Context) error { return m.update(ctx, m.orders) },
		"13": func(ctx context.Context) error { return m.deleteByName(ctx, m.products) },
		"14": func(ctx context.Context) error { return m.deleteByName(ctx, m.users) },
		"15": func(ctx context.Context) error { return m.deleteByID(ctx, m.orders) },
		"16": m.scrape,
	}

	return m
}

// Seed imports the given fixtures, reporting each outcome without stopping.
func (m *Menu) Seed(ctx context.Context, f Fixtures) {
	seeds := []struct {
		path string
		c    catalog
	}{
		{f.Products, m.products},
		{f.Users, m.users},
		{f.Orders, m.orders},
	}

	for _, s := range seeds {
		if s.path == "" {
			continue
		}
		m.importFile(ctx, s.c, s.path)
	}
}

// Run loops until the exit choice, end of input or ctx cancellation, which is
// returned as ctx.Err(). Failures inside an action are printed and the menu is
// shown again.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printOptions()

		choice, err := m.prompt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if choice == exitChoice {
			m.println("Exiting the program.")
			return nil
		}

		action, ok := m.actions[choice]
		if !ok {
			m.println("Invalid choice. Please try again.")
			continue
		}

		if err := action(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.report(err)
		}
	}
}

func (m *Menu) printOptions() {
	m.println("\nOptions:")
	for i, opt := range menuOptions {
		m.printf("%d. %s\n", i+1, opt)
	}
}

func (m *Menu) report(err error) {
	var inErr inputError
	if errors.As(err, &inErr) {
		m.printf("Invalid input: %s\n", inErr.msg)
		return
	}

	m.log.Error("Menu action failed", zap.Error(err))
	m.printf("Error: %v\n", err)
}

// ==================== ACTIONS ====================

func (m *Menu) load(ctx context.Context, c catalog) error {
	path, err := m.prompt(fmt.Sprintf("Enter the path to the JSON file for %ss: ", c.Label()))
	if err != nil {
		return err
	}

	m.importFile(ctx, c, path)
	return nil
}

func (m *Menu) importFile(ctx context.Context, c catalog, path string) {
	inserted, err := c.LoadFromFile(ctx, path)
	switch {
	case err == nil:
		m.printf("%d records added successfully!\n", inserted)
	case errors.Is(err, repository.ErrDuplicate):
		m.printf("%d records added; some %ss already existed and were skipped.\n", inserted, c.Label())
	default:
		m.printf("Error loading JSON data: %v\n", err)
	}
}

func (m *Menu) createProduct(ctx context.Context) error {
	f := m.form()
	p := entity.Product{
		ID:              f.number("Enter product ID: "),
		ProductName:     f.text("Enter product name: "),
		ProductCategory: f.text("Enter product category: "),
		Size:            f.text("Enter size: "),
		Price:           f.decimal("Enter price: "),
		Stock:           f.count("Enter stock: "),
		Brand:           f.text("Enter brand: "),
		Color:           f.text("Enter color: "),
		Material:        f.text("Enter material: "),
		ReleaseDate:     f.text("Enter release date (MM/DD/YYYY): "),
	}
	if f.err != nil {
		return f.err
	}

	return m.created(m.products.Create(ctx, p), p.ID)
}

func (m *Menu) createUser(ctx context.Context) error {
	f := m.form()
	u := entity.User{
		ID:        f.number("Enter user ID: "),
		FirstName: f.text("Enter first name: "),
		LastName:  f.text("Enter last name: "),
		Email:     f.text("Enter email: "),
		Gender:    f.text("Enter gender: "),
		Phone:     f.text("Enter phone: "),
		Address: entity.Address{
			Street: f.text("Enter street address: "),
			City:   f.text("Enter city: "),
			State:  f.text("Enter state: "),
			Zip:    f.text("Enter ZIP code: "),
		},
		RegistrationDate: f.text("Enter registration date (MM/DD/YYYY): "),
	}
	if f.err != nil {
		return f.err
	}

	return m.created(m.users.Create(ctx, u), u.ID)
}

func (m *Menu) createOrder(ctx context.Context) error {
	f := m.form()
	o := entity.Order{
		ID:         f.number("Enter order ID: "),
		UserID:     f.number("Enter user ID: "),
		OrderDate:  f.text("Enter order date (MM/DD/YYYY): "),
		Status:     f.text("Enter status: "),
		TotalPrice: f.decimal("Enter total price: "),
		Products: []entity.OrderItem{{
			ProductID: f.number("Enter product ID: "),
			Quantity:  f.count("Enter quantity: "),
			Price:     f.decimal("Enter price: "),
		}},
		ShippingAddress: f.text("Enter shipping address: "),
		PaymentMethod:   f.text("Enter payment method: "),
	}
	if f.err != nil {
		return f.err
	}

	return m.created(m.orders.Create(ctx, o), o.ID)
}

func (m *Menu) created(err error, id int) error {
	switch {
	case err == nil:
		m.printf("Record added successfully with ID: %d\n", id)
		return nil
	case errors.Is(err, repository.ErrDuplicate):
		m.printf("Record with ID %d already exists.\n", id)
		return nil
	default:
		return err
	}
}

func (m *Menu) list(ctx context.Context, c catalog) error {
	m.println("Available records:")
	n, err := c.Dump(ctx, m.out)
	if err != nil {
		return err
	}
	if n == 0 {
		m.println("No records found.")
	}
	return nil
}

func (m *Menu) update(ctx context.Context, c catalog) error {
	id, err := m.promptInt(fmt.Sprintf("Enter %s ID to update: ", c.Label()))
	if err != nil {
		return err
	}

	fields := make(map[string]any)
	for {
		field, err := m.prompt("Enter the field to update (type 'done' to finish): ")
		if err != nil {
			return err
		}
		if field == doneSentinel {
			break
		}

		raw, err := m.prompt(fmt.Sprintf("Enter the new value for %s: ", field))
		if err != nil {
			return err
		}

		value, err := c.ParseField(field, raw)
		if err != nil {
			m.printf("Skipped: %v\n", err)
			continue
		}
		fields[field] = value
	}

	err = c.UpdateByID(ctx, id, fields)
	switch {
	case err == nil:
		m.printf("Record with ID %d updated successfully!\n", id)
	case errors.Is(err, ErrNoFields):
		m.println("No fields to update.")
	case errors.Is(err, repository.ErrNotFound):
		m.printf("Record with ID %d not found.\n", id)
	default:
		return err
	}
	return nil
}

func (m *Menu) deleteByName(ctx context.Context, c catalog) error {
	name, err := m.prompt(fmt.Sprintf("Enter the %s name to delete: ", c.Label()))
	if err != nil {
		return err
	}

	err = c.DeleteByName(ctx, name)
	switch {
	case err == nil:
		m.printf("Record '%s' deleted successfully.\n", name)
	case errors.Is(err, repository.ErrNotFound):
		m.printf("Record '%s' not found.\n", name)
	default:
		return err
	}
	return nil
}

func (m *Menu) deleteByID(ctx context.Context, c catalog) error {
	id, err := m.promptInt(fmt.Sprintf("Enter the %s ID to delete: ", c.Label()))
	if err != nil {
		return err
	}

	err = c.DeleteByID(ctx, id)
	switch {
	case err == nil:
		m.printf("Record with ID %d deleted successfully.\n", id)
	case errors.Is(err, repository.ErrNotFound):
		m.printf("Record with ID %d not found.\n", id)
	default:
		return err
	}
	return nil
}

func (m *Menu) scrape(ctx context.Context) error {
	m.println("Starting local file scraping...")
	path, err := m.prompt("Enter the path to the local HTML file: ")
	if err != nil {
		return err
	}

	res, err := m.scraper.ScrapeLocalFile(path)
	if err != nil {
		m.printf("Error reading the file: %v\n", err)
		return nil
	}
	m.printf("%d products scraped from the local file.\n", len(res.Products))
	if res.Skipped > 0 {
		m.printf("%d incomplete product cards skipped.\n", res.Skipped)
	}

	inserted, err := SaveScraped(ctx, m.scraped, res.Products)
	switch {
	case err == nil:
		m.printf("%d records inserted successfully!\n", inserted)
	case errors.Is(err, ErrNothingToSave):
		m.println("No data to save.")
	default:
		return err
	}
	return nil
}

// ==================== INPUT ====================

func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) promptInt(label string) (int, error) {
	raw, err := m.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, inputError{msg: fmt.Sprintf("%q is not a whole number", raw)}
	}
	return n, nil
}

// form collects a multi-field record. After the first failure the remaining
// prompts are skipped and err holds the cause.
type form struct {
	m   *Menu
	err error
}

func (m *Menu) form() *form {
	return &form{m: m}
}

func (f *form) text(label string) string {
	if f.err != nil {
		return ""
	}
	s, err := f.m.prompt(label)
	f.err = err
	return s
}

func (f *form) number(label string) int {
	if f.err != nil {
		return 0
	}
	n, err := f.m.promptInt(label)
	f.err = err
	return n
}

func (f *form) count(label string) int {
	n := f.number(label)
	if f.err == nil && n < 0 {
		f.err = inputError{msg: fmt.Sprintf("%d cannot be negative", n)}
	}
	return n
}

func (f *form) decimal(label string) float64 {
	raw := f.text(label)
	if f.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.err = inputError{msg: fmt.Sprintf("%q is not a number", raw)}
	}
	return v
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}
