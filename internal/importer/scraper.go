package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// CardLayout holds the CSS selectors describing one product card. Name,
// Price and Category are resolved inside each matched Card.
type CardLayout struct {
	Card     string
	Name     string
	Price    string
	Category string
}

// DefaultLayout matches the shop listing markup the tool was written for.
var DefaultLayout = CardLayout{
	Card:     "div.product-card",
	Name:     "h2.product-name",
	Price:    "span.product-price",
	Category: "span.product-category",
}

type ScrapeResult struct {
	Products []entity.ScrapedProduct
	// Skipped counts cards missing one of the expected elements.
	Skipped int
}

type Scraper struct {
	layout CardLayout
	log    *zap.Logger
}

func NewScraper(layout CardLayout, log *zap.Logger) *Scraper {
	return &Scraper{
		layout: layout,
		log:    log.With(zap.String("component", "scraper")),
	}
}

// ScrapeLocalFile parses the HTML file at path. It never writes to storage.
func (s *Scraper) ScrapeLocalFile(path string) (*ScrapeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	res, err := s.Scrape(f)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", path, err)
	}

	s.log.Info("Local file scraped",
		zap.String("path", path),
		zap.Int("products", len(res.Products)),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func (s *Scraper) Scrape(r io.Reader) (*ScrapeResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	res := &ScrapeResult{Products: make([]entity.ScrapedProduct, 0)}

	doc.Find(s.layout.Card).Each(func(_ int, card *goquery.Selection) {
		name, okName := firstText(card, s.layout.Name)
		price, okPrice := firstText(card, s.layout.Price)
		category, okCategory := firstText(card, s.layout.Category)

		if !okName || !okPrice || !okCategory {
			res.Skipped++
			return
		}

		res.Products = append(res.Products, entity.ScrapedProduct{
			Name:     name,
			Price:    price,
			Category: category,
		})
	})

	return res, nil
}

func firstText(card *goquery.Selection, selector string) (string, bool) {
	sel := card.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// SaveScraped bulk-inserts scraped products. An empty list is ErrNothingToSave.
func SaveScraped(ctx context.Context, coll repository.Collection[entity.ScrapedProduct], products []entity.ScrapedProduct) (int, error) {
	if len(products) == 0 {
		return 0, ErrNothingToSave
	}

	inserted, err := coll.InsertMany(ctx, products)
	if err != nil {
		return inserted, fmt.Errorf("save scraped products: %w", err)
	}
	return inserted, nil
}
