// Command seed-db loads the catalog fixtures and default reference data into
// PostgreSQL. It is safe to rerun: existing products are updated in place and
// duplicate reference rows are skipped.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sirajstore/commerce-api/internal/domain/care"
	"github.com/sirajstore/commerce-api/internal/domain/category"
	"github.com/sirajstore/commerce-api/internal/domain/discount"
	"github.com/sirajstore/commerce-api/internal/domain/product"
	"github.com/sirajstore/commerce-api/internal/domain/shipping"
	"github.com/sirajstore/commerce-api/internal/repository"
)

func main() {
	var (
		databaseURL  string
		productsFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedProducts(ctx, repository.NewProductRepository(pool), productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}
	if err := seedCategories(ctx, repository.NewCategoryRepository(pool)); err != nil {
		return errors.Wrap(err, "seed categories")
	}
	if err := seedShippingRates(ctx, repository.NewShippingRepository(pool)); err != nil {
		return errors.Wrap(err, "seed shipping rates")
	}
	if err := seedCareInstructions(ctx, repository.NewCareRepository(pool)); err != nil {
		return errors.Wrap(err, "seed care instructions")
	}
	if err := seedDiscounts(ctx, repository.NewDiscountRepository(pool)); err != nil {
		return errors.Wrap(err, "seed discounts")
	}

	return nil
}

func seedProducts(ctx context.Context, repo *repository.ProductRepository, productsFile string) error {
	slog.Info("reading products file", slog.String("path", productsFile))

	data, err := os.ReadFile(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products file")
	}

	var products []product.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("upserting products", slog.Int("count", len(products)))

	for i := range products {
		p := &products[i]
		if p.Type == "" {
			p.Type = product.TypeSingle
		}
		if p.Status == "" {
			p.Status = product.StatusActive
		}

		_, err := repo.GetByID(ctx, p.ID)
		switch {
		case err == nil:
			if err := repo.Update(ctx, p); err != nil {
				return errors.Wrapf(err, "update product %s", p.ID)
			}
		case errors.Is(err, product.ErrNotFound):
			if err := repo.Create(ctx, p); err != nil {
				return errors.Wrapf(err, "create product %s", p.ID)
			}
		default:
			return errors.Wrapf(err, "look up product %s", p.ID)
		}

		slog.Info("upserted product", slog.String("id", p.ID), slog.String("name", p.Name))
	}

	return nil
}

func seedCategories(ctx context.Context, repo *repository.CategoryRepository) error {
	names := []string{"Candles", "Bundles", "Diffusers", "Wax Melts", "Accessories"}

	for i, name := range names {
		c := &category.Category{
			ID:        uuid.New().String(),
			Name:      name,
			SortOrder: i + 1,
		}
		err := repo.Create(ctx, c)
		if errors.Is(err, category.ErrDuplicateName) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "create category %s", name)
		}
		slog.Info("created category", slog.String("name", name))
	}

	return nil
}

func seedShippingRates(ctx context.Context, repo *repository.ShippingRepository) error {
	rates := []shipping.Rate{
		{City: "Karachi", Fee: decimal.NewFromInt(150)},
		{City: "Lahore", Fee: decimal.NewFromInt(200)},
		{City: "Islamabad", Fee: decimal.NewFromInt(200)},
		{City: "Peshawar", Fee: decimal.NewFromInt(250)},
	}

	for _, r := range rates {
		r.ID = uuid.New().String()
		err := repo.Create(ctx, &r)
		if errors.Is(err, shipping.ErrDuplicateCity) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "create shipping rate %s", r.City)
		}
		slog.Info("created shipping rate", slog.String("city", r.City))
	}

	return nil
}

func seedCareInstructions(ctx context.Context, repo *repository.CareRepository) error {
	instructions := []care.Instruction{
		{
			Category: "Candles",
			Title:    "Candle Care",
			Content:  "Trim the wick to 5mm before each burn. Let the wax pool reach the edges on the first burn to prevent tunneling.",
		},
		{
			Category: "Wax Melts",
			Title:    "Wax Melt Care",
			Content:  "Use one cube per warmer. Replace when the scent fades, usually after 8 to 10 hours of use.",
		},
	}

	for _, i := range instructions {
		i.ID = uuid.New().String()
		err := repo.Create(ctx, &i)
		if errors.Is(err, care.ErrDuplicateCategory) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "create care instruction %s", i.Category)
		}
		slog.Info("created care instruction", slog.String("category", i.Category))
	}

	return nil
}

func seedDiscounts(ctx context.Context, repo *repository.DiscountRepository) error {
	discounts := []discount.Discount{
		{
			Code:      "WELCOME10",
			Type:      discount.TypePercentage,
			Value:     decimal.NewFromInt(10),
			AppliesTo: discount.ScopeEntire,
			Status:    discount.StatusActive,
		},
		{
			Code:      "FLAT200",
			Type:      discount.TypeFixed,
			Value:     decimal.NewFromInt(200),
			AppliesTo: discount.ScopeEntire,
			Status:    discount.StatusActive,
		},
	}

	for _, d := range discounts {
		d.ID = uuid.New().String()
		if err := repo.Upsert(ctx, &d); err != nil {
			return errors.Wrapf(err, "upsert discount %s", d.Code)
		}
		slog.Info("upserted discount", slog.String("code", d.Code))
	}

	return nil
}
