package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/content"
	"github.com/storefront/backend/internal/domain/locale"
	"github.com/storefront/backend/internal/domain/localization"
	"github.com/storefront/backend/internal/domain/pricing"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := migrateSchema(db.DB); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema migration completed")
	case "seed":
		if err := migrateSchema(db.DB); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		if err := seed(db.DB, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Seeding completed")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up      Apply schema migrations")
	fmt.Println("  seed    Apply schema migrations and insert reference data")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func migrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&locale.Currency{},
		&locale.Locale{},
		&catalog.Catalog{},
		&catalog.CatalogProduct{},
		&catalog.AssignmentRule{},
		&pricing.ProductLocaleFinancial{},
		&content.ProductLocaleContent{},
		&content.ContentApproval{},
		&localization.LocalizationJob{},
	)
}

// seed inserts the reference currencies, locales, and a default retail
// catalog per region with its assignment rules. Existing rows are left
// untouched, so seeding is safe to re-run.
func seed(db *gorm.DB, log *zap.Logger) error {
	if err := seedCurrencies(db, log); err != nil {
		return err
	}
	if err := seedLocales(db, log); err != nil {
		return err
	}
	return seedCatalogs(db, log)
}

func seedCurrencies(db *gorm.DB, log *zap.Logger) error {
	specs := []struct {
		code          string
		symbol        string
		decimalPlaces int32
	}{
		{"USD", "$", 2},
		{"CAD", "$", 2},
		{"EUR", "€", 2},
		{"GBP", "£", 2},
		{"JPY", "¥", 0},
	}

	for _, spec := range specs {
		exists, err := rowExists(db, &locale.Currency{}, "code = ?", spec.code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		currency, err := locale.NewCurrency(spec.code, spec.symbol, spec.decimalPlaces)
		if err != nil {
			return err
		}
		if err := db.Create(currency).Error; err != nil {
			return err
		}
		log.Info("Seeded currency", zap.String("code", spec.code))
	}
	return nil
}

func seedLocales(db *gorm.DB, log *zap.Logger) error {
	usFormat := locale.FormatRules{
		DecimalSeparator:   ".",
		ThousandsSeparator: ",",
		SymbolPosition:     locale.SymbolBefore,
		DatePattern:        "01/02/2006",
	}
	euFormat := locale.FormatRules{
		DecimalSeparator:   ",",
		ThousandsSeparator: ".",
		SymbolPosition:     locale.SymbolAfter,
		DatePattern:        "02/01/2006",
	}
	frFormat := locale.FormatRules{
		DecimalSeparator:   ",",
		ThousandsSeparator: " ",
		SymbolPosition:     locale.SymbolAfter,
		DatePattern:        "02/01/2006",
	}

	specs := []struct {
		code     string
		language string
		country  string
		currency string
		format   locale.FormatRules
	}{
		{"en_US", "en", "US", "USD", usFormat},
		{"en_CA", "en", "CA", "CAD", usFormat},
		{"fr_CA", "fr", "CA", "CAD", frFormat},
		{"en_GB", "en", "GB", "GBP", locale.FormatRules{
			DecimalSeparator:   ".",
			ThousandsSeparator: ",",
			SymbolPosition:     locale.SymbolBefore,
			DatePattern:        "02/01/2006",
		}},
		{"fr_FR", "fr", "FR", "EUR", frFormat},
		{"de_DE", "de", "DE", "EUR", euFormat},
		{"ja_JP", "ja", "JP", "JPY", locale.FormatRules{
			DecimalSeparator:   ".",
			ThousandsSeparator: ",",
			SymbolPosition:     locale.SymbolBefore,
			DatePattern:        "2006/01/02",
		}},
	}

	for _, spec := range specs {
		exists, err := rowExists(db, &locale.Locale{}, "code = ?", spec.code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		loc, err := locale.NewLocale(spec.code, spec.language, spec.country, spec.currency, spec.format)
		if err != nil {
			return err
		}
		if err := db.Create(loc).Error; err != nil {
			return err
		}
		log.Info("Seeded locale", zap.String("code", spec.code))
	}
	return nil
}

func seedCatalogs(db *gorm.DB, log *zap.Logger) error {
	specs := []struct {
		code       string
		name       string
		region     string
		segment    catalog.MarketSegment
		currency   string
		localeCode string
		country    string
		isDefault  bool
	}{
		{"US_RETAIL", "US Retail", "US", catalog.MarketSegmentRetail, "USD", "en_US", "US", true},
		{"CA_RETAIL", "Canada Retail", "CA", catalog.MarketSegmentRetail, "CAD", "en_CA", "CA", false},
		{"EU_RETAIL", "Europe Retail", "EU", catalog.MarketSegmentRetail, "EUR", "de_DE", "DE", false},
	}

	for _, spec := range specs {
		exists, err := rowExists(db, &catalog.Catalog{}, "code = ?", spec.code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		cat, err := catalog.NewCatalog(spec.code, spec.name, spec.region, spec.segment, spec.currency)
		if err != nil {
			return err
		}
		if spec.isDefault {
			cat.MarkDefault()
		}
		if err := db.Create(cat).Error; err != nil {
			return err
		}

		countryRule, err := catalog.NewAssignmentRule(cat.ID, spec.localeCode, catalog.AssignmentMethodCountry, spec.country, 0)
		if err != nil {
			return err
		}
		if err := db.Create(countryRule).Error; err != nil {
			return err
		}

		if spec.isDefault {
			defaultRule, err := catalog.NewAssignmentRule(cat.ID, spec.localeCode, catalog.AssignmentMethodDefault, "", 0)
			if err != nil {
				return err
			}
			if err := db.Create(defaultRule).Error; err != nil {
				return err
			}
		}

		log.Info("Seeded catalog", zap.String("code", spec.code))
	}
	return nil
}

func rowExists(db *gorm.DB, model any, query string, args ...any) (bool, error) {
	err := db.Where(query, args...).First(model).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
