package ingest

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/salespulse/salespulse/schema"
)

// sampleProduct is a catalog entry for the synthetic dataset.
type sampleProduct struct {
	code        string
	description string
	price       float64
}

// sampleCatalog mirrors a small gift-shop inventory.
var sampleCatalog = []sampleProduct{
	{"85123A", "WHITE HANGING HEART T-LIGHT HOLDER", 2.55},
	{"71053", "WHITE METAL LANTERN", 3.39},
	{"84406B", "CREAM CUPID HEARTS COAT HANGER", 2.75},
	{"84029G", "KNITTED UNION FLAG HOT WATER BOTTLE", 3.39},
	{"84029E", "RED WOOLLY HOTTIE WHITE HEART", 3.39},
	{"22752", "SET 7 BABUSHKA NESTING BOXES", 7.65},
	{"21730", "GLASS STAR FROSTED T-LIGHT HOLDER", 4.25},
	{"22633", "HAND WARMER UNION JACK", 1.85},
	{"22632", "HAND WARMER RED POLKA DOT", 1.85},
	{"84879", "ASSORTED COLOUR BIRD ORNAMENT", 1.69},
	{"22745", "POPPY'S PLAYHOUSE BEDROOM", 2.10},
	{"22748", "POPPY'S PLAYHOUSE KITCHEN", 2.10},
	{"22749", "FELTCRAFT PRINCESS CHARLOTTE DOLL", 3.75},
	{"22310", "IVORY KNITTED MUG COSY", 1.65},
	{"84969", "BOX OF 6 ASSORTED COLOUR TEASPOONS", 4.25},
}

// GeneratorOptions controls the synthetic dataset shape.
type GeneratorOptions struct {
	Transactions int
	Customers    int
	Start        time.Time
	End          time.Time
	Seed         int64
	ShowProgress bool
}

// GenerateSample produces a seeded synthetic transaction set with holiday
// seasonality and repeat buyers, sorted by timestamp. The same seed always
// yields the same dataset.
func GenerateSample(opts GeneratorOptions) []schema.TransactionRecord {
	rng := rand.New(rand.NewSource(opts.Seed))
	days := int(opts.End.Sub(opts.Start).Hours() / 24)
	if days < 1 {
		days = 1
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.Default(int64(opts.Transactions))
	}

	records := make([]schema.TransactionRecord, 0, opts.Transactions)
	for i := 0; i < opts.Transactions; i++ {
		ts := opts.Start.AddDate(0, 0, rng.Intn(days)).
			Add(time.Duration(8+rng.Intn(12)) * time.Hour)

		product := sampleCatalog[rng.Intn(len(sampleCatalog))]

		quantity := 1 + rng.Intn(5)
		if rng.Float64() < 0.1 {
			// Occasional bulk order.
			quantity = 10 + rng.Intn(41)
		}
		quantity = int(float64(quantity) * seasonalBoost(rng, ts.Month()))
		if quantity < 1 {
			quantity = 1
		}

		// Most purchases come from an established customer pool.
		var customerID int
		if rng.Float64() < 0.7 {
			customerID = 1000 + rng.Intn(opts.Customers)
		} else {
			customerID = 1000 + opts.Customers + rng.Intn(opts.Customers)
		}

		invoiceID := fmt.Sprintf("INV-%05d", 10000+rng.Intn(90000))
		if rng.Float64() < 0.3 {
			// Multi-line invoice tied to the customer.
			invoiceID = fmt.Sprintf("INV-%d-%03d", customerID, 1+rng.Intn(10))
		}

		records = append(records, schema.TransactionRecord{
			InvoiceID:   invoiceID,
			CustomerID:  strconv.Itoa(customerID),
			ProductID:   product.code,
			Description: product.description,
			Quantity:    quantity,
			UnitPrice:   product.price,
			Timestamp:   ts,
		})
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records
}

// seasonalBoost scales quantities by time of year: a strong holiday bump in
// November and December, a slump in January and February.
func seasonalBoost(rng *rand.Rand, month time.Month) float64 {
	switch month {
	case time.November, time.December:
		boosts := []float64{1, 1, 1, 1.5, 2}
		return boosts[rng.Intn(len(boosts))]
	case time.January, time.February:
		boosts := []float64{0.5, 0.7, 1}
		return boosts[rng.Intn(len(boosts))]
	default:
		boosts := []float64{0.8, 1, 1.2}
		return boosts[rng.Intn(len(boosts))]
	}
}

// WriteSampleCSV writes generated records to a CSV file in the same column
// layout the CSV source reads.
func WriteSampleCSV(path string, records []schema.TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := []string{"InvoiceNo", "StockCode", "Description", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.InvoiceID,
			rec.ProductID,
			rec.Description,
			strconv.Itoa(rec.Quantity),
			rec.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(rec.UnitPrice, 'f', 2, 64),
			rec.CustomerID,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
