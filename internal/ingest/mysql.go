package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

const transactionsTable = "transactions"

// MySQLSource loads transactions from a MySQL table with the columns
// invoice_no, stock_code, description, quantity, invoice_date, unit_price
// and customer_id.
type MySQLSource struct {
	dsn string
}

var _ contract.RecordSource = &MySQLSource{}

// NewMySQLSource creates a source reading from the given DSN. Both native
// driver DSNs and mysql:// URLs are accepted.
func NewMySQLSource(dsn string) *MySQLSource {
	return &MySQLSource{dsn: dsn}
}

// Name returns a short description of the source for log output.
func (s *MySQLSource) Name() string {
	return "mysql"
}

// Load queries the full transaction table ordered by invoice date.
func (s *MySQLSource) Load(ctx context.Context) ([]schema.TransactionRecord, error) {
	dsn, err := normalizeMySQLDSN(s.dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql source: %w", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	query := fmt.Sprintf(`
		SELECT invoice_no, stock_code, COALESCE(description, ''),
		       quantity, invoice_date, unit_price, COALESCE(customer_id, '')
		FROM %s
		ORDER BY invoice_date`, transactionsTable)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.TransactionRecord
	for rows.Next() {
		var rec schema.TransactionRecord
		var ts string
		if err := rows.Scan(&rec.InvoiceID, &rec.ProductID, &rec.Description,
			&rec.Quantity, &ts, &rec.UnitPrice, &rec.CustomerID); err != nil {
			return nil, fmt.Errorf("%w: scan transaction row: %v", contract.ErrDataIntegrity, err)
		}
		parsed, err := parseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contract.ErrDataIntegrity, err)
		}
		rec.Timestamp = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: transaction table is empty", contract.ErrInsufficientData)
	}
	return records, nil
}

// normalizeMySQLDSN converts mysql:// URLs into the native driver format and
// forces parseTime so DATETIME columns scan cleanly.
func normalizeMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mysql://") || strings.HasPrefix(dsn, "mariadb://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse source dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pass, _ = u.User.Password()
		}
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || u.Host == "" || db == "" {
			return "", fmt.Errorf("source dsn missing user, host or database")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", user, pass, u.Host, db), nil
	}
	return dsn, nil
}
