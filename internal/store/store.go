package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no record has the requested ID
var ErrNotFound = errors.New("record not found")

// Fixed-width UTC timestamps sort lexically in both backends.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Record is one saved comparison. Result is only populated by Get.
type Record struct {
	ID              string                   `json:"id"`
	Label           string                   `json:"label,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	AnnualIncome    decimal.Decimal          `json:"annual_income"`
	TotalDeductions decimal.Decimal          `json:"total_deductions"`
	TaxableOld      decimal.Decimal          `json:"taxable_old"`
	TaxOld          decimal.Decimal          `json:"tax_old"`
	TaxableNew      decimal.Decimal          `json:"taxable_new"`
	TaxNew          decimal.Decimal          `json:"tax_new"`
	NetAnnualOld    decimal.Decimal          `json:"net_annual_old"`
	NetAnnualNew    decimal.Decimal          `json:"net_annual_new"`
	NetMonthlyOld   decimal.Decimal          `json:"net_monthly_old"`
	NetMonthlyNew   decimal.Decimal          `json:"net_monthly_new"`
	Cheaper         string                   `json:"cheaper"`
	Result          *domain.ComparisonResult `json:"result,omitempty"`
}

// Store saves and loads comparison records
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to the database, verifies the connection and creates the
// schema. driver is "sqlite" or "postgres".
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if driver == "sqlite" {
		// An in-memory database exists per connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s := New(db, driver)
	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection. The schema must already exist.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver, now: time.Now}
}

// Close closes the underlying connection
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders as $1, $2... for postgres
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Save stores a comparison result under a new ID. The summary columns
// mirror the figures shown in a listing; deductions are the new regime's.
func (s *Store) Save(ctx context.Context, label string, result domain.ComparisonResult) (*Record, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	rec := recordFromResult(result)
	rec.ID = uuid.New().String()
	rec.Label = label
	rec.CreatedAt = s.now().UTC()

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO tax_record (
			id, label, created_at, annual_income, total_deductions,
			taxable_old, tax_old, taxable_new, tax_new,
			net_annual_old, net_annual_new, net_monthly_old, net_monthly_new,
			cheaper, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		rec.ID, rec.Label, rec.CreatedAt.Format(timeLayout),
		rec.AnnualIncome.String(), rec.TotalDeductions.String(),
		rec.TaxableOld.String(), rec.TaxOld.String(),
		rec.TaxableNew.String(), rec.TaxNew.String(),
		rec.NetAnnualOld.String(), rec.NetAnnualNew.String(),
		rec.NetMonthlyOld.String(), rec.NetMonthlyNew.String(),
		rec.Cheaper, string(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	rec.Result = &result
	return &rec, nil
}

func recordFromResult(r domain.ComparisonResult) Record {
	return Record{
		AnnualIncome:    r.Inputs.AnnualIncome,
		TotalDeductions: r.New.TotalDeductionsApplied,
		TaxableOld:      r.Old.TaxableIncome,
		TaxOld:          r.Old.TotalTax,
		TaxableNew:      r.New.TaxableIncome,
		TaxNew:          r.New.TotalTax,
		NetAnnualOld:    r.Old.NetAnnualIncome,
		NetAnnualNew:    r.New.NetAnnualIncome,
		NetMonthlyOld:   r.Old.NetMonthlyIncome,
		NetMonthlyNew:   r.New.NetMonthlyIncome,
		Cheaper:         r.Cheaper,
	}
}

const summaryColumns = `id, label, created_at, annual_income, total_deductions,
		taxable_old, tax_old, taxable_new, tax_new,
		net_annual_old, net_annual_new, net_monthly_old, net_monthly_new, cheaper`

type scanner interface {
	Scan(dest ...any) error
}

// scanSummary reads the summary columns, plus extra trailing destinations
func scanSummary(row scanner, extra ...any) (Record, error) {
	var rec Record
	var created string
	var amounts [10]string

	dest := []any{&rec.ID, &rec.Label, &created}
	for i := range amounts {
		dest = append(dest, &amounts[i])
	}
	dest = append(dest, &rec.Cheaper)
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return Record{}, err
	}

	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Record{}, fmt.Errorf("invalid created_at %q: %w", created, err)
	}
	rec.CreatedAt = t

	targets := []*decimal.Decimal{
		&rec.AnnualIncome, &rec.TotalDeductions,
		&rec.TaxableOld, &rec.TaxOld, &rec.TaxableNew, &rec.TaxNew,
		&rec.NetAnnualOld, &rec.NetAnnualNew, &rec.NetMonthlyOld, &rec.NetMonthlyNew,
	}
	for i, target := range targets {
		d, err := decimal.NewFromString(amounts[i])
		if err != nil {
			return Record{}, fmt.Errorf("invalid amount %q in record %s: %w", amounts[i], rec.ID, err)
		}
		*target = d
	}
	return rec, nil
}

// Get loads one record including the full result
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var payload string
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT `+summaryColumns+`, payload
		FROM tax_record
		WHERE id = ?
	`), id)

	rec, err := scanSummary(row, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", id, err)
	}

	var result domain.ComparisonResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	rec.Result = &result
	return &rec, nil
}

// List returns the most recent records first, without their full results.
// A non-positive limit returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT ` + summaryColumns + ` FROM tax_record ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}
