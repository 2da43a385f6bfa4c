// Package repository implements data access on PostgreSQL.
package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/avolkov/pos-admin/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrUsernameTaken is returned when a username already exists in the same namespace.
var (
	ErrUsernameTaken = errors.New("username already taken")
	// ErrAdminNotFound is returned when an admin user cannot be found.
	ErrAdminNotFound = errors.New("admin user not found")
	// ErrBusinessNotFound is returned when a POS business cannot be found.
	ErrBusinessNotFound = errors.New("business not found")
	// ErrProductNotFound is returned when a product is missing or owned by another business.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a checkout would drive stock below zero;
	// callers wrap it with the offending product name.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrSessionNotFound is returned when a session token is unknown or already deleted.
	ErrSessionNotFound = errors.New("session not found")
)

// PostgresRepository provides access to the data store in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a repository and initializes the schema via migrations.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delays := []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

	for i := 0; i <= len(delays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected {
				if i < len(delays) {
					time.Sleep(delays[i])
					continue
				}
			}
		}

		if isConnectionError(err) {
			if i < len(delays) {
				time.Sleep(delays[i])
				continue
			}
		}

		break
	}
	return err
}

func isConnectionError(err error) bool {
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close closes the connection pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func scanDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// CreateAdmin creates an admin user.
func (r *PostgresRepository) CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admin_users (username, password_hash) VALUES ($1, $2) RETURNING id`,
		username, passwordHash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrUsernameTaken, username)
		}
		return 0, fmt.Errorf("create admin: %w", err)
	}
	return id, nil
}

// GetAdminByUsername returns an admin user by username.
func (r *PostgresRepository) GetAdminByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admin_users WHERE username = $1`,
		username,
	)
	return scanAdmin(row)
}

// GetAdminByID returns an admin user by id.
func (r *PostgresRepository) GetAdminByID(ctx context.Context, id int64) (*model.AdminUser, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admin_users WHERE id = $1`,
		id,
	)
	return scanAdmin(row)
}

func scanAdmin(row pgx.Row) (*model.AdminUser, error) {
	var a model.AdminUser
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

const businessColumns = `id, business_name, contact_email, username, password_hash, status,
	currency_symbol, business_address, business_phone, receipt_footer,
	tax_rate::text, created_at, approved_at, approved_by`

// CreateBusiness inserts a new POS business. Status and defaults are taken
// from the passed record, not from client input.
func (r *PostgresRepository) CreateBusiness(ctx context.Context, b *model.Business) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO businesses
			(business_name, contact_email, username, password_hash, status,
			 currency_symbol, business_address, business_phone, receipt_footer, tax_rate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric)
		 RETURNING id`,
		b.BusinessName, b.ContactEmail, b.Username, b.PasswordHash, string(b.Status),
		b.CurrencySymbol, b.BusinessAddress, b.BusinessPhone, b.ReceiptFooter,
		b.TaxRate.StringFixed(2),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s", ErrUsernameTaken, b.Username)
		}
		return 0, fmt.Errorf("create business: %w", err)
	}
	return id, nil
}

// GetBusinessByUsername returns a business by username.
func (r *PostgresRepository) GetBusinessByUsername(ctx context.Context, username string) (*model.Business, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE username = $1`,
		username,
	)
	return scanBusiness(row)
}

// GetBusinessByID returns a business by id.
func (r *PostgresRepository) GetBusinessByID(ctx context.Context, id int64) (*model.Business, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+businessColumns+` FROM businesses WHERE id = $1`,
		id,
	)
	return scanBusiness(row)
}

func scanBusiness(row pgx.Row) (*model.Business, error) {
	var (
		b       model.Business
		status  string
		taxRate string
	)
	err := row.Scan(&b.ID, &b.BusinessName, &b.ContactEmail, &b.Username, &b.PasswordHash,
		&status, &b.CurrencySymbol, &b.BusinessAddress, &b.BusinessPhone, &b.ReceiptFooter,
		&taxRate, &b.CreatedAt, &b.ApprovedAt, &b.ApprovedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("get business: %w", err)
	}

	b.Status = model.BusinessStatus(status)
	b.TaxRate, err = scanDecimal(taxRate)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// ListBusinesses returns all businesses, optionally filtered by status.
func (r *PostgresRepository) ListBusinesses(ctx context.Context, status *model.BusinessStatus) ([]model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select businesses: %w", err)
	}
	defer rows.Close()

	var res []model.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// SetBusinessStatus applies an approval-workflow transition. Approval metadata
// is set for approved and cleared for rejected.
func (r *PostgresRepository) SetBusinessStatus(ctx context.Context, id int64, status model.BusinessStatus, approvedAt *time.Time, approvedBy *int64) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE businesses SET status = $2, approved_at = $3, approved_by = $4 WHERE id = $1`,
		id, string(status), approvedAt, approvedBy,
	)
	if err != nil {
		return fmt.Errorf("update business status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// UpdateBusinessCurrency changes the currency symbol of a business.
func (r *PostgresRepository) UpdateBusinessCurrency(ctx context.Context, id int64, symbol string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE businesses SET currency_symbol = $2 WHERE id = $1`,
		id, symbol,
	)
	if err != nil {
		return fmt.Errorf("update currency: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// UpdateBusinessInfo changes the business profile fields a tenant may edit itself.
func (r *PostgresRepository) UpdateBusinessInfo(ctx context.Context, id int64, name, address, phone, footer string, taxRate decimal.Decimal) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE businesses
		 SET business_name = $2, business_address = $3, business_phone = $4,
		     receipt_footer = $5, tax_rate = $6::numeric
		 WHERE id = $1`,
		id, name, address, phone, footer, taxRate.StringFixed(2),
	)
	if err != nil {
		return fmt.Errorf("update business info: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// DeleteBusiness hard-deletes a business, its products, its transactions
// (via FK cascades) and its live sessions, in one transaction.
func (r *PostgresRepository) DeleteBusiness(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM sessions WHERE principal_kind = $1 AND principal_id = $2`,
		string(model.PrincipalPOS), id,
	); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// CountBusinessesByStatus returns platform-wide counts for the admin dashboard.
func (r *PostgresRepository) CountBusinessesByStatus(ctx context.Context) (*model.AdminStats, error) {
	var s model.AdminStats
	err := r.pool.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE status = 'pending'),
		        count(*) FILTER (WHERE status = 'approved'),
		        count(*) FILTER (WHERE status = 'rejected')
		 FROM businesses`,
	).Scan(&s.TotalPOS, &s.PendingPOS, &s.ApprovedPOS, &s.RejectedPOS)
	if err != nil {
		return nil, fmt.Errorf("count businesses: %w", err)
	}
	return &s, nil
}

const productColumns = `id, business_id, name, price::text, category, stock, image_url, is_active`

// CreateProduct inserts a catalog entry for the owning business.
func (r *PostgresRepository) CreateProduct(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (business_id, name, price, category, stock, image_url, is_active)
		 VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)
		 RETURNING id`,
		p.BusinessID, p.Name, p.Price.StringFixed(2), p.Category, p.Stock, p.ImageURL, p.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// GetProduct returns a product only if it belongs to the given business.
func (r *PostgresRepository) GetProduct(ctx context.Context, id, businessID int64) (*model.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND business_id = $2`,
		id, businessID,
	)
	return scanProduct(row)
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p     model.Product
		price string
	)
	err := row.Scan(&p.ID, &p.BusinessID, &p.Name, &price, &p.Category, &p.Stock, &p.ImageURL, &p.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	p.Price, err = scanDecimal(price)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ListProducts returns a business's catalog, optionally restricted to active entries.
func (r *PostgresRepository) ListProducts(ctx context.Context, businessID int64, activeOnly bool) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE business_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY category, name`

	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var res []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// GetProductsByIDs returns the given business's active products among ids.
// Missing ids are simply absent from the result; callers decide how to fail.
func (r *PostgresRepository) GetProductsByIDs(ctx context.Context, businessID int64, ids []int64) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE business_id = $1 AND id = ANY($2) AND is_active`,
		businessID, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("select products by ids: %w", err)
	}
	defer rows.Close()

	var res []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// UpdateProduct rewrites a catalog entry. The WHERE clause enforces ownership;
// a foreign or missing id affects zero rows and surfaces as not found.
func (r *PostgresRepository) UpdateProduct(ctx context.Context, p *model.Product) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name = $3, price = $4::numeric, category = $5, stock = $6, image_url = $7, is_active = $8
		 WHERE id = $1 AND business_id = $2`,
		p.ID, p.BusinessID, p.Name, p.Price.StringFixed(2), p.Category, p.Stock, p.ImageURL, p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a catalog entry owned by the given business.
func (r *PostgresRepository) DeleteProduct(ctx context.Context, id, businessID int64) error {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND business_id = $2`,
		id, businessID,
	)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// SetStock overwrites the stock level directly (manual inventory correction).
// This is the only stock mutation besides the checkout decrement.
func (r *PostgresRepository) SetStock(ctx context.Context, id, businessID int64, stock int) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE products SET stock = $3 WHERE id = $1 AND business_id = $2`,
		id, businessID, stock,
	)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// CreateTransaction atomically decrements stock for every line item and
// persists the transaction record. Each decrement is a single conditional
// UPDATE guarded by stock >= quantity; if any line fails, the whole database
// transaction rolls back so earlier decrements are undone and nothing is
// persisted.
func (r *PostgresRepository) CreateTransaction(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	var res *model.Transaction
	err := r.withRetry(ctx, func() error {
		var err error
		res, err = r.createTransaction(ctx, t)
		return err
	})
	return res, err
}

func (r *PostgresRepository) createTransaction(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, item := range t.Items {
		cmdTag, err := tx.Exec(ctx,
			`UPDATE products
			 SET stock = stock - $3
			 WHERE id = $1 AND business_id = $2 AND is_active AND stock >= $3`,
			item.ProductID, t.BusinessID, item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, item.Name)
		}
	}

	persisted := *t
	err = tx.QueryRow(ctx,
		`INSERT INTO transactions (business_id, receipt_number, subtotal, tax, total, payment_method)
		 VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, $6)
		 RETURNING id, created_at`,
		t.BusinessID, t.ReceiptNumber,
		t.Subtotal.StringFixed(2), t.Tax.StringFixed(2), t.Total.StringFixed(2),
		string(t.PaymentMethod),
	).Scan(&persisted.ID, &persisted.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	for i, item := range t.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO transaction_items (transaction_id, product_id, name, unit_price, quantity, position)
			 VALUES ($1, $2, $3, $4::numeric, $5, $6)`,
			persisted.ID, item.ProductID, item.Name, item.UnitPrice.StringFixed(2), item.Quantity, i,
		)
		if err != nil {
			return nil, fmt.Errorf("insert transaction item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &persisted, nil
}

// GetTransactionsByRange returns a business's transactions with createdAt in
// [start, end], newest first, items included.
func (r *PostgresRepository) GetTransactionsByRange(ctx context.Context, businessID int64, start, end time.Time) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, business_id, receipt_number, subtotal::text, tax::text, total::text, payment_method, created_at
		 FROM transactions
		 WHERE business_id = $1 AND created_at >= $2 AND created_at <= $3
		 ORDER BY created_at DESC`,
		businessID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var res []model.Transaction
	var ids []int64
	for rows.Next() {
		var (
			t                    model.Transaction
			subtotal, tax, total string
			method               string
		)
		if err := rows.Scan(&t.ID, &t.BusinessID, &t.ReceiptNumber, &subtotal, &tax, &total, &method, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		if t.Subtotal, err = scanDecimal(subtotal); err != nil {
			return nil, err
		}
		if t.Tax, err = scanDecimal(tax); err != nil {
			return nil, err
		}
		if t.Total, err = scanDecimal(total); err != nil {
			return nil, err
		}
		t.PaymentMethod = model.PaymentMethod(method)

		res = append(res, t)
		ids = append(ids, t.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if len(res) == 0 {
		return res, nil
	}

	items, err := r.getItemsByTransactionIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range res {
		res[i].Items = items[res[i].ID]
	}

	return res, nil
}

func (r *PostgresRepository) getItemsByTransactionIDs(ctx context.Context, ids []int64) (map[int64][]model.TransactionItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT transaction_id, product_id, name, unit_price::text, quantity
		 FROM transaction_items
		 WHERE transaction_id = ANY($1)
		 ORDER BY transaction_id, position`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("select transaction items: %w", err)
	}
	defer rows.Close()

	res := make(map[int64][]model.TransactionItem)
	for rows.Next() {
		var (
			txID      int64
			item      model.TransactionItem
			unitPrice string
		)
		if err := rows.Scan(&txID, &item.ProductID, &item.Name, &unitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		if item.UnitPrice, err = scanDecimal(unitPrice); err != nil {
			return nil, err
		}
		res[txID] = append(res[txID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// CreateSession inserts a session row.
func (r *PostgresRepository) CreateSession(ctx context.Context, s *model.Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (token, principal_kind, principal_id, expires_at)
		 VALUES ($1::uuid, $2, $3, $4)`,
		s.Token, string(s.Kind), s.PrincipalID, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession returns a session by token.
func (r *PostgresRepository) GetSession(ctx context.Context, token string) (*model.Session, error) {
	var (
		s    model.Session
		kind string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT token::text, principal_kind, principal_id, created_at, expires_at
		 FROM sessions WHERE token = $1::uuid`,
		token,
	).Scan(&s.Token, &kind, &s.PrincipalID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.Kind = model.PrincipalKind(kind)
	return &s, nil
}

// DeleteSession removes a session row; deleting an unknown token is not an error.
func (r *PostgresRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1::uuid`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
