package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/inventory"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

const sweetColumns = `id, name, category, price, quantity, description, image_url, created_at, updated_at`

// InventoryStore implements inventory.Store on PostgreSQL.
type InventoryStore struct {
	pool *pgxpool.Pool
}

func NewInventoryStore(pool *pgxpool.Pool) *InventoryStore {
	return &InventoryStore{pool: pool}
}

// buildSweetListQuery turns a filter into parameterized SQL. Filters compose
// with AND; values only ever travel as arguments.
func buildSweetListQuery(f inventory.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}
	if f.InStock != nil {
		if *f.InStock {
			where = append(where, "quantity > 0")
		} else {
			where = append(where, "quantity = 0")
		}
	}

	q := `SELECT ` + sweetColumns + ` FROM sweets`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"
	return q, args
}

// buildSweetPatchQuery turns a partial update into a parameterized UPDATE
// touching only the supplied fields, plus updated_at.
func buildSweetPatchQuery(id int, p models.SweetPatch) (string, []any) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if p.Name != nil {
		set("name", *p.Name)
	}
	if p.Category != nil {
		set("category", *p.Category)
	}
	if p.Price != nil {
		set("price", *p.Price)
	}
	if p.Quantity != nil {
		set("quantity", *p.Quantity)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.ImageURL != nil {
		set("image_url", *p.ImageURL)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	q := fmt.Sprintf("UPDATE sweets SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return q, args
}

func scanSweet(row pgx.Row) (*models.Sweet, error) {
	var s models.Sweet
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity,
		&s.Description, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *InventoryStore) ListSweets(ctx context.Context, f inventory.Filter) ([]models.Sweet, error) {
	q, args := buildSweetListQuery(f)
	rows, err := st.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Sweet
	for rows.Next() {
		var s models.Sweet
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity,
			&s.Description, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (st *InventoryStore) GetSweet(ctx context.Context, id int) (*models.Sweet, error) {
	return scanSweet(st.pool.QueryRow(ctx,
		`SELECT `+sweetColumns+` FROM sweets WHERE id = $1`, id))
}

func (st *InventoryStore) CreateSweet(ctx context.Context, s *models.Sweet) error {
	if err := inventory.ValidateNewSweet(s); err != nil {
		return err
	}
	return st.pool.QueryRow(ctx, `
		INSERT INTO sweets (name, category, price, quantity, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		s.Name, s.Category, s.Price, s.Quantity, s.Description, s.ImageURL,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (st *InventoryStore) UpdateSweet(ctx context.Context, id int, patch models.SweetPatch) error {
	if err := inventory.ValidatePatch(patch); err != nil {
		return err
	}
	q, args := buildSweetPatchQuery(id, patch)
	ct, err := st.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (st *InventoryStore) DeleteSweet(ctx context.Context, id int) error {
	ct, err := st.pool.Exec(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Purchase runs the whole read-check-decrement-record sequence inside one
// transaction. The row lock taken by FOR UPDATE serializes concurrent
// purchases of the same sweet; the conditional decrement is a second guard so
// stock can never go below zero even if the lock is ever bypassed. Any
// failure rolls the whole thing back via the deferred Rollback.
func (st *InventoryStore) Purchase(ctx context.Context, sweetID, quantity, userID int) (*models.Order, error) {
	if err := inventory.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	tx, err := st.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		name  string
		price float64
		stock int
	)
	err = tx.QueryRow(ctx,
		`SELECT name, price, quantity FROM sweets WHERE id = $1 FOR UPDATE`, sweetID,
	).Scan(&name, &price, &stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if stock < quantity {
		return nil, models.ErrInsufficientStock
	}

	ct, err := tx.Exec(ctx, `
		UPDATE sweets SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2`, sweetID, quantity)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, models.ErrInsufficientStock
	}

	order := models.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		Total:  price * float64(quantity),
		Status: models.OrderStatusPending,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, total, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		order.ID, order.UserID, order.Total, order.Status,
	).Scan(&order.CreatedAt)
	if err != nil {
		return nil, err
	}

	item := models.OrderItem{
		OrderID:   order.ID,
		SweetID:   sweetID,
		SweetName: name,
		Quantity:  quantity,
		Price:     price,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO order_items (order_id, sweet_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		item.OrderID, item.SweetID, item.Quantity, item.Price,
	).Scan(&item.ID)
	if err != nil {
		return nil, err
	}
	order.Items = []models.OrderItem{item}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &order, nil
}

func (st *InventoryStore) Restock(ctx context.Context, sweetID, quantity int) error {
	if err := inventory.ValidateQuantity(quantity); err != nil {
		return err
	}
	ct, err := st.pool.Exec(ctx, `
		UPDATE sweets SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1`, sweetID, quantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (st *InventoryStore) ListOrders(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := st.pool.Query(ctx, `
		SELECT id, user_id, total, status, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Order
	ids := make([]string, 0)
	byID := make(map[string]int)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		byID[o.ID] = len(out)
		ids = append(ids, o.ID)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	items, err := st.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		i := byID[it.OrderID]
		out[i].Items = append(out[i].Items, it)
	}
	return out, nil
}

func (st *InventoryStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := st.pool.QueryRow(ctx, `
		SELECT id, user_id, total, status, created_at
		FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	o.Items, err = st.orderItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// orderItems loads the lines for a set of orders. The sweet join is COALESCEd
// because a sweet may have been deleted after the purchase; the snapshot on
// the line itself is authoritative.
func (st *InventoryStore) orderItems(ctx context.Context, orderIDs []string) ([]models.OrderItem, error) {
	rows, err := st.pool.Query(ctx, `
		SELECT i.id, i.order_id, i.sweet_id, COALESCE(s.name, ''), i.quantity, i.price
		FROM order_items i
		LEFT JOIN sweets s ON s.id = i.sweet_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.SweetID, &it.SweetName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
