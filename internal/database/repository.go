package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyDecided = errors.New("order already decided")
)

const listingColumns = `
	id, created_at, owner_id, owner_name, owner_phone, listing_title, room_type,
	monthly_rent, security_deposit, state, city, near_college,
	room_picture, kitchen_picture, bathroom_picture,
	wifi, power_backup, geyser, tv, refrigerator, washing_machine, cctv, security_guard,
	furnished, ac, attached_bathroom, gender_pref, available_from, rules,
	latitude, longitude
`

const orderColumns = `
	id, created_at, room_id, room_title, dealer_id, student_id, student_name,
	student_email, rent, deposit, status, move_in_date, message
`

// Repository handles all database operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanListing(row pgx.Row) (*ListingRow, error) {
	var l ListingRow
	err := row.Scan(
		&l.ID, &l.CreatedAt, &l.OwnerID, &l.OwnerName, &l.OwnerPhone, &l.ListingTitle, &l.RoomType,
		&l.MonthlyRent, &l.SecurityDeposit, &l.State, &l.City, &l.NearCollege,
		&l.RoomPicture, &l.KitchenPicture, &l.BathroomPicture,
		&l.WiFi, &l.PowerBackup, &l.Geyser, &l.TV, &l.Refrigerator, &l.WashingMachine, &l.CCTV, &l.SecurityGuard,
		&l.Furnished, &l.AC, &l.AttachedBath, &l.GenderPref, &l.AvailableFrom, &l.Rules,
		&l.Latitude, &l.Longitude,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanOrder(row pgx.Row) (*OrderRow, error) {
	var o OrderRow
	err := row.Scan(
		&o.ID, &o.CreatedAt, &o.RoomID, &o.RoomTitle, &o.DealerID, &o.StudentID, &o.StudentName,
		&o.StudentEmail, &o.Rent, &o.Deposit, &o.Status, &o.MoveInDate, &o.Message,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// --- Listing Operations ---

// ListListings returns all listings, newest first
func (r *Repository) ListListings(ctx context.Context) ([]ListingRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []ListingRow
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listings: %w", err)
	}

	return listings, nil
}

// GetListing returns a listing by ID
func (r *Repository) GetListing(ctx context.Context, id uuid.UUID) (*ListingRow, error) {
	l, err := scanListing(r.pool.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return l, nil
}

// InsertListing stores a new listing and returns the stored row
func (r *Repository) InsertListing(ctx context.Context, l *ListingRow) (*ListingRow, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	query := `
		INSERT INTO listings (
			id, owner_id, owner_name, owner_phone, listing_title, room_type,
			monthly_rent, security_deposit, state, city, near_college,
			room_picture, kitchen_picture, bathroom_picture,
			wifi, power_backup, geyser, tv, refrigerator, washing_machine, cctv, security_guard,
			furnished, ac, attached_bathroom, gender_pref, available_from, rules,
			latitude, longitude
		)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22,
			$23, $24, $25, $26, $27, $28,
			$29, $30
		)
		RETURNING ` + listingColumns

	stored, err := scanListing(r.pool.QueryRow(ctx, query,
		l.ID, l.OwnerID, l.OwnerName, l.OwnerPhone, l.ListingTitle, l.RoomType,
		l.MonthlyRent, l.SecurityDeposit, l.State, l.City, l.NearCollege,
		l.RoomPicture, l.KitchenPicture, l.BathroomPicture,
		l.WiFi, l.PowerBackup, l.Geyser, l.TV, l.Refrigerator, l.WashingMachine, l.CCTV, l.SecurityGuard,
		l.Furnished, l.AC, l.AttachedBath, l.GenderPref, l.AvailableFrom, l.Rules,
		l.Latitude, l.Longitude,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	return stored, nil
}

// --- Order Operations ---

// InsertOrder stores a new order and returns the stored row
func (r *Repository) InsertOrder(ctx context.Context, o *OrderRow) (*OrderRow, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	query := `
		INSERT INTO orders (
			id, room_id, room_title, dealer_id, student_id, student_name,
			student_email, rent, deposit, status, move_in_date, message
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + orderColumns

	stored, err := scanOrder(r.pool.QueryRow(ctx, query,
		o.ID, o.RoomID, o.RoomTitle, o.DealerID, o.StudentID, o.StudentName,
		o.StudentEmail, o.Rent, o.Deposit, o.Status, o.MoveInDate, o.Message,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	return stored, nil
}

// GetOrder returns an order by ID
func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*OrderRow, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

// UpdateOrderStatus moves a pending order to status and returns the stored
// row. Orders that are no longer pending are left untouched and reported
// with ErrAlreadyDecided.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*OrderRow, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `
		UPDATE orders SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING `+orderColumns,
		status, id, models.OrderStatusPending,
	))
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	// Nothing updated: either the order is missing or it was already decided
	if _, err := r.GetOrder(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrAlreadyDecided
}

func (r *Repository) listOrders(ctx context.Context, where string, args ...any) ([]OrderRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []OrderRow
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	return orders, nil
}

// ListOrdersByDealer returns orders on the dealer's listings, newest first
func (r *Repository) ListOrdersByDealer(ctx context.Context, dealerID uuid.UUID) ([]OrderRow, error) {
	return r.listOrders(ctx, "WHERE dealer_id = $1", dealerID)
}

// ListOrdersByStudent returns the student's orders, newest first
func (r *Repository) ListOrdersByStudent(ctx context.Context, studentID uuid.UUID) ([]OrderRow, error) {
	return r.listOrders(ctx, "WHERE student_id = $1", studentID)
}
