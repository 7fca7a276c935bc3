package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/ruralpay/cashcard/internal/models"
)

// PostgresStore is the cash_card table behind database/sql and lib/pq.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByIDAndOwner(ctx context.Context, id int64, owner string) (*models.CashCard, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, amount, owner FROM cash_card WHERE id = $1 AND owner = $2`, id, owner)
	return scanCard(row)
}

func (s *PostgresStore) FindByOwner(ctx context.Context, owner string, page models.PageRequest) ([]models.CashCard, error) {
	query := `SELECT id, amount, owner FROM cash_card WHERE owner = $1 ORDER BY ` +
		orderBy(page.Sort) + ` LIMIT $2 OFFSET $3`

	rows, err := s.db.QueryContext(ctx, query, owner, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("query cash cards: %w", err)
	}
	defer rows.Close()

	cards := make([]models.CashCard, 0, page.Size)
	for rows.Next() {
		var c models.CashCard
		if err := rows.Scan(&c.ID, &c.Amount, &c.Owner); err != nil {
			return nil, fmt.Errorf("scan cash card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, card models.CashCard) (*models.CashCard, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO cash_card (amount, owner) VALUES ($1, $2) RETURNING id`,
		card.Amount, card.Owner).Scan(&card.ID)
	if err != nil {
		return nil, fmt.Errorf("insert cash card: %w", err)
	}
	return &card, nil
}

func (s *PostgresStore) UpdateOwned(ctx context.Context, card models.CashCard) error {
	return s.withOwnedRow(ctx, card.ID, card.Owner, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE cash_card SET amount = $1 WHERE id = $2 AND owner = $3`,
			card.Amount, card.ID, card.Owner)
		return err
	})
}

func (s *PostgresStore) DeleteOwned(ctx context.Context, id int64, owner string) error {
	return s.withOwnedRow(ctx, id, owner, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM cash_card WHERE id = $1`, id)
		return err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withOwnedRow locks the (id, owner) row and runs fn in the same transaction.
// ErrNotFound is returned without calling fn when no such row exists.
func (s *PostgresStore) withOwnedRow(ctx context.Context, id int64, owner string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var locked int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM cash_card WHERE id = $1 AND owner = $2 FOR UPDATE`, id, owner).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func scanCard(row *sql.Row) (*models.CashCard, error) {
	var c models.CashCard
	if err := row.Scan(&c.ID, &c.Amount, &c.Owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// orderBy renders an ORDER BY list. Fields are whitelisted before they reach
// the query; anything unknown is skipped.
func orderBy(orders []models.SortOrder) string {
	parts := make([]string, 0, len(orders)+1)
	hasID := false
	for _, o := range orders {
		switch o.Field {
		case models.SortByID, models.SortByAmount, models.SortByOwner:
		default:
			continue
		}
		dir := "ASC"
		if o.Descending {
			dir = "DESC"
		}
		parts = append(parts, o.Field+" "+dir)
		if o.Field == models.SortByID {
			hasID = true
		}
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", ")
}

// PostgresCredentialStore reads logins from the users table.
type PostgresCredentialStore struct {
	db *sql.DB
}

func NewPostgresCredentialStore(db *sql.DB) *PostgresCredentialStore {
	return &PostgresCredentialStore{db: db}
}

func (s *PostgresCredentialStore) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	var c models.Credential
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password_hash, roles FROM users WHERE username = $1`, username).
		Scan(&c.Username, &c.PasswordHash, pq.Array(&c.Roles))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new login. ErrConflict is returned when the username is taken.
func (s *PostgresCredentialStore) Create(ctx context.Context, c models.Credential) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, roles) VALUES ($1, $2, $3)`,
		c.Username, c.PasswordHash, pq.Array(c.Roles))
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", c.Username, ErrConflict)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pe *pq.Error
	return errors.As(err, &pe) && pe.Code == "23505"
}
