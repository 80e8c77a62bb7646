package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nulzo/autorouter/internal/store"
	"github.com/nulzo/autorouter/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db       *sqlx.DB // Required for starting new transactions
	executor DB       // Used for actual queries (can be *sqlx.DB or *sqlx.Tx)
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	// Create a repository instance that uses the transaction
	txRepo := &SqliteRepository{
		db:       r.db, // Keep the original DB handle
		executor: tx,
	}

	if err := fn(txRepo); err != nil {
		// attempt rollback, but prioritize original error
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *SqliteRepository) APIKeys() store.APIKeyRepository {
	return &apiKeyRepo{db: r.executor}
}

func (r *SqliteRepository) Routing() store.RoutingRepository {
	return &routingRepo{db: r.executor}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

type apiKeyRepo struct {
	db DB
}

func (r *apiKeyRepo) GetByHash(ctx context.Context, hash string) (*model.APIKey, error) {
	var key model.APIKey
	// active check is part of the query for speed
	query := `SELECT * FROM api_keys WHERE key_hash = ? AND is_active = 1`
	if err := r.db.GetContext(ctx, &key, query, hash); err != nil {
		return nil, notFound(err)
	}
	return &key, nil
}

func (r *apiKeyRepo) Create(ctx context.Context, key *model.APIKey) error {
	now := time.Now().UTC()
	if key.CreatedAt.IsZero() {
		key.CreatedAt = now
	}
	key.UpdatedAt = now

	query := `
	INSERT INTO api_keys (id, name, key_hash, key_prefix, is_active, created_at, updated_at)
	VALUES (:id, :name, :key_hash, :key_prefix, :is_active, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, key)
	return err
}

func (r *apiKeyRepo) UpdateUsage(ctx context.Context, id string) error {
	query := `UPDATE api_keys SET last_used_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	return err
}

func (r *apiKeyRepo) Revoke(ctx context.Context, id string) error {
	query := `UPDATE api_keys SET is_active = 0, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type routingRepo struct {
	db DB
}

func (r *routingRepo) Log(ctx context.Context, log *model.RoutingLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO routing_logs (
		id, api_key_id, app_name, prompt_chars,
		category, selected_model_id, confidence,
		classifier_model, prompt_tokens, completion_tokens,
		latency_ms, status_code, error_kind,
		ip_address, user_agent, created_at
	) VALUES (
		:id, :api_key_id, :app_name, :prompt_chars,
		:category, :selected_model_id, :confidence,
		:classifier_model, :prompt_tokens, :completion_tokens,
		:latency_ms, :status_code, :error_kind,
		:ip_address, :user_agent, :created_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, log)
	return err
}

func (r *routingRepo) GetByID(ctx context.Context, id string) (*model.RoutingLog, error) {
	var log model.RoutingLog
	if err := r.db.GetContext(ctx, &log, `SELECT * FROM routing_logs WHERE id = ?`, id); err != nil {
		return nil, notFound(err)
	}
	return &log, nil
}

// since is the SQLite date modifier for the window, e.g. '-7 days'.
func since(days int) string {
	return fmt.Sprintf("-%d days", days)
}

func (r *routingRepo) GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	stats := []model.DailyStats{}
	query := `
		SELECT
			DATE(created_at) AS date,
			COUNT(*) AS total_requests,
			COALESCE(SUM(CASE WHEN status_code >= 400 THEN 1 ELSE 0 END), 0) AS error_requests,
			COALESCE(SUM(prompt_tokens), 0) AS prompt_tokens,
			COALESCE(SUM(completion_tokens), 0) AS completion_tokens,
			COALESCE(AVG(latency_ms), 0) AS avg_latency
		FROM routing_logs
		WHERE created_at >= DATE('now', ?)
		GROUP BY date
		ORDER BY date DESC
	`
	err := r.db.SelectContext(ctx, &stats, query, since(days))
	return stats, err
}

func (r *routingRepo) GetCategoryStats(ctx context.Context, days int) ([]model.CategoryStats, error) {
	stats := []model.CategoryStats{}
	query := `
		SELECT
			category,
			COUNT(*) AS total_requests,
			COALESCE(AVG(confidence), 0) AS avg_confidence
		FROM routing_logs
		WHERE created_at >= DATE('now', ?) AND category != '' AND status_code < 400
		GROUP BY category
		ORDER BY total_requests DESC, category ASC
	`
	err := r.db.SelectContext(ctx, &stats, query, since(days))
	return stats, err
}

func (r *routingRepo) GetTopModels(ctx context.Context, days, limit int) ([]model.ModelStats, error) {
	stats := []model.ModelStats{}
	query := `
		SELECT
			selected_model_id AS model_id,
			COUNT(*) AS total_requests
		FROM routing_logs
		WHERE created_at >= DATE('now', ?) AND selected_model_id != ''
		GROUP BY selected_model_id
		ORDER BY total_requests DESC, model_id ASC
		LIMIT ?
	`
	err := r.db.SelectContext(ctx, &stats, query, since(days), limit)
	return stats, err
}
