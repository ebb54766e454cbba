package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradercheck/tradercheck/internal/domain/model"
	"github.com/tradercheck/tradercheck/internal/domain/port"
	"github.com/tradercheck/tradercheck/internal/domain/valueobject"
	pgutil "github.com/tradercheck/tradercheck/pkg/postgres"
)

var _ port.SearchLogRepository = (*SearchLogRepo)(nil)

// SearchLogRepo implements SearchLogRepository using PostgreSQL. Rows are
// only ever inserted.
type SearchLogRepo struct {
	db pgutil.Querier
}

// NewSearchLogRepo creates a new SearchLogRepo.
func NewSearchLogRepo(db pgutil.Querier) *SearchLogRepo {
	return &SearchLogRepo{db: db}
}

func (r *SearchLogRepo) Append(ctx context.Context, entry *model.SearchLog) error {
	if entry == nil {
		return fmt.Errorf("%w: nil search log entry", model.ErrValidation)
	}

	var categoryID *uuid.UUID
	if id := entry.CategoryID(); id != uuid.Nil {
		categoryID = &id
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO search_logs (id, broker_id, broker_name, category_id, field, mode, match_mode,
			search_value, found, score, risk_level, searched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, entry.ID(), entry.BrokerID(), entry.BrokerName(), categoryID,
		entry.Field().String(), entry.Mode().String(), entry.MatchMode().String(),
		entry.SearchValue(), entry.Found(), entry.Score(), entry.RiskLevel().String(), entry.Timestamp())
	if err != nil {
		return fmt.Errorf("insert search log: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (r *SearchLogRepo) List(ctx context.Context, limit int) ([]*model.SearchLog, error) {
	query := `
		SELECT id, broker_id, broker_name, category_id, field, mode, match_mode,
			search_value, found, score, risk_level, searched_at
		FROM search_logs
		ORDER BY searched_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query search logs: %w", err)
	}
	defer rows.Close()

	out := make([]*model.SearchLog, 0)
	for rows.Next() {
		entry, err := scanSearchLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search logs: %w", err)
	}
	return out, nil
}

func (r *SearchLogRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM search_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count search logs: %w", err)
	}
	return n, nil
}

func scanSearchLog(row pgx.Row) (*model.SearchLog, error) {
	var (
		id, brokerID                   uuid.UUID
		categoryID                     *uuid.UUID
		brokerName, field, mode, match string
		searchValue, riskLevel         string
		found                          bool
		score                          int
		searchedAt                     time.Time
	)
	if err := row.Scan(&id, &brokerID, &brokerName, &categoryID, &field, &mode, &match,
		&searchValue, &found, &score, &riskLevel, &searchedAt); err != nil {
		return nil, fmt.Errorf("scan search log: %w", err)
	}

	p := model.SearchLogParams{
		BrokerID:    brokerID,
		BrokerName:  brokerName,
		SearchValue: searchValue,
		Found:       found,
		Score:       score,
		Timestamp:   searchedAt,
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}

	var err error
	if p.Field, err = valueobject.SearchFieldFromString(field); err != nil {
		return nil, fmt.Errorf("search log %s: %w", id, err)
	}
	if p.Mode, err = valueobject.SearchModeFromString(mode); err != nil {
		return nil, fmt.Errorf("search log %s: %w", id, err)
	}
	if p.MatchMode, err = valueobject.MatchModeFromString(match); err != nil {
		return nil, fmt.Errorf("search log %s: %w", id, err)
	}
	if p.RiskLevel, err = valueobject.RiskLevelFromString(riskLevel); err != nil {
		return nil, fmt.Errorf("search log %s: %w", id, err)
	}

	return model.ReconstructSearchLog(id, p), nil
}

// NewRepositories builds every store port over db, which is either the
// pool or a pgx.Tx when several writes must commit together.
func NewRepositories(db pgutil.Querier) port.Repositories {
	return port.Repositories{
		Records:         NewRecordRepo(db),
		Categories:      NewCategoryRepo(db),
		AllegationTypes: NewAllegationTypeRepo(db),
		Brokers:         NewBrokerRepo(db),
		SearchLogs:      NewSearchLogRepo(db),
	}
}

// SeedFunc writes fixture data through a set of repositories.
type SeedFunc func(ctx context.Context, repos port.Repositories) error

// SeedInTx runs seed inside one transaction so a partial seed never commits.
func SeedInTx(ctx context.Context, pool *pgxpool.Pool, seed SeedFunc) error {
	return pgutil.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		return seed(ctx, NewRepositories(tx))
	})
}
