package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"PropSight/internal/domain/models"
	domrepo "PropSight/internal/domain/repository"
	pkgch "PropSight/pkg/clickhouse"
	applogger "PropSight/pkg/logger"
)

const snapshotsTable = "propsight.scored_listings"

var snapshotSchema = []string{
	`CREATE DATABASE IF NOT EXISTS propsight`,
	`CREATE TABLE IF NOT EXISTS propsight.scored_listings (
        ts            DateTime64(3),
        listing_id    String,
        city          String,
        zip_code      String,
        listing_type  String,
        listing_price Float64,
        price_per_sqft Float64,
        score         Float64,
        confidence    String,
        flag          String,
        payload       String
    ) ENGINE = MergeTree()
    ORDER BY (listing_id, ts)`,
}

// CHSnapshotStore implements SnapshotStore backed by ClickHouse. Each scored
// listing is appended as a new row; reads resolve the latest snapshot per
// listing with argMax.
type CHSnapshotStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHSnapshotStore(ch *pkgch.Client) *CHSnapshotStore {
	return &CHSnapshotStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHSnapshotStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHSnapshotStore) Init(ctx context.Context) error {
	for _, stmt := range snapshotSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init snapshot schema: %w", err)
		}
	}
	return nil
}

func (s *CHSnapshotStore) Store(ctx context.Context, sl *models.ScoredListing) error {
	return s.StoreBatch(ctx, []*models.ScoredListing{sl})
}

func (s *CHSnapshotStore) StoreBatch(ctx context.Context, batch []*models.ScoredListing) error {
	if len(batch) == 0 {
		return nil
	}
	// Multi-row VALUES insert to reduce round-trips.
	const chunkSize = 1000
	for start := 0; start < len(batch); start += chunkSize {
		end := start + chunkSize
		if end > len(batch) {
			end = len(batch)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*11)
		for _, sl := range batch[start:end] {
			if sl == nil || sl.Listing.ID == "" {
				continue
			}
			payload, err := json.Marshal(sl)
			if err != nil {
				return fmt.Errorf("marshal snapshot: %w", err)
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				sl.ScoredAt,
				sl.Listing.ID,
				sl.Listing.City,
				sl.Listing.ZipCode,
				string(sl.Listing.ListingType),
				sl.Listing.ListingPrice,
				sl.Listing.PricePerSqft,
				sl.Score.Total,
				string(sl.Score.Confidence),
				string(sl.Flag),
				string(payload),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (ts, listing_id, city, zip_code, listing_type, listing_price, price_per_sqft, score, confidence, flag, payload) VALUES %s",
			snapshotsTable, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *CHSnapshotStore) Query(ctx context.Context, q domrepo.SnapshotQuery) ([]*models.ScoredListing, error) {
	start := time.Now()

	conds := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)
	if q.City != "" {
		conds = append(conds, "city = ?")
		args = append(args, q.City)
	}
	if q.ZipCode != "" {
		conds = append(conds, "zip_code = ?")
		args = append(args, q.ZipCode)
	}
	if q.Type != "" {
		conds = append(conds, "listing_type = ?")
		args = append(args, string(q.Type))
	}
	if q.Flag != "" {
		conds = append(conds, "flag = ?")
		args = append(args, string(q.Flag))
	}
	if q.MinScore > 0 {
		conds = append(conds, "score >= ?")
		args = append(args, q.MinScore)
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, q.Offset)

	query := fmt.Sprintf(`
        SELECT payload FROM (
            SELECT listing_id,
                   argMax(payload, ts)      AS payload,
                   argMax(city, ts)         AS city,
                   argMax(zip_code, ts)     AS zip_code,
                   argMax(listing_type, ts) AS listing_type,
                   argMax(flag, ts)         AS flag,
                   argMax(score, ts)        AS score
            FROM %s
            GROUP BY listing_id
        ) %s
        ORDER BY score DESC
        LIMIT ? OFFSET ?`, snapshotsTable, where)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse snapshot query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	out, err := scanSnapshots(rows)
	if err != nil {
		return nil, err
	}
	if s.l != nil {
		s.l.Debug("clickhouse snapshot query ok",
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHSnapshotStore) Latest(ctx context.Context, listingID string) (*models.ScoredListing, error) {
	q := fmt.Sprintf("SELECT payload FROM %s WHERE listing_id = ? ORDER BY ts DESC LIMIT 1", snapshotsTable)
	var payload string
	if err := s.db.QueryRowContext(ctx, q, listingID).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	var sl models.ScoredListing
	if err := json.Unmarshal([]byte(payload), &sl); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &sl, nil
}

func (s *CHSnapshotStore) Summary(ctx context.Context, city string, window time.Duration) (*models.MarketSummary, error) {
	conds := []string{"maxTs >= ?"}
	args := []interface{}{time.Now().Add(-window)}
	if city != "" {
		conds = append(conds, "city = ?")
		args = append(args, city)
	}

	q := fmt.Sprintf(`
        SELECT listing_price, price_per_sqft, score, flag, listing_type FROM (
            SELECT listing_id,
                   max(ts)                        AS maxTs,
                   argMax(city, ts)               AS city,
                   argMax(listing_price, ts)      AS listing_price,
                   argMax(price_per_sqft, ts)     AS price_per_sqft,
                   argMax(score, ts)              AS score,
                   argMax(flag, ts)               AS flag,
                   argMax(listing_type, ts)       AS listing_type
            FROM %s
            GROUP BY listing_id
        ) WHERE %s`, snapshotsTable, strings.Join(conds, " AND "))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	sum := &models.MarketSummary{
		FlagCounts: make(map[models.InvestmentFlag]int),
		TypeCounts: make(map[models.ListingType]int),
	}
	var priceTotal, ppsfTotal, scoreTotal float64
	var ppsfCount int
	for rows.Next() {
		var price, ppsf, score float64
		var flag, listingType string
		if err := rows.Scan(&price, &ppsf, &score, &flag, &listingType); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		sum.TotalListings++
		priceTotal += price
		scoreTotal += score
		if ppsf > 0 {
			ppsfTotal += ppsf
			ppsfCount++
		}
		sum.FlagCounts[models.InvestmentFlag(flag)]++
		sum.TypeCounts[models.ListingType(listingType)]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if sum.TotalListings > 0 {
		sum.AvgListingPrice = priceTotal / float64(sum.TotalListings)
		sum.AvgScore = scoreTotal / float64(sum.TotalListings)
	}
	if ppsfCount > 0 {
		sum.AvgPricePerSqft = ppsfTotal / float64(ppsfCount)
	}
	return sum, nil
}

func (s *CHSnapshotStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHSnapshotStore) Close() error {
	return nil // pool managed by pkg client
}

func scanSnapshots(rows *sql.Rows) ([]*models.ScoredListing, error) {
	out := make([]*models.ScoredListing, 0, 64)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var sl models.ScoredListing
		if err := json.Unmarshal([]byte(payload), &sl); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
		out = append(out, &sl)
	}
	return out, rows.Err()
}

var _ domrepo.SnapshotStore = (*CHSnapshotStore)(nil)
