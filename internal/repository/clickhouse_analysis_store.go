package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"SectorPulse/internal/domain/models"
	domrepo "SectorPulse/internal/domain/repository"
	pkgch "SectorPulse/pkg/clickhouse"
	applogger "SectorPulse/pkg/logger"
)

// CHAnalysisStore implements AnalysisStore backed by ClickHouse. Records are
// append-only; the full record is stored as JSON next to a few indexed
// columns, and retrieval is always by created_at descending.
type CHAnalysisStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewCHAnalysisStore creates a ClickHouse-backed analysis store.
func NewCHAnalysisStore(ch *pkgch.Client, table string) *CHAnalysisStore {
	return &CHAnalysisStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHAnalysisStore) SetLogger(l *applogger.Logger) { s.l = l }

// Save appends one record, assigning its creation timestamp. No idempotency
// key: repeated runs for the same trade date create additional records.
func (s *CHAnalysisStore) Save(ctx context.Context, record *models.AnalysisRecord) error {
	record.CreatedAt = time.Now().UTC()

	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (created_at, trade_date, sector, degraded, record) VALUES (?, ?, ?, ?, ?)",
		s.table,
	)
	degraded := uint8(0)
	if record.Analysis.Degraded {
		degraded = 1
	}
	if _, err := s.db.ExecContext(ctx, q,
		record.CreatedAt,
		record.Summary.Date,
		record.Summary.Sector,
		degraded,
		string(doc),
	); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse save_analysis error",
				applogger.String("table", s.table),
				applogger.String("sector", record.Summary.Sector),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// Latest returns up to limit records, newest first.
func (s *CHAnalysisStore) Latest(ctx context.Context, limit int) ([]models.AnalysisRecord, error) {
	start := time.Now()
	q := fmt.Sprintf("SELECT record FROM %s ORDER BY created_at DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_analyses query error",
				applogger.String("table", s.table),
				applogger.Int("limit", limit),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("latest analyses: %w", err)
	}
	defer rows.Close()

	out := make([]models.AnalysisRecord, 0, limit)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec models.AnalysisRecord
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_analyses ok",
			applogger.String("table", s.table),
			applogger.Int("limit", limit),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

// Health pings the connection pool.
func (s *CHAnalysisStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var _ domrepo.AnalysisStore = (*CHAnalysisStore)(nil)
