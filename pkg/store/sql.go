package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/valentinpelus/signal/pkg/analysis"
	"github.com/valentinpelus/signal/pkg/feedback"
	"github.com/valentinpelus/signal/pkg/types"
)

// Dialect selects placeholder syntax for a SQL backend
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS feedback_items (
	id            TEXT PRIMARY KEY,
	position      BIGINT NOT NULL,
	source        TEXT NOT NULL,
	message       TEXT NOT NULL,
	customer_type TEXT NOT NULL,
	received_at   BIGINT NOT NULL,
	theme         TEXT NOT NULL,
	sentiment     TEXT NOT NULL,
	urgency       INTEGER NOT NULL,
	impact        TEXT NOT NULL,
	summary       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS feedback_items_position_idx ON feedback_items (position);
`

// SQLStore keeps the collection in a feedback_items table
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
}

// OpenPostgres connects to databaseURL and creates the schema if needed
func OpenPostgres(ctx context.Context, databaseURL string, logger *zap.Logger) (*SQLStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}
	return open(ctx, DialectPostgres, "postgres", databaseURL, logger)
}

// OpenSQLite opens the database file at path and creates the schema if needed
func OpenSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	s, err := open(ctx, DialectSQLite, "sqlite", path, logger)
	if err != nil {
		return nil, err
	}
	// a single connection serializes writers
	s.db.SetMaxOpenConns(1)
	return s, nil
}

func open(ctx context.Context, dialect Dialect, driver, dsn string, logger *zap.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info("Opened feedback database", zap.String("dialect", string(dialect)))
	return &SQLStore{db: db, dialect: dialect, logger: logger}, nil
}

// Load returns every valid row ordered by position
func (s *SQLStore) Load(ctx context.Context) ([]feedback.Entry, error) {
	query := `
		SELECT id, position, source, message, customer_type, received_at,
			theme, sentiment, urgency, impact, summary
		FROM feedback_items
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var entries []feedback.Entry
	for rows.Next() {
		var (
			item       types.FeedbackItem
			position   int64
			receivedAt int64
			theme      string
			sentiment  string
			impact     string
		)
		if err := rows.Scan(
			&item.ID,
			&position,
			&item.Source,
			&item.Message,
			&item.CustomerType,
			&receivedAt,
			&theme,
			&sentiment,
			&item.Analysis.Urgency,
			&impact,
			&item.Analysis.Summary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		item.Timestamp = time.Unix(0, receivedAt).UTC()
		item.Analysis.Theme = analysis.Theme(theme)
		item.Analysis.Sentiment = analysis.Sentiment(sentiment)
		item.Analysis.Impact = analysis.Impact(impact)

		r, err := feedback.Restore(item)
		if err != nil {
			s.logger.Warn("Skipping invalid feedback row",
				zap.String("id", item.ID),
				zap.Error(err))
			continue
		}
		entries = append(entries, feedback.Entry{Position: position, Record: r})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}

	return entries, nil
}

// Save inserts an entry. Records are immutable, so an existing id is left as is.
func (s *SQLStore) Save(ctx context.Context, entry feedback.Entry) error {
	query := `
		INSERT INTO feedback_items (
			id, position, source, message, customer_type, received_at,
			theme, sentiment, urgency, impact, summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`

	r := entry.Record
	a := r.Analysis()
	_, err := s.db.ExecContext(ctx, s.rebind(query),
		r.ID(),
		entry.Position,
		r.Source(),
		r.Message(),
		r.CustomerType(),
		r.Timestamp().UTC().UnixNano(),
		string(a.Theme),
		string(a.Sentiment),
		a.Urgency,
		string(a.Impact),
		a.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}
	return nil
}

// Delete removes a row by id
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM feedback_items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return feedback.ErrNotFound
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rebind rewrites ? placeholders to $N for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
