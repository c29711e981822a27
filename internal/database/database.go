package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bridges/internal/bridge"
	"bridges/internal/config"
	"bridges/internal/types"

	_ "github.com/sijms/go-ora/v2"
	_ "modernc.org/sqlite"
)

const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// dialect captures the few places where Oracle and SQLite disagree.
type dialect struct {
	name   string
	bind   func(n int) string
	tables []string
	// exists reports whether a CREATE TABLE error means the table is already there.
	exists func(err error) bool
}

var oracle = dialect{
	name: "oracle",
	bind: func(n int) string { return ":" + strconv.Itoa(n) },
	tables: []string{
		`CREATE TABLE BRIDGES (
			ID NUMBER(10) PRIMARY KEY,
			NAME VARCHAR2(200),
			HIGHWAY VARCHAR2(32),
			LATITUDE NUMBER,
			LONGITUDE NUMBER,
			YEAR_BUILT VARCHAR2(8),
			LAST_MAJOR_REHAB VARCHAR2(8),
			LAST_MINOR_REHAB VARCHAR2(8),
			SPAN_COUNT NUMBER(10),
			SPAN_LENGTHS VARCHAR2(4000),
			TOTAL_LENGTH NUMBER,
			LAST_INSPECTED VARCHAR2(10),
			BCI_HISTORY VARCHAR2(4000)
		)`,
		`CREATE TABLE INSPECTIONS (
			ID VARCHAR2(36) PRIMARY KEY,
			BRIDGE_ID NUMBER(10) NOT NULL,
			INSPECTED VARCHAR2(10),
			BCI NUMBER,
			RECORDED_AT VARCHAR2(32)
		)`,
	},
	// ORA-00955: name is already used by an existing object
	exists: func(err error) bool { return strings.Contains(err.Error(), "ORA-00955") },
}

var sqlite = dialect{
	name: "sqlite",
	bind: func(int) string { return "?" },
	tables: []string{
		`CREATE TABLE IF NOT EXISTS BRIDGES (
			ID INTEGER PRIMARY KEY,
			NAME TEXT,
			HIGHWAY TEXT,
			LATITUDE REAL,
			LONGITUDE REAL,
			YEAR_BUILT TEXT,
			LAST_MAJOR_REHAB TEXT,
			LAST_MINOR_REHAB TEXT,
			SPAN_COUNT INTEGER,
			SPAN_LENGTHS TEXT,
			TOTAL_LENGTH REAL,
			LAST_INSPECTED TEXT,
			BCI_HISTORY TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS INSPECTIONS (
			ID TEXT PRIMARY KEY,
			BRIDGE_ID INTEGER NOT NULL,
			INSPECTED TEXT,
			BCI REAL,
			RECORDED_AT TEXT
		)`,
	},
	exists: func(error) bool { return false },
}

// Store persists bridge records and the inspection log.
type Store struct {
	db      *sql.DB
	dialect dialect
	logger  *zap.Logger
	now     func() time.Time
}

// NewStore opens and pings the database described by cfg.
func NewStore(ctx context.Context, cfg config.DBConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var d dialect
	switch cfg.Driver {
	case "oracle":
		d = oracle
	case "sqlite":
		d = sqlite
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	connStr, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	logger.Debug("connecting to database", zap.String("driver", d.name), zap.String("host", cfg.Host))

	db, err := sql.Open(d.name, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if d.name == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, dialect: d, logger: logger, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the BRIDGES and INSPECTIONS tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, ddl := range s.dialect.tables {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil && !s.dialect.exists(err) {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// binds returns "p1, p2, ..., pn" in the store's placeholder syntax.
func (s *Store) binds(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = s.dialect.bind(i + 1)
	}
	return strings.Join(parts, ", ")
}

// SaveBridges replaces every stored bridge with bridges in one transaction.
// The inspection log is left alone.
func (s *Store) SaveBridges(ctx context.Context, bridges []*types.Bridge) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM BRIDGES`); err != nil {
		return fmt.Errorf("failed to clear bridges: %w", err)
	}

	query := `INSERT INTO BRIDGES (
		ID, NAME, HIGHWAY, LATITUDE, LONGITUDE, YEAR_BUILT, LAST_MAJOR_REHAB, LAST_MINOR_REHAB,
		SPAN_COUNT, SPAN_LENGTHS, TOTAL_LENGTH, LAST_INSPECTED, BCI_HISTORY
	) VALUES (` + s.binds(13) + `)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bridges {
		_, err := stmt.ExecContext(ctx,
			b.ID, b.Name, b.Highway, b.Latitude, b.Longitude, b.YearBuilt, b.LastMajorRehab, b.LastMinorRehab,
			b.SpanCount, joinFloats(b.SpanLengths), b.TotalLength, b.LastInspected, joinFloats(b.BCIHistory),
		)
		if err != nil {
			return fmt.Errorf("failed to insert bridge %d: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bridges: %w", err)
	}
	s.logger.Info("saved bridges", zap.Int("count", len(bridges)))
	return nil
}

// LoadBridges returns every stored bridge ordered by id.
func (s *Store) LoadBridges(ctx context.Context) ([]*types.Bridge, error) {
	query := `
		SELECT
			ID, NAME, HIGHWAY, LATITUDE, LONGITUDE, YEAR_BUILT, LAST_MAJOR_REHAB, LAST_MINOR_REHAB,
			SPAN_COUNT, SPAN_LENGTHS, TOTAL_LENGTH, LAST_INSPECTED, BCI_HISTORY
		FROM BRIDGES
		ORDER BY ID
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bridges: %w", err)
	}
	defer rows.Close()

	bridges := []*types.Bridge{}
	for rows.Next() {
		// Oracle stores empty strings as NULL.
		var name, highway, built, major, minor, spans, inspected, history sql.NullString
		b := &types.Bridge{}
		err := rows.Scan(
			&b.ID, &name, &highway, &b.Latitude, &b.Longitude, &built, &major, &minor,
			&b.SpanCount, &spans, &b.TotalLength, &inspected, &history,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bridge: %w", err)
		}
		b.Name, b.Highway = name.String, highway.String
		b.YearBuilt, b.LastMajorRehab, b.LastMinorRehab = built.String, major.String, minor.String
		b.LastInspected = inspected.String
		if b.SpanLengths, err = splitFloats(spans.String); err != nil {
			return nil, fmt.Errorf("bridge %d span lengths: %w", b.ID, err)
		}
		if b.BCIHistory, err = splitFloats(history.String); err != nil {
			return nil, fmt.Errorf("bridge %d bci history: %w", b.ID, err)
		}
		bridges = append(bridges, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bridges: %w", err)
	}

	return bridges, nil
}

// RecordInspection stamps each stored bridge in ids with date, prepends bci
// to its history and appends one row per bridge to the inspection log.
// Unknown ids are skipped. It returns how many bridges were updated.
func (s *Store) RecordInspection(ctx context.Context, ids []int, date string, bci float64) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selectHistory := `SELECT BCI_HISTORY FROM BRIDGES WHERE ID = ` + s.dialect.bind(1)
	update := `UPDATE BRIDGES SET LAST_INSPECTED = ` + s.dialect.bind(1) +
		`, BCI_HISTORY = ` + s.dialect.bind(2) + ` WHERE ID = ` + s.dialect.bind(3)
	insert := `INSERT INTO INSPECTIONS (ID, BRIDGE_ID, INSPECTED, BCI, RECORDED_AT) VALUES (` + s.binds(5) + `)`

	recordedAt := s.now().UTC().Format(timestampLayout)
	updated := 0
	for _, id := range uniqueIDs(ids) {
		var history sql.NullString
		err := tx.QueryRowContext(ctx, selectHistory, id).Scan(&history)
		if err == sql.ErrNoRows {
			s.logger.Debug("inspection for unknown bridge", zap.Int("id", id))
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to query bridge %d: %w", id, err)
		}

		joined := joinFloats([]float64{bci})
		if history.String != "" {
			joined += ";" + history.String
		}
		if _, err := tx.ExecContext(ctx, update, date, joined, id); err != nil {
			return 0, fmt.Errorf("failed to update bridge %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, insert, uuid.NewString(), id, date, bci, recordedAt); err != nil {
			return 0, fmt.Errorf("failed to log inspection of bridge %d: %w", id, err)
		}
		updated++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit inspection: %w", err)
	}
	s.logger.Info("recorded inspection", zap.Int("bridges", updated), zap.String("date", date), zap.Float64("bci", bci))
	return updated, nil
}

// RecordRehab sets the major or minor rehab year of a stored bridge from
// the last four characters of date. It reports whether the bridge exists.
func (s *Store) RecordRehab(ctx context.Context, id int, date string, major bool) (bool, error) {
	column := "LAST_MINOR_REHAB"
	if major {
		column = "LAST_MAJOR_REHAB"
	}
	update := `UPDATE BRIDGES SET ` + column + ` = ` + s.dialect.bind(1) + ` WHERE ID = ` + s.dialect.bind(2)

	res, err := s.db.ExecContext(ctx, update, bridge.RehabYear(date), id)
	if err != nil {
		return false, fmt.Errorf("failed to update bridge %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update bridge %d: %w", id, err)
	}
	if n == 0 {
		s.logger.Debug("rehab for unknown bridge", zap.Int("id", id))
		return false, nil
	}
	s.logger.Info("recorded rehab", zap.Int("id", id), zap.String("column", column), zap.String("date", date))
	return true, nil
}

// Inspections returns the logged inspections of one bridge, oldest first.
func (s *Store) Inspections(ctx context.Context, bridgeID int) ([]types.Inspection, error) {
	query := `
		SELECT ID, BRIDGE_ID, INSPECTED, BCI, RECORDED_AT
		FROM INSPECTIONS
		WHERE BRIDGE_ID = ` + s.dialect.bind(1) + `
		ORDER BY RECORDED_AT, ID
	`

	rows, err := s.db.QueryContext(ctx, query, bridgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspections: %w", err)
	}
	defer rows.Close()

	inspections := []types.Inspection{}
	for rows.Next() {
		var in types.Inspection
		var date, recordedAt sql.NullString
		if err := rows.Scan(&in.ID, &in.BridgeID, &date, &in.BCI, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}
		in.Date = date.String
		if recordedAt.Valid {
			in.RecordedAt, err = time.Parse(timestampLayout, recordedAt.String)
			if err != nil {
				return nil, fmt.Errorf("inspection %s timestamp: %w", in.ID, err)
			}
		}
		inspections = append(inspections, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inspections: %w", err)
	}

	return inspections, nil
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}

func splitFloats(s string) ([]float64, error) {
	values := []float64{}
	for _, part := range strings.Split(s, ";") {
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	result := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
