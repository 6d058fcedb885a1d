package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"survey-insights-go/internal/config"
	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/types"
)

// Table holds one row per submitted survey.
const Table = "user_response"

var (
	ErrUnsupportedDialect = errors.New("unsupported database type")
	ErrInvalidRecord      = errors.New("invalid record")
)

// Dialect names accepted in DATABASE_TYPE.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
	MySQL    = "mysql"
)

var drivers = map[string]string{
	SQLite:   "sqlite",
	Postgres: "postgres",
	MySQL:    "mysql",
}

var idColumns = map[string]string{
	SQLite:   "id INTEGER PRIMARY KEY AUTOINCREMENT",
	Postgres: "id SERIAL PRIMARY KEY",
	MySQL:    "id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY",
}

// Store reads and writes survey responses in a SQL database.
type Store struct {
	db      *sql.DB
	dialect string
	log     *logger.Logger
}

// Open connects to the database named by cfg, retrying the first ping with
// exponential backoff until cfg.DBConnectTimeout elapses.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (*Store, error) {
	dialect := strings.ToLower(cfg.DatabaseType)
	driver, ok := drivers[dialect]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, cfg.DatabaseType)
	}

	db, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == SQLite {
		// one writer at a time; busy_timeout covers readers
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	s := &Store{db: db, dialect: dialect, log: log.Component("store")}

	var b backoff.BackOff = &backoff.StopBackOff{}
	if cfg.DBConnectTimeout > 0 {
		eb := backoff.NewExponentialBackOff()
		eb.MaxElapsedTime = cfg.DBConnectTimeout
		b = eb
	}
	op := func() error {
		return db.PingContext(ctx)
	}
	notify := func(err error, wait time.Duration) {
		s.log.WithError(err).WithField("retry_in", wait.String()).Warn("database not reachable")
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	s.log.WithField("dialect", dialect).Info("database connected")
	return s, nil
}

// NewFromDB wraps an open handle. Used by tests and callers that manage the
// pool themselves.
func NewFromDB(db *sql.DB, dialect string, log *logger.Logger) (*Store, error) {
	if _, ok := drivers[dialect]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
	return &Store{db: db, dialect: dialect, log: log.Component("store")}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Dialect() string {
	return s.dialect
}

// CreateSchema creates the response table if it does not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	cols := []string{idColumns[s.dialect], "userid TEXT", "useremail TEXT"}
	for _, c := range questionColumns() {
		cols = append(cols, c+" TEXT")
	}
	q := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", Table, strings.Join(cols, ",\n\t"))
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// FetchAll returns every stored response ordered by id. NULL answers read
// as empty strings.
func (s *Store) FetchAll(ctx context.Context) ([]types.AnswerRecord, error) {
	cols := append([]string{"id", "userid", "useremail"}, questionColumns()...)
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(cols, ", "), Table)

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []types.AnswerRecord
	for rows.Next() {
		var (
			rec       types.AnswerRecord
			userID    sql.NullString
			userEmail sql.NullString
			answers   [types.QuestionCount]sql.NullString
		)
		dest := []any{&rec.ID, &userID, &userEmail}
		for i := range answers {
			dest = append(dest, &answers[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		rec.UserID = userID.String
		rec.UserEmail = userEmail.String
		for i, a := range answers {
			rec.Answers[i] = a.String
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	return out, nil
}

// Insert stores rec and returns its new id. rec.ID is ignored.
func (s *Store) Insert(ctx context.Context, rec types.AnswerRecord) (int64, error) {
	if strings.TrimSpace(rec.UserID) == "" && strings.TrimSpace(rec.UserEmail) == "" {
		return 0, fmt.Errorf("%w: userid or useremail required", ErrInvalidRecord)
	}

	cols := append([]string{"userid", "useremail"}, questionColumns()...)
	args := []any{rec.UserID, rec.UserEmail}
	for _, a := range rec.Answers {
		args = append(args, a)
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", Table, strings.Join(cols, ", "), marks)

	if s.dialect == Postgres {
		var id int64
		if err := s.db.QueryRowContext(ctx, rebind(q)+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert response: %w", err)
		}
		return id, nil
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert response: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert response id: %w", err)
	}
	return id, nil
}

func questionColumns() []string {
	cols := make([]string, types.QuestionCount)
	for i := range cols {
		cols[i] = "question" + strconv.Itoa(i+1)
	}
	return cols
}

// rebind turns ? placeholders into $1..$n.
func rebind(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
