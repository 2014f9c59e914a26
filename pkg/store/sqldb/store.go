package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/models/store"
	recordstore "github.com/de-tools/practice-atlas/pkg/store/records"
)

const schema = `
CREATE TABLE IF NOT EXISTS time_records (
	id                TEXT PRIMARY KEY,
	practice          TEXT NOT NULL,
	date              TEXT,
	staff             TEXT,
	account_manager   TEXT,
	job_manager       TEXT,
	client_group      TEXT,
	time_value        REAL,
	amount            TEXT,
	billable          BOOLEAN NOT NULL DEFAULT FALSE,
	capacity_reducing BOOLEAN NOT NULL DEFAULT FALSE,
	billed            BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_time_records_practice_date ON time_records (practice, date);
`

// OpenSQLite opens the local record database used by the CLI and dev setups.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}
	return db, nil
}

// EnsureSchema creates the record table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure record schema: %w", err)
	}
	return nil
}

type sqlStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) recordstore.Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) FetchPage(
	ctx context.Context,
	practice string,
	filter domain.RecordFilter,
	offset, limit int,
) ([]store.TimeRecord, error) {
	logger := zerolog.Ctx(ctx)

	where := []string{"practice = ?"}
	args := []any{practice}

	// dates are stored as 2006-01-02 text, so lexicographic comparison is
	// chronological
	if filter.From != nil {
		where = append(where, "date >= ?")
		args = append(args, filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		where = append(where, "date <= ?")
		args = append(args, filter.To.Format("2006-01-02"))
	}
	for _, m := range filter.Fields {
		col, err := fieldColumn(m.Field)
		if err != nil {
			return nil, err
		}
		where = append(where, col+" = ?")
		args = append(args, m.Value)
	}
	for _, m := range filter.Flags {
		col, err := flagColumn(m.Flag)
		if err != nil {
			return nil, err
		}
		where = append(where, col+" = ?")
		args = append(args, m.Value)
	}

	query := `
		SELECT id, practice, date, staff, account_manager, job_manager, client_group,
			time_value, amount, billable, capacity_reducing, billed
		FROM time_records
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY date, id
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("record page query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close record query rows")
		}
	}(rows)

	var records []store.TimeRecord
	for rows.Next() {
		var (
			r                          store.TimeRecord
			date, staff, acct, job, cg sql.NullString
			timeValue                  sql.NullFloat64
			amount                     sql.NullString
		)
		if err := rows.Scan(
			&r.ID, &r.Practice, &date, &staff, &acct, &job, &cg,
			&timeValue, &amount, &r.Billable, &r.CapacityRed, &r.Billed,
		); err != nil {
			return nil, err
		}

		r.Date = date.String
		r.Staff = staff.String
		r.AccountManager = acct.String
		r.JobManager = job.String
		r.ClientGroup = cg.String
		r.Amount = amount.String
		if timeValue.Valid {
			v := timeValue.Float64
			r.TimeValue = &v
		}

		records = append(records, r)
	}

	return records, rows.Err()
}

func fieldColumn(f domain.Field) (string, error) {
	switch f {
	case domain.FieldStaff:
		return "staff", nil
	case domain.FieldAccountManager:
		return "account_manager", nil
	case domain.FieldJobManager:
		return "job_manager", nil
	case domain.FieldClientGroup:
		return "client_group", nil
	}
	return "", fmt.Errorf("unsupported filter field: %s", f)
}

func flagColumn(f domain.Flag) (string, error) {
	switch f {
	case domain.FlagBillable:
		return "billable", nil
	case domain.FlagCapacityReducing:
		return "capacity_reducing", nil
	}
	return "", fmt.Errorf("unsupported filter flag: %s", f)
}
