package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"valuator/internal/domain"
)

const reportColumns = `id::text, company, report_data, pass_outputs, calculation_results, status, message,
	last_pass_duration_ms, processing_time_ms, version, created_at, updated_at`

// Create inserts a report at version 1.
func (db *DB) Create(ctx context.Context, report domain.Report) (string, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Status == "" {
		report.Status = domain.StatusPending
	}
	if report.ReportData.Sections == nil {
		report.ReportData.Sections = map[string]string{}
	}
	company, err := json.Marshal(report.Company)
	if err != nil {
		return "", eris.Wrap(err, "postgres: encode company")
	}
	data, err := json.Marshal(report.ReportData)
	if err != nil {
		return "", eris.Wrap(err, "postgres: encode report data")
	}
	outputs, err := json.Marshal(report.PassOutputs)
	if err != nil {
		return "", eris.Wrap(err, "postgres: encode pass outputs")
	}
	calc, err := encodeCalculations(report.CalculationResults)
	if err != nil {
		return "", err
	}
	var id string
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO reports (id, company, report_data, pass_outputs, calculation_results, status, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text
	`, report.ID, company, data, outputs, calc, string(report.Status), report.Message).Scan(&id)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert report")
	}
	return id, nil
}

func (db *DB) Get(ctx context.Context, reportID string) (domain.Report, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, reportID)
	report, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Report{}, eris.Wrapf(domain.ErrNotFound, "report %s", reportID)
	}
	if err != nil {
		return domain.Report{}, eris.Wrapf(err, "postgres: get report %s", reportID)
	}
	return report, nil
}

// CommitPass merges one pass result under a row lock and bumps the version.
func (db *DB) CommitPass(ctx context.Context, c domain.PassCommit) (int64, error) {
	var version int64
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var raw []byte
		var current int64
		err := tx.QueryRow(ctx, `SELECT pass_outputs, version FROM reports WHERE id = $1 FOR UPDATE`, c.ReportID).Scan(&raw, &current)
		if errors.Is(err, pgx.ErrNoRows) {
			return eris.Wrapf(domain.ErrNotFound, "report %s", c.ReportID)
		}
		if err != nil {
			return eris.Wrap(err, "postgres: lock report")
		}
		if current != c.ExpectedVersion {
			return eris.Wrapf(domain.ErrConcurrency, "report %s is at version %d, expected %d", c.ReportID, current, c.ExpectedVersion)
		}

		outputs := domain.NewPassOutputs()
		if err := json.Unmarshal(raw, &outputs); err != nil {
			return eris.Wrapf(err, "postgres: decode pass outputs of %s", c.ReportID)
		}
		outputs.Set(c.Selector, c.Result)
		merged, err := json.Marshal(outputs)
		if err != nil {
			return eris.Wrap(err, "postgres: encode pass outputs")
		}

		var data []byte
		if c.ReportData != nil {
			if data, err = json.Marshal(c.ReportData); err != nil {
				return eris.Wrap(err, "postgres: encode report data")
			}
		}

		err = tx.QueryRow(ctx, `
			UPDATE reports SET
				pass_outputs = $2,
				report_data = COALESCE($3::jsonb, report_data),
				status = $4,
				message = $5,
				last_pass_duration_ms = $6,
				processing_time_ms = processing_time_ms + $6,
				version = version + 1,
				updated_at = now()
			WHERE id = $1
			RETURNING version
		`, c.ReportID, merged, data, string(c.Status), c.Message, c.DurationMs).Scan(&version)
		if err != nil {
			return eris.Wrap(err, "postgres: update report")
		}
		return nil
	})
	return version, err
}

func (db *DB) UpdateStatus(ctx context.Context, u domain.StatusUpdate) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE reports SET status = $2, message = $3, updated_at = now() WHERE id = $1
	`, u.ReportID, string(u.Status), u.Message)
	if err != nil {
		return eris.Wrapf(err, "postgres: update status of %s", u.ReportID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(domain.ErrNotFound, "report %s", u.ReportID)
	}
	return nil
}

func (db *DB) UpdateCalculations(ctx context.Context, reportID string, data *domain.ValuationData) error {
	calc, err := encodeCalculations(data)
	if err != nil {
		return err
	}
	tag, err := db.Pool.Exec(ctx, `
		UPDATE reports SET calculation_results = $2, version = version + 1, updated_at = now() WHERE id = $1
	`, reportID, calc)
	if err != nil {
		return eris.Wrapf(err, "postgres: update calculations of %s", reportID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(domain.ErrNotFound, "report %s", reportID)
	}
	return nil
}

func encodeCalculations(data *domain.ValuationData) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: encode calculation results")
	}
	return b, nil
}

func scanReport(row pgx.Row) (domain.Report, error) {
	var (
		r                            domain.Report
		status                       string
		company, data, outputs, calc []byte
	)
	err := row.Scan(&r.ID, &company, &data, &outputs, &calc, &status, &r.Message,
		&r.LastPassDurationMs, &r.ProcessingTimeMs, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	r.Status = domain.ProcessingStatus(status)
	if err := json.Unmarshal(company, &r.Company); err != nil {
		return r, eris.Wrap(err, "decode company")
	}
	if err := json.Unmarshal(data, &r.ReportData); err != nil {
		return r, eris.Wrap(err, "decode report data")
	}
	if r.ReportData.Sections == nil {
		r.ReportData.Sections = map[string]string{}
	}
	r.PassOutputs = domain.NewPassOutputs()
	if err := json.Unmarshal(outputs, &r.PassOutputs); err != nil {
		return r, eris.Wrap(err, "decode pass outputs")
	}
	if len(calc) > 0 {
		r.CalculationResults = &domain.ValuationData{}
		if err := json.Unmarshal(calc, r.CalculationResults); err != nil {
			return r, eris.Wrap(err, "decode calculation results")
		}
	}
	return r, nil
}
