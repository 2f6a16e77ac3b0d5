// Package store is the typed persistence surface over the reference
// database. It owns the SQL for upserts, fixed lookups, searches, and
// statistics; callers never see raw rows, only records, row maps, and
// outcomes.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/skyfly/aircraftdb/db"
	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/refdata"
)

// Outcome reports what an upsert did to the stored row.
type Outcome int

const (
	// OutcomeUnchanged means the stored content already matched; no write.
	OutcomeUnchanged Outcome = iota
	// OutcomeInserted means the key was new.
	OutcomeInserted
	// OutcomeUpdated means the key existed with different content.
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Query constants
const (
	modelSelectContentQuery = `SELECT content FROM aircraft_models WHERE code = ?`
	modelInsertQuery        = `
		INSERT INTO aircraft_models
		(code, manufacturer, model, type_aircraft, type_engine, aircraft_category,
		 builder_cert_ind, num_engines, num_seats, weight_class, speed, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	modelUpdateQuery = `
		UPDATE aircraft_models SET
		manufacturer = ?, model = ?, type_aircraft = ?, type_engine = ?,
		aircraft_category = ?, builder_cert_ind = ?, num_engines = ?,
		num_seats = ?, weight_class = ?, speed = ?, content = ?,
		updated_at = datetime('now')
		WHERE code = ?`

	engineSelectContentQuery = `SELECT content FROM engines WHERE code = ?`
	engineInsertQuery        = `
		INSERT INTO engines
		(code, manufacturer, model, type_engine, horsepower, thrust, content)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	engineUpdateQuery = `
		UPDATE engines SET
		manufacturer = ?, model = ?, type_engine = ?, horsepower = ?,
		thrust = ?, content = ?, updated_at = datetime('now')
		WHERE code = ?`

	registrySelectContentQuery = `SELECT content FROM aircraft_registry WHERE n_number = ?`
	registryInsertQuery        = `
		INSERT INTO aircraft_registry
		(n_number, serial_number, mfr_mdl_code, eng_mfr_mdl, year_mfr,
		 registrant_type, registrant_name, street, city, state, zip_code,
		 country, last_action_date, cert_issue_date, airworthiness_class,
		 type_aircraft, type_engine, status_code, mode_s_code_hex,
		 air_worth_date, expiration_date, kit_mfr, kit_model, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	registryUpdateQuery = `
		UPDATE aircraft_registry SET
		serial_number = ?, mfr_mdl_code = ?, eng_mfr_mdl = ?, year_mfr = ?,
		registrant_type = ?, registrant_name = ?, street = ?, city = ?,
		state = ?, zip_code = ?, country = ?, last_action_date = ?,
		cert_issue_date = ?, airworthiness_class = ?, type_aircraft = ?,
		type_engine = ?, status_code = ?, mode_s_code_hex = ?,
		air_worth_date = ?, expiration_date = ?, kit_mfr = ?, kit_model = ?,
		content = ?, updated_at = datetime('now')
		WHERE n_number = ?`

	dealerSelectContentQuery = `SELECT content FROM dealers WHERE certificate_number = ?`
	dealerInsertQuery        = `
		INSERT INTO dealers
		(certificate_number, ownership, certificate_date, expiration_date,
		 name, street, city, state, zip_code, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	dealerUpdateQuery = `
		UPDATE dealers SET
		ownership = ?, certificate_date = ?, expiration_date = ?, name = ?,
		street = ?, city = ?, state = ?, zip_code = ?, content = ?,
		updated_at = datetime('now')
		WHERE certificate_number = ?`

	deregSelectContentQuery = `SELECT content FROM aircraft_deregistered WHERE n_number = ? AND cancel_date = ?`
	deregInsertQuery        = `
		INSERT INTO aircraft_deregistered
		(n_number, cancel_date, serial_number, mfr_mdl_code, status_code,
		 mode_s_code_hex, registrant_name, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	deregUpdateQuery = `
		UPDATE aircraft_deregistered SET
		serial_number = ?, mfr_mdl_code = ?, status_code = ?,
		mode_s_code_hex = ?, registrant_name = ?, content = ?,
		updated_at = datetime('now')
		WHERE n_number = ? AND cancel_date = ?`

	customSelectContentQuery = `SELECT content FROM custom_records WHERE source_file = ? AND row_hash = ?`
	customInsertQuery        = `
		INSERT INTO custom_records (source_file, row_hash, content)
		VALUES (?, ?, ?)`
)

// SQLStore executes typed operations against the shared database handle.
// Every upsert runs in its own write transaction, so a failed row never
// takes committed neighbors down with it.
type SQLStore struct {
	mgr    *db.Manager
	logger *zap.SugaredLogger
}

// NewSQLStore creates a store over the given connection manager.
func NewSQLStore(mgr *db.Manager, logger *zap.SugaredLogger) *SQLStore {
	return &SQLStore{
		mgr:    mgr,
		logger: logger,
	}
}

// Manager exposes the underlying connection manager for read-path callers.
func (s *SQLStore) Manager() *db.Manager { return s.mgr }

// nullable turns Go zero values into SQL NULLs for optional columns.
func nullable(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
	case int:
		if val == 0 {
			return nil
		}
	}
	return v
}

// upsert runs the shared select-compare-write cycle inside one transaction.
// insert and update receive the canonical content JSON to persist.
func (s *SQLStore) upsert(
	ctx context.Context,
	selectQuery string,
	keyArgs []interface{},
	content []byte,
	insert func(tx *sql.Tx, content string) error,
	update func(tx *sql.Tx, content string) error,
) (Outcome, error) {
	outcome := OutcomeUnchanged
	err := s.mgr.WithWrite(ctx, func(tx *sql.Tx) error {
		var stored string
		err := tx.QueryRowContext(ctx, selectQuery, keyArgs...).Scan(&stored)
		switch {
		case err == sql.ErrNoRows:
			outcome = OutcomeInserted
			return insert(tx, string(content))
		case err != nil:
			return errors.Wrap(err, "read stored content")
		case stored == string(content):
			outcome = OutcomeUnchanged
			return nil
		default:
			outcome = OutcomeUpdated
			return update(tx, string(content))
		}
	})
	if err != nil {
		return OutcomeUnchanged, err
	}
	return outcome, nil
}

// UpsertAircraftModel writes one ACFTREF record keyed by its code.
func (s *SQLStore) UpsertAircraftModel(ctx context.Context, rec *refdata.AircraftModel) (Outcome, error) {
	content, err := json.Marshal(rec)
	if err != nil {
		return OutcomeUnchanged, errors.Wrap(err, "marshal aircraft model")
	}
	return s.upsert(ctx, modelSelectContentQuery, []interface{}{rec.Code}, content,
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, modelInsertQuery,
				rec.Code, nullable(rec.Manufacturer), nullable(rec.Model),
				nullable(rec.TypeAircraft), nullable(rec.TypeEngine),
				nullable(rec.AircraftCategory), nullable(rec.BuilderCertInd),
				nullable(rec.NumEngines), nullable(rec.NumSeats),
				nullable(rec.WeightClass), nullable(rec.Speed), content)
			return errors.Wrapf(err, "insert aircraft model %s", rec.Code)
		},
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, modelUpdateQuery,
				nullable(rec.Manufacturer), nullable(rec.Model),
				nullable(rec.TypeAircraft), nullable(rec.TypeEngine),
				nullable(rec.AircraftCategory), nullable(rec.BuilderCertInd),
				nullable(rec.NumEngines), nullable(rec.NumSeats),
				nullable(rec.WeightClass), nullable(rec.Speed), content, rec.Code)
			return errors.Wrapf(err, "update aircraft model %s", rec.Code)
		})
}

// UpsertEngine writes one ENGINE record keyed by its code.
func (s *SQLStore) UpsertEngine(ctx context.Context, rec *refdata.Engine) (Outcome, error) {
	content, err := json.Marshal(rec)
	if err != nil {
		return OutcomeUnchanged, errors.Wrap(err, "marshal engine")
	}
	return s.upsert(ctx, engineSelectContentQuery, []interface{}{rec.Code}, content,
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, engineInsertQuery,
				rec.Code, nullable(rec.Manufacturer), nullable(rec.Model),
				nullable(rec.TypeEngine), nullable(rec.Horsepower),
				nullable(rec.Thrust), content)
			return errors.Wrapf(err, "insert engine %s", rec.Code)
		},
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, engineUpdateQuery,
				nullable(rec.Manufacturer), nullable(rec.Model),
				nullable(rec.TypeEngine), nullable(rec.Horsepower),
				nullable(rec.Thrust), content, rec.Code)
			return errors.Wrapf(err, "update engine %s", rec.Code)
		})
}

// UpsertRegistryEntry writes one MASTER record keyed by its N-number.
func (s *SQLStore) UpsertRegistryEntry(ctx context.Context, rec *refdata.RegistryEntry) (Outcome, error) {
	content, err := json.Marshal(rec)
	if err != nil {
		return OutcomeUnchanged, errors.Wrap(err, "marshal registry entry")
	}
	return s.upsert(ctx, registrySelectContentQuery, []interface{}{rec.NNumber}, content,
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, registryInsertQuery,
				rec.NNumber, nullable(rec.SerialNumber), nullable(rec.MfrMdlCode),
				nullable(rec.EngMfrMdl), nullable(rec.YearMfr),
				nullable(rec.RegistrantType), nullable(rec.RegistrantName),
				nullable(rec.Street), nullable(rec.City), nullable(rec.State),
				nullable(rec.ZipCode), nullable(rec.Country),
				nullable(rec.LastActionDate), nullable(rec.CertIssueDate),
				nullable(rec.AirworthinessClass), nullable(rec.TypeAircraft),
				nullable(rec.TypeEngine), nullable(rec.StatusCode),
				nullable(rec.ModeSHex), nullable(rec.AirWorthDate),
				nullable(rec.ExpirationDate), nullable(rec.KitMfr),
				nullable(rec.KitModel), content)
			return errors.Wrapf(err, "insert registry entry %s", rec.NNumber)
		},
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, registryUpdateQuery,
				nullable(rec.SerialNumber), nullable(rec.MfrMdlCode),
				nullable(rec.EngMfrMdl), nullable(rec.YearMfr),
				nullable(rec.RegistrantType), nullable(rec.RegistrantName),
				nullable(rec.Street), nullable(rec.City), nullable(rec.State),
				nullable(rec.ZipCode), nullable(rec.Country),
				nullable(rec.LastActionDate), nullable(rec.CertIssueDate),
				nullable(rec.AirworthinessClass), nullable(rec.TypeAircraft),
				nullable(rec.TypeEngine), nullable(rec.StatusCode),
				nullable(rec.ModeSHex), nullable(rec.AirWorthDate),
				nullable(rec.ExpirationDate), nullable(rec.KitMfr),
				nullable(rec.KitModel), content, rec.NNumber)
			return errors.Wrapf(err, "update registry entry %s", rec.NNumber)
		})
}

// UpsertDealer writes one DEALER record keyed by its certificate number.
func (s *SQLStore) UpsertDealer(ctx context.Context, rec *refdata.Dealer) (Outcome, error) {
	content, err := json.Marshal(rec)
	if err != nil {
		return OutcomeUnchanged, errors.Wrap(err, "marshal dealer")
	}
	return s.upsert(ctx, dealerSelectContentQuery, []interface{}{rec.CertificateNumber}, content,
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, dealerInsertQuery,
				rec.CertificateNumber, nullable(rec.Ownership),
				nullable(rec.CertificateDate), nullable(rec.ExpirationDate),
				nullable(rec.Name), nullable(rec.Street), nullable(rec.City),
				nullable(rec.State), nullable(rec.ZipCode), content)
			return errors.Wrapf(err, "insert dealer %s", rec.CertificateNumber)
		},
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, dealerUpdateQuery,
				nullable(rec.Ownership), nullable(rec.CertificateDate),
				nullable(rec.ExpirationDate), nullable(rec.Name),
				nullable(rec.Street), nullable(rec.City), nullable(rec.State),
				nullable(rec.ZipCode), content, rec.CertificateNumber)
			return errors.Wrapf(err, "update dealer %s", rec.CertificateNumber)
		})
}

// UpsertDeregistered writes one DEREG record keyed by N-number and
// cancellation date.
func (s *SQLStore) UpsertDeregistered(ctx context.Context, rec *refdata.DeregisteredEntry) (Outcome, error) {
	content, err := json.Marshal(rec)
	if err != nil {
		return OutcomeUnchanged, errors.Wrap(err, "marshal deregistered entry")
	}
	return s.upsert(ctx, deregSelectContentQuery, []interface{}{rec.NNumber, rec.CancelDate}, content,
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, deregInsertQuery,
				rec.NNumber, rec.CancelDate, nullable(rec.SerialNumber),
				nullable(rec.MfrMdlCode), nullable(rec.StatusCode),
				nullable(rec.ModeSHex), nullable(rec.RegistrantName), content)
			return errors.Wrapf(err, "insert deregistered entry %s", rec.NNumber)
		},
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, deregUpdateQuery,
				nullable(rec.SerialNumber), nullable(rec.MfrMdlCode),
				nullable(rec.StatusCode), nullable(rec.ModeSHex),
				nullable(rec.RegistrantName), content, rec.NNumber, rec.CancelDate)
			return errors.Wrapf(err, "update deregistered entry %s", rec.NNumber)
		})
}

// StageCustomRecord stores a row of unrecognized shape. The key is the
// source file plus the SHA-256 of the canonical row JSON, so restaging the
// same data is a no-op and edited rows land as new ones.
func (s *SQLStore) StageCustomRecord(ctx context.Context, sourceFile string, row map[string]string) (Outcome, error) {
	content, err := json.Marshal(row)
	if err != nil {
		return OutcomeUnchanged, errors.Wrap(err, "marshal custom row")
	}
	sum := sha256.Sum256(content)
	rowHash := hex.EncodeToString(sum[:])

	return s.upsert(ctx, customSelectContentQuery, []interface{}{sourceFile, rowHash}, content,
		func(tx *sql.Tx, content string) error {
			_, err := tx.ExecContext(ctx, customInsertQuery, sourceFile, rowHash, content)
			return errors.Wrapf(err, "stage custom row from %s", sourceFile)
		},
		func(tx *sql.Tx, content string) error {
			// Content is part of the key; a hash hit means identical content.
			return nil
		})
}
