// Package store persists CPE parameter data to SQLite.
//
// Rows are keyed by device and parameter name; each response received
// replaces the rows for the parameters it names.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"
	"time"

	"github.com/andaru/acs/cwmperr"
	"github.com/andaru/acs/message"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schema string

// Memory is the path of a private in-memory database
const Memory = ":memory:"

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
}

// Store is a SQLite parameter store
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_txlock=immediate")
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if path == Memory {
		// each connection would see its own database
		db.SetMaxOpenConns(1)
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "%s", pragma)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "apply schema")
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error { return s.db.Close() }

// Persist stores the parameter list of a GetParameterValuesResponse,
// GetParameterNamesResponse or GetParameterAttributesResponse received
// from device. Other responses are an external error.
func (s *Store) Persist(ctx context.Context, device string, resp message.CpeResponse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	updated := s.now().UTC().Format(time.RFC3339Nano)
	switch resp := resp.(type) {
	case message.GetParameterValuesResponse:
		for _, p := range resp.ParameterList {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO parameter_values (device, name, value, type, updated_at)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (device, name) DO UPDATE SET
					value = excluded.value, type = excluded.type, updated_at = excluded.updated_at`,
				device, p.Name, message.FormatValue(p.Value), p.Type, updated); err != nil {
				return errors.Wrapf(err, "store value %s", p.Name)
			}
		}
	case message.GetParameterNamesResponse:
		for _, p := range resp.ParameterList {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO parameter_names (device, name, writable, updated_at)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (device, name) DO UPDATE SET
					writable = excluded.writable, updated_at = excluded.updated_at`,
				device, p.Name, p.Writable, updated); err != nil {
				return errors.Wrapf(err, "store name %s", p.Name)
			}
		}
	case message.GetParameterAttributesResponse:
		for _, p := range resp.ParameterList {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO parameter_attributes (device, name, notification, access_list, updated_at)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (device, name) DO UPDATE SET
					notification = excluded.notification, access_list = excluded.access_list,
					updated_at = excluded.updated_at`,
				device, p.Name, p.Notification, strings.Join(p.AccessList, ","), updated); err != nil {
				return errors.Wrapf(err, "store attributes %s", p.Name)
			}
		}
	default:
		return cwmperr.External("unsupported response " + resp.MethodName())
	}
	return errors.Wrap(tx.Commit(), "commit")
}

// ParameterValues returns the stored values for device, ordered by name
func (s *Store) ParameterValues(ctx context.Context, device string) ([]message.ParameterValue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value, type FROM parameter_values WHERE device = ? ORDER BY name`, device)
	if err != nil {
		return nil, errors.Wrap(err, "query values")
	}
	defer rows.Close()
	var out []message.ParameterValue
	for rows.Next() {
		var p message.ParameterValue
		var raw string
		if err := rows.Scan(&p.Name, &raw, &p.Type); err != nil {
			return nil, errors.Wrap(err, "scan value")
		}
		p.Value, _ = message.CoerceValue(raw, p.Type)
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "query values")
}

// ParameterNames returns the stored parameter names for device, ordered
// by name
func (s *Store) ParameterNames(ctx context.Context, device string) ([]message.ParameterInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, writable FROM parameter_names WHERE device = ? ORDER BY name`, device)
	if err != nil {
		return nil, errors.Wrap(err, "query names")
	}
	defer rows.Close()
	var out []message.ParameterInfo
	for rows.Next() {
		var p message.ParameterInfo
		if err := rows.Scan(&p.Name, &p.Writable); err != nil {
			return nil, errors.Wrap(err, "scan name")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "query names")
}

// ParameterAttributes returns the stored attributes for device, ordered
// by name
func (s *Store) ParameterAttributes(ctx context.Context, device string) ([]message.ParameterAttribute, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, notification, access_list FROM parameter_attributes WHERE device = ? ORDER BY name`, device)
	if err != nil {
		return nil, errors.Wrap(err, "query attributes")
	}
	defer rows.Close()
	var out []message.ParameterAttribute
	for rows.Next() {
		var p message.ParameterAttribute
		var accessList string
		if err := rows.Scan(&p.Name, &p.Notification, &accessList); err != nil {
			return nil, errors.Wrap(err, "scan attributes")
		}
		if accessList != "" {
			p.AccessList = strings.Split(accessList, ",")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "query attributes")
}
