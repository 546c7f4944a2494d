package errors

import (
	stdErrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump is the full diagnostic view of an error for structured logging.
// Postgres driver details are extracted when the chain carries them.
type ErrorDump struct {
	Chain      []string `json:"chain"`
	Code       Code     `json:"code,omitempty"`
	PGCode     string   `json:"pg_code,omitempty"`
	PGMessage  string   `json:"pg_message,omitempty"`
	PGDetail   string   `json:"pg_detail,omitempty"`
	Constraint string   `json:"constraint,omitempty"`
	Table      string   `json:"table,omitempty"`
}

func Dump(err error) *ErrorDump {
	if err == nil {
		return nil
	}
	dump := &ErrorDump{}
	if typed := As(err); typed != nil {
		dump.Code = typed.Code()
	}
	for cur := err; cur != nil; cur = stdErrors.Unwrap(cur) {
		dump.Chain = append(dump.Chain, cur.Error())
	}
	var pgxErr *pgconn.PgError
	if stdErrors.As(err, &pgxErr) {
		dump.PGCode = pgxErr.Code
		dump.PGMessage = pgxErr.Message
		dump.PGDetail = pgxErr.Detail
		dump.Constraint = pgxErr.ConstraintName
		dump.Table = pgxErr.TableName
		return dump
	}
	var pqErr *pq.Error
	if stdErrors.As(err, &pqErr) {
		dump.PGCode = string(pqErr.Code)
		dump.PGMessage = pqErr.Message
		dump.PGDetail = pqErr.Detail
		dump.Constraint = pqErr.Constraint
		dump.Table = pqErr.Table
	}
	return dump
}
