package sqlstore

import "github.com/shuldan/errorinterceptor/pkg/errors"

var newSQLSinkCode = errors.WithPrefix("SQL_SINK")

var (
	ErrInvalidDB    = newSQLSinkCode().New("database handle cannot be nil")
	ErrMissingDSN   = newSQLSinkCode().New("dsn is not configured for {{.dialect}}")
	ErrInvalidTable = newSQLSinkCode().New("invalid table name: {{.table}}")
	ErrOpenFailed   = newSQLSinkCode().New("failed to open {{.dialect}} database")
	ErrSchemaFailed = newSQLSinkCode().New("failed to create table {{.table}}")
	ErrInsertFailed = newSQLSinkCode().New("failed to insert record {{.id}}")
	ErrQueryFailed  = newSQLSinkCode().New("failed to query table {{.table}}")
	ErrCloseFailed  = newSQLSinkCode().New("failed to close database")
)
