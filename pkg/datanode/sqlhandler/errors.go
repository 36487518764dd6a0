package sqlhandler

import "errors"

var (
	ErrParseSQL               = errors.New("failed to parse SQL")
	ErrInvalidSQL             = errors.New("invalid SQL")
	ErrKeyColumnNotFound      = errors.New("key column not found")
	ErrConstraintNotSupported = errors.New("constraint not supported")
	ErrInvalidPrimaryKey      = errors.New("invalid primary key")
	ErrMissingTimestampColumn = errors.New("missing timestamp column")
)
