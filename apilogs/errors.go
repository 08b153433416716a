package apilogs

import "errors"

var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotFound         = errors.New("not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrTableNotFound    = errors.New("table does not exist")
	ErrUpstreamWrite    = errors.New("dynamodb write failed")
	ErrUpstreamRead     = errors.New("dynamodb read failed")

	ErrWebsiteDirNotFound error = notFoundError("Website directory not found")
	ErrIndexNotFound      error = notFoundError("Index.html not found")
)

// notFoundError matches ErrNotFound without prefixing its message.
type notFoundError string

func (e notFoundError) Error() string {
	return string(e)
}

func (e notFoundError) Is(target error) bool {
	return target == ErrNotFound
}
