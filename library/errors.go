package library

import "errors"

var (
	// ErrNotFound is returned when a book or member id is not in the catalog.
	ErrNotFound = errors.New("not found")

	// ErrBorrowLimitExceeded is returned when a member already holds MaxBooks.
	ErrBorrowLimitExceeded = errors.New("member has reached maximum borrowing limit")

	// ErrNoCopiesAvailable is returned when every copy of a book is on loan.
	ErrNoCopiesAvailable = errors.New("no copies available")

	// ErrNotBorrowedByMember is returned when a member returns a book they do not hold.
	ErrNotBorrowedByMember = errors.New("book is not borrowed by this member")

	// ErrDuplicateID is returned when a book or member id is already registered.
	ErrDuplicateID = errors.New("id already exists")

	// ErrInvalidRecord is returned when a nil book or member is registered.
	ErrInvalidRecord = errors.New("invalid record")
)
