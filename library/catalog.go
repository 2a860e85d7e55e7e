package library

import (
	"fmt"
	"strings"
)

// Catalog owns every Book and Member and enforces the rules that span both.
// Reads hand out copies, so records can only change through Issue and Return.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	books   map[string]*Book
	members map[string]*Member

	// Insertion order, used for listing and search results.
	bookOrder   []string
	memberOrder []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		books:   make(map[string]*Book),
		members: make(map[string]*Member),
	}
}

// ------------------ Registration ------------------

// AddBook registers b under its id. An id that is already taken is rejected
// and the existing entry is left untouched.
func (c *Catalog) AddBook(b *Book) error {
	if b == nil {
		return fmt.Errorf("add book: %w", ErrInvalidRecord)
	}
	if _, ok := c.books[b.ID]; ok {
		return fmt.Errorf("book %q: %w", b.ID, ErrDuplicateID)
	}
	c.books[b.ID] = b
	c.bookOrder = append(c.bookOrder, b.ID)
	return nil
}

// AddMember registers m under its id, with the same duplicate rule as AddBook.
func (c *Catalog) AddMember(m *Member) error {
	if m == nil {
		return fmt.Errorf("add member: %w", ErrInvalidRecord)
	}
	if _, ok := c.members[m.ID]; ok {
		return fmt.Errorf("member %q: %w", m.ID, ErrDuplicateID)
	}
	if m.Borrowed == nil {
		m.Borrowed = []string{}
	}
	c.members[m.ID] = m
	c.memberOrder = append(c.memberOrder, m.ID)
	return nil
}

// ------------------ Circulation ------------------

// Issue lends one copy of bookID to memberID. On error nothing changes.
func (c *Catalog) Issue(memberID, bookID string) error {
	member, book, err := c.lookup(memberID, bookID)
	if err != nil {
		return err
	}
	if !member.CanBorrow() {
		return fmt.Errorf("member %q: %w", memberID, ErrBorrowLimitExceeded)
	}
	if book.AvailableCopies <= 0 {
		return fmt.Errorf("book %q: %w", bookID, ErrNoCopiesAvailable)
	}
	if err := member.borrow(bookID); err != nil {
		return fmt.Errorf("member %q: %w", memberID, err)
	}
	book.decrementAvailable()
	return nil
}

// Return takes back one copy of bookID from memberID. On error nothing changes.
func (c *Catalog) Return(memberID, bookID string) error {
	member, book, err := c.lookup(memberID, bookID)
	if err != nil {
		return err
	}
	if !member.returnBook(bookID) {
		return fmt.Errorf("member %q, book %q: %w", memberID, bookID, ErrNotBorrowedByMember)
	}
	book.incrementAvailable()
	return nil
}

// checkpoint captures the loan state of the pair; the returned func puts it
// back exactly, including the order of the member's borrowed list.
func (c *Catalog) checkpoint(memberID, bookID string) func() {
	member, book, err := c.lookup(memberID, bookID)
	if err != nil {
		return func() {}
	}
	borrowed := append([]string(nil), member.Borrowed...)
	available := book.AvailableCopies
	return func() {
		member.Borrowed = borrowed
		book.AvailableCopies = available
	}
}

func (c *Catalog) lookup(memberID, bookID string) (*Member, *Book, error) {
	member, ok := c.members[memberID]
	if !ok {
		return nil, nil, fmt.Errorf("member %q: %w", memberID, ErrNotFound)
	}
	book, ok := c.books[bookID]
	if !ok {
		return nil, nil, fmt.Errorf("book %q: %w", bookID, ErrNotFound)
	}
	return member, book, nil
}

// ------------------ Queries ------------------

// Search matches query case-insensitively against title and author, and as a
// plain substring of the ISBN. Results keep insertion order.
func (c *Catalog) Search(query string) []Book {
	q := strings.ToLower(query)
	return c.filterBooks(func(b *Book) bool {
		return strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(b.ISBN, q)
	})
}

// ListAvailable returns books with at least one copy on the shelf.
func (c *Catalog) ListAvailable() []Book {
	return c.filterBooks(func(b *Book) bool { return b.AvailableCopies > 0 })
}

// Books returns every book in insertion order.
func (c *Catalog) Books() []Book {
	return c.filterBooks(func(*Book) bool { return true })
}

func (c *Catalog) filterBooks(keep func(*Book) bool) []Book {
	out := []Book{}
	for _, id := range c.bookOrder {
		if b := c.books[id]; keep(b) {
			out = append(out, *b)
		}
	}
	return out
}

// GetBook returns a copy of the book.
func (c *Catalog) GetBook(id string) (Book, error) {
	b, ok := c.books[id]
	if !ok {
		return Book{}, fmt.Errorf("book %q: %w", id, ErrNotFound)
	}
	return *b, nil
}

// GetMember returns a copy of the member, including the borrowed ids.
func (c *Catalog) GetMember(id string) (Member, error) {
	m, ok := c.members[id]
	if !ok {
		return Member{}, fmt.Errorf("member %q: %w", id, ErrNotFound)
	}
	return m.clone(), nil
}

// Members returns every member in insertion order.
func (c *Catalog) Members() []Member {
	out := make([]Member, 0, len(c.memberOrder))
	for _, id := range c.memberOrder {
		out = append(out, c.members[id].clone())
	}
	return out
}

// BorrowedBooks resolves the member's borrowed ids to the current book records.
func (c *Catalog) BorrowedBooks(memberID string) ([]Book, error) {
	m, ok := c.members[memberID]
	if !ok {
		return nil, fmt.Errorf("member %q: %w", memberID, ErrNotFound)
	}
	out := make([]Book, 0, len(m.Borrowed))
	for _, id := range m.Borrowed {
		if b, ok := c.books[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}
