package library

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxBooks is the number of books a member may hold at the same time.
const MaxBooks = 3

// Book represents catalog metadata and the current availability of a title.
type Book struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// NewBook returns a book with every copy available. Inputs are taken as-is.
func NewBook(id, title, author, isbn string, year, totalCopies int) *Book {
	return &Book{
		ID:              id,
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		PublicationYear: year,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}
}

func (b *Book) decrementAvailable() {
	if b.AvailableCopies > 0 {
		b.AvailableCopies--
	}
}

func (b *Book) incrementAvailable() {
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}
}

func (b Book) String() string {
	return fmt.Sprintf("%s - '%s' by %s (%d) [%d/%d]",
		b.ID, b.Title, b.Author, b.PublicationYear, b.AvailableCopies, b.TotalCopies)
}

// Member represents a registered library member. Borrowed holds book ids in
// the order they were issued; the Catalog resolves them back to books.
type Member struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Borrowed []string `json:"borrowed"`
}

// NewMember returns a member holding no books.
func NewMember(id, name, email, phone string) *Member {
	return &Member{
		ID:       id,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Borrowed: []string{},
	}
}

// CanBorrow reports whether the member is below MaxBooks.
func (m *Member) CanBorrow() bool {
	return len(m.Borrowed) < MaxBooks
}

// Holds reports whether bookID is currently on loan to the member.
func (m *Member) Holds(bookID string) bool {
	for _, id := range m.Borrowed {
		if id == bookID {
			return true
		}
	}
	return false
}

// borrow appends bookID unless the member is already at the limit.
func (m *Member) borrow(bookID string) error {
	if !m.CanBorrow() {
		return ErrBorrowLimitExceeded
	}
	m.Borrowed = append(m.Borrowed, bookID)
	return nil
}

// returnBook removes the first occurrence of bookID.
func (m *Member) returnBook(bookID string) bool {
	for i, id := range m.Borrowed {
		if id == bookID {
			m.Borrowed = append(m.Borrowed[:i], m.Borrowed[i+1:]...)
			return true
		}
	}
	return false
}

func (m Member) String() string {
	return fmt.Sprintf("%s - %s (%s)", m.ID, m.Name, m.Email)
}

func (m *Member) clone() Member {
	c := *m
	c.Borrowed = append([]string{}, m.Borrowed...)
	return c
}

// Loan is one issue/return cycle recorded in the circulation journal.
type Loan struct {
	ID         uuid.UUID  `json:"id"`
	MemberID   string     `json:"member_id"`
	BookID     string     `json:"book_id"`
	IssuedAt   time.Time  `json:"issued_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

// Open reports whether the loan has not been returned yet.
func (l Loan) Open() bool { return l.ReturnedAt == nil }
