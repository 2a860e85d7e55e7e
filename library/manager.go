package library

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// LibraryManager is a thin façade over the Catalog and the Journal, keeping
// shell code simple.
type LibraryManager struct {
	catalog *Catalog
	journal *Journal
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a LibraryManager.
type Option func(*LibraryManager)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(lm *LibraryManager) { lm.log = l }
}

// WithClock overrides time.Now for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(lm *LibraryManager) { lm.now = now }
}

// WithCatalog starts the manager from an existing catalog.
func WithCatalog(c *Catalog) Option {
	return func(lm *LibraryManager) { lm.catalog = c }
}

// NewLibraryManager creates a manager with an empty catalog and a fresh journal.
func NewLibraryManager(opts ...Option) (*LibraryManager, error) {
	lm := &LibraryManager{
		catalog: NewCatalog(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(lm)
	}

	j, err := NewJournal()
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	lm.journal = j
	return lm, nil
}

// Close closes the underlying journal.
func (lm *LibraryManager) Close() error { return lm.journal.Close() }

// ApplySeed loads s into the catalog.
func (lm *LibraryManager) ApplySeed(s Seed) error {
	if err := s.Apply(lm.catalog); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	lm.log.Info("catalog seeded", "books", len(s.Books), "members", len(s.Members))
	return nil
}

// ------------------ Book helpers ------------------

func (lm *LibraryManager) AddBook(id, title, author, isbn string, year, copies int) error {
	if err := lm.catalog.AddBook(NewBook(id, title, author, isbn, year, copies)); err != nil {
		lm.log.Warn("add book rejected", "book_id", id, "err", err)
		return err
	}
	lm.log.Info("book added", "book_id", id, "copies", copies)
	return nil
}

func (lm *LibraryManager) GetBook(id string) (Book, error) { return lm.catalog.GetBook(id) }
func (lm *LibraryManager) GetAllBooks() []Book             { return lm.catalog.Books() }
func (lm *LibraryManager) AvailableBooks() []Book          { return lm.catalog.ListAvailable() }
func (lm *LibraryManager) SearchBooks(q string) []Book     { return lm.catalog.Search(q) }

// ------------------ Member helpers ------------------

func (lm *LibraryManager) AddMember(id, name, email, phone string) error {
	if err := lm.catalog.AddMember(NewMember(id, name, email, phone)); err != nil {
		lm.log.Warn("add member rejected", "member_id", id, "err", err)
		return err
	}
	lm.log.Info("member added", "member_id", id)
	return nil
}

func (lm *LibraryManager) GetMember(id string) (Member, error) { return lm.catalog.GetMember(id) }
func (lm *LibraryManager) GetAllMembers() []Member             { return lm.catalog.Members() }

// MemberDetails returns the member together with the books they hold.
func (lm *LibraryManager) MemberDetails(id string) (Member, []Book, error) {
	m, err := lm.catalog.GetMember(id)
	if err != nil {
		return Member{}, nil, err
	}
	books, err := lm.catalog.BorrowedBooks(id)
	if err != nil {
		return Member{}, nil, err
	}
	return m, books, nil
}

// ------------------ Circulation ------------------

// IssueBook lends bookID to memberID and opens a loan in the journal. If the
// journal write fails the catalog change is undone.
func (lm *LibraryManager) IssueBook(ctx context.Context, memberID, bookID string) (Loan, error) {
	undo := lm.catalog.checkpoint(memberID, bookID)
	if err := lm.catalog.Issue(memberID, bookID); err != nil {
		lm.log.Warn("issue rejected", "member_id", memberID, "book_id", bookID, "err", err)
		return Loan{}, err
	}
	loan, err := lm.journal.RecordIssue(ctx, memberID, bookID, lm.now())
	if err != nil {
		undo()
		lm.log.Error("issue undone", "member_id", memberID, "book_id", bookID, "err", err)
		return Loan{}, err
	}
	lm.log.Info("book issued", "member_id", memberID, "book_id", bookID, "loan_id", loan.ID)
	return loan, nil
}

// ReturnBook takes bookID back from memberID and closes the matching loan.
func (lm *LibraryManager) ReturnBook(ctx context.Context, memberID, bookID string) error {
	undo := lm.catalog.checkpoint(memberID, bookID)
	if err := lm.catalog.Return(memberID, bookID); err != nil {
		lm.log.Warn("return rejected", "member_id", memberID, "book_id", bookID, "err", err)
		return err
	}
	if err := lm.journal.RecordReturn(ctx, memberID, bookID, lm.now()); err != nil {
		undo()
		lm.log.Error("return undone", "member_id", memberID, "book_id", bookID, "err", err)
		return err
	}
	lm.log.Info("book returned", "member_id", memberID, "book_id", bookID)
	return nil
}

// LoanHistory lists every loan the member has had, oldest first.
func (lm *LibraryManager) LoanHistory(ctx context.Context, memberID string) ([]Loan, error) {
	if _, err := lm.catalog.GetMember(memberID); err != nil {
		return nil, err
	}
	return lm.journal.History(ctx, memberID)
}

// OpenLoans counts loans that are still out.
func (lm *LibraryManager) OpenLoans(ctx context.Context) (int, error) {
	return lm.journal.OpenLoans(ctx)
}
