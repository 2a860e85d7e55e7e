package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	require.NoError(t, SampleSeed().Apply(c))
	return c
}

func assertInvariants(t *testing.T, c *Catalog) {
	t.Helper()
	for _, b := range c.Books() {
		assert.GreaterOrEqual(t, b.AvailableCopies, 0, "book %s", b.ID)
		assert.LessOrEqual(t, b.AvailableCopies, b.TotalCopies, "book %s", b.ID)
	}
	for _, m := range c.Members() {
		assert.LessOrEqual(t, len(m.Borrowed), MaxBooks, "member %s", m.ID)
	}
}

func TestIssueSuccess(t *testing.T) {
	// arrange
	c := sampleCatalog(t)

	// act
	err := c.Issue("M001", "B001")

	// assert
	require.NoError(t, err)
	book, err := c.GetBook("B001")
	require.NoError(t, err)
	assert.Equal(t, 4, book.AvailableCopies)
	member, err := c.GetMember("M001")
	require.NoError(t, err)
	assert.Equal(t, []string{"B001"}, member.Borrowed)
	assertInvariants(t, c)
}

func TestIssueFourthBookExceedsLimit(t *testing.T) {
	c := sampleCatalog(t)

	for i := 0; i < MaxBooks; i++ {
		require.NoError(t, c.Issue("M001", "B001"))
	}
	err := c.Issue("M001", "B001")

	assert.ErrorIs(t, err, ErrBorrowLimitExceeded)
	book, _ := c.GetBook("B001")
	assert.Equal(t, 5-MaxBooks, book.AvailableCopies)
	member, _ := c.GetMember("M001")
	assert.Equal(t, []string{"B001", "B001", "B001"}, member.Borrowed)
	assertInvariants(t, c)
}

func TestIssueNoCopiesAvailable(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.AddBook(NewBook("B009", "Rare", "Nobody", "1", 1999, 1)))
	require.NoError(t, c.AddMember(NewMember("M001", "A", "a@x", "1")))
	require.NoError(t, c.AddMember(NewMember("M002", "B", "b@x", "2")))
	require.NoError(t, c.Issue("M001", "B009"))

	err := c.Issue("M002", "B009")

	assert.ErrorIs(t, err, ErrNoCopiesAvailable)
	book, _ := c.GetBook("B009")
	assert.Equal(t, 0, book.AvailableCopies)
	member, _ := c.GetMember("M002")
	assert.Empty(t, member.Borrowed)
}

func TestIssueZeroCopyBook(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.AddBook(NewBook("B000", "Ghost", "Nobody", "0", 2000, 0)))
	require.NoError(t, c.AddMember(NewMember("M001", "A", "a@x", "1")))

	assert.ErrorIs(t, c.Issue("M001", "B000"), ErrNoCopiesAvailable)
	assertInvariants(t, c)
}

func TestIssueLimitCheckedBeforeAvailability(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.AddBook(NewBook("B003", "Empty", "X", "3", 2000, 0)))
	for i := 0; i < MaxBooks; i++ {
		require.NoError(t, c.Issue("M001", "B001"))
	}

	assert.ErrorIs(t, c.Issue("M001", "B003"), ErrBorrowLimitExceeded)
}

func TestIssueReturnNotFound(t *testing.T) {
	c := sampleCatalog(t)

	tests := []struct {
		name     string
		memberID string
		bookID   string
	}{
		{"unknown member", "M999", "B001"},
		{"unknown book", "M001", "B999"},
		{"both unknown", "M999", "B999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, c.Issue(tt.memberID, tt.bookID), ErrNotFound)
			assert.ErrorIs(t, c.Return(tt.memberID, tt.bookID), ErrNotFound)
		})
	}
	book, _ := c.GetBook("B001")
	assert.Equal(t, 5, book.AvailableCopies)
}

func TestReturnRestoresState(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.Issue("M001", "B002"))
	before, _ := c.GetMember("M001")
	require.NoError(t, c.Issue("M001", "B001"))

	require.NoError(t, c.Return("M001", "B001"))

	book, _ := c.GetBook("B001")
	assert.Equal(t, 5, book.AvailableCopies)
	after, _ := c.GetMember("M001")
	assert.Equal(t, before.Borrowed, after.Borrowed)
}

func TestReturnAfterSingleIssueEmptiesMember(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.Issue("M001", "B001"))

	require.NoError(t, c.Return("M001", "B001"))

	book, _ := c.GetBook("B001")
	assert.Equal(t, 5, book.AvailableCopies)
	member, _ := c.GetMember("M001")
	assert.Empty(t, member.Borrowed)
}

func TestReturnNotBorrowedByMember(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.Issue("M001", "B002"))

	err := c.Return("M001", "B001")

	assert.ErrorIs(t, err, ErrNotBorrowedByMember)
	book, _ := c.GetBook("B001")
	assert.Equal(t, 5, book.AvailableCopies)
	member, _ := c.GetMember("M001")
	assert.Equal(t, []string{"B002"}, member.Borrowed)
}

func TestReturnRemovesFirstOccurrenceOnly(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.Issue("M001", "B001"))
	require.NoError(t, c.Issue("M001", "B002"))
	require.NoError(t, c.Issue("M001", "B001"))

	require.NoError(t, c.Return("M001", "B001"))

	member, _ := c.GetMember("M001")
	assert.Equal(t, []string{"B002", "B001"}, member.Borrowed)
	book, _ := c.GetBook("B001")
	assert.Equal(t, 4, book.AvailableCopies)
}

func TestAddBookDuplicateRejected(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.Issue("M001", "B001"))

	err := c.AddBook(NewBook("B001", "Other", "Someone", "x", 2020, 10))

	assert.ErrorIs(t, err, ErrDuplicateID)
	book, _ := c.GetBook("B001")
	assert.Equal(t, "Effective Java", book.Title)
	assert.Equal(t, 4, book.AvailableCopies)
	assert.Len(t, c.Books(), 2)
}

func TestAddMemberDuplicateRejected(t *testing.T) {
	c := sampleCatalog(t)

	err := c.AddMember(NewMember("M001", "Jane Doe", "jane@email.com", "0"))

	assert.ErrorIs(t, err, ErrDuplicateID)
	member, _ := c.GetMember("M001")
	assert.Equal(t, "John Smith", member.Name)
	assert.Len(t, c.Members(), 1)
}

func TestAddNilRejected(t *testing.T) {
	c := NewCatalog()

	assert.ErrorIs(t, c.AddBook(nil), ErrInvalidRecord)
	assert.ErrorIs(t, c.AddMember(nil), ErrInvalidRecord)
}

func TestSearch(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.AddBook(NewBook("B003", "The Clean Coder", "Robert Martin", "978-0137081073", 2011, 2)))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title case-insensitive", "clean code", []string{"B002", "B003"}},
		{"author", "BLOCH", []string{"B001"}},
		{"author shared", "robert", []string{"B002", "B003"}},
		{"isbn substring", "0136083238", []string{"B002"}},
		{"isbn prefix matches all", "978-", []string{"B001", "B002", "B003"}},
		{"no match", "python", []string{}},
		{"empty query matches all", "", []string{"B001", "B002", "B003"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, b := range c.Search(tt.query) {
				got = append(got, b.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchClean(t *testing.T) {
	c := sampleCatalog(t)

	res := c.Search("clean")

	require.Len(t, res, 1)
	assert.Equal(t, "Clean Code", res[0].Title)
	assert.Equal(t, "Robert Martin", res[0].Author)
}

func TestSearchIsbnIsCaseSensitive(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.AddBook(NewBook("B010", "Title", "Author", "ABC-123", 2000, 1)))

	assert.Empty(t, c.Search("ABC-123x"))
	// The query is lowered before matching, so an upper-case ISBN cannot match.
	assert.Empty(t, c.Search("ABC"))
	assert.Len(t, c.Search("123"), 1)
}

func TestListAvailable(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.AddBook(NewBook("B1", "One", "A", "1", 2000, 1)))
	require.NoError(t, c.AddBook(NewBook("B2", "Two", "A", "2", 2000, 2)))
	require.NoError(t, c.AddBook(NewBook("B3", "Three", "A", "3", 2000, 1)))
	require.NoError(t, c.AddMember(NewMember("M1", "Reader", "r@x", "1")))
	require.NoError(t, c.Issue("M1", "B1"))

	var ids []string
	for _, b := range c.ListAvailable() {
		ids = append(ids, b.ID)
	}

	assert.Equal(t, []string{"B2", "B3"}, ids)
}

func TestReadsReturnCopies(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.Issue("M001", "B001"))

	m, _ := c.GetMember("M001")
	m.Borrowed[0] = "B002"
	m.Borrowed = append(m.Borrowed, "B002", "B002", "B002")
	b, _ := c.GetBook("B001")
	b.AvailableCopies = 0

	fresh, _ := c.GetMember("M001")
	assert.Equal(t, []string{"B001"}, fresh.Borrowed)
	book, _ := c.GetBook("B001")
	assert.Equal(t, 4, book.AvailableCopies)
	require.NoError(t, c.Issue("M001", "B001"))
}

func TestGetMemberNotFound(t *testing.T) {
	c := NewCatalog()

	_, err := c.GetMember("M404")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "M404")
}

func TestBorrowedBooks(t *testing.T) {
	c := sampleCatalog(t)
	require.NoError(t, c.Issue("M001", "B002"))
	require.NoError(t, c.Issue("M001", "B001"))

	books, err := c.BorrowedBooks("M001")

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "B002", books[0].ID)
	assert.Equal(t, 2, books[0].AvailableCopies)
	assert.Equal(t, "B001", books[1].ID)

	_, err = c.BorrowedBooks("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvariantsHoldAcrossMixedSequence(t *testing.T) {
	c := NewCatalog()
	require.NoError(t, c.AddBook(NewBook("B1", "One", "A", "1", 2000, 2)))
	require.NoError(t, c.AddBook(NewBook("B2", "Two", "A", "2", 2000, 1)))
	require.NoError(t, c.AddMember(NewMember("M1", "R1", "r1@x", "1")))
	require.NoError(t, c.AddMember(NewMember("M2", "R2", "r2@x", "2")))

	ops := []struct {
		issue            bool
		memberID, bookID string
	}{
		{true, "M1", "B1"}, {true, "M1", "B1"}, {true, "M2", "B1"},
		{true, "M2", "B2"}, {true, "M1", "B2"}, {false, "M1", "B2"},
		{false, "M2", "B2"}, {false, "M2", "B2"}, {true, "M1", "B2"},
		{true, "M1", "B1"}, {false, "M1", "B1"}, {false, "M1", "B1"},
		{false, "M1", "B1"}, {true, "M2", "B1"},
	}
	for _, op := range ops {
		if op.issue {
			_ = c.Issue(op.memberID, op.bookID)
		} else {
			_ = c.Return(op.memberID, op.bookID)
		}
		assertInvariants(t, c)
	}
}
