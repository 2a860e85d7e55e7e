// Package shell is the console front end of the catalog: a numbered menu
// whose commands map one-to-one onto LibraryManager operations.
package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"library-catalog/library"
)

// Command is a menu entry.
type Command int

const (
	AddBook Command = iota + 1
	AddMember
	IssueBook
	ReturnBook
	SearchBooks
	ViewMember
	ListAvailable
	Exit
	LoanHistory
)

var commandNames = map[Command]string{
	AddBook:       "Add Book",
	AddMember:     "Add Member",
	IssueBook:     "Issue Book",
	ReturnBook:    "Return Book",
	SearchBooks:   "Search Books",
	ViewMember:    "View Member Details",
	ListAvailable: "Display Available Books",
	Exit:          "Exit",
	LoanHistory:   "View Loan History",
}

// menuOrder keeps Exit last on screen while its number stays 8.
var menuOrder = []Command{AddBook, AddMember, IssueBook, ReturnBook, SearchBooks, ViewMember, ListAvailable, LoanHistory, Exit}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand turns a menu choice such as "3" into a Command.
func ParseCommand(s string) (Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid choice %q", s)
	}
	c := Command(n)
	if _, ok := commandNames[c]; !ok {
		return 0, fmt.Errorf("invalid choice %q", s)
	}
	return c, nil
}

// Args carries the operands a command needs; unused fields are ignored.
type Args struct {
	BookID   string
	MemberID string
	Title    string
	Author   string
	ISBN     string
	Year     int
	Copies   int
	Name     string
	Email    string
	Phone    string
	Query    string
}

// Result is what a command produced, ready for a Printer.
type Result struct {
	Command Command
	Books   []library.Book
	Member  *library.Member
	Loans   []library.Loan
}

// Library is the part of *library.LibraryManager the shell drives.
type Library interface {
	AddBook(id, title, author, isbn string, year, copies int) error
	AddMember(id, name, email, phone string) error
	IssueBook(ctx context.Context, memberID, bookID string) (library.Loan, error)
	ReturnBook(ctx context.Context, memberID, bookID string) error
	SearchBooks(q string) []library.Book
	AvailableBooks() []library.Book
	MemberDetails(id string) (library.Member, []library.Book, error)
	LoanHistory(ctx context.Context, memberID string) ([]library.Loan, error)
}

var _ Library = (*library.LibraryManager)(nil)

// Dispatch runs cmd against lib. It performs no I/O of its own.
func Dispatch(ctx context.Context, lib Library, cmd Command, a Args) (Result, error) {
	res := Result{Command: cmd}
	switch cmd {
	case AddBook:
		return res, lib.AddBook(a.BookID, a.Title, a.Author, a.ISBN, a.Year, a.Copies)
	case AddMember:
		return res, lib.AddMember(a.MemberID, a.Name, a.Email, a.Phone)
	case IssueBook:
		loan, err := lib.IssueBook(ctx, a.MemberID, a.BookID)
		if err != nil {
			return res, err
		}
		res.Loans = []library.Loan{loan}
		return res, nil
	case ReturnBook:
		return res, lib.ReturnBook(ctx, a.MemberID, a.BookID)
	case SearchBooks:
		res.Books = lib.SearchBooks(a.Query)
		return res, nil
	case ViewMember:
		m, books, err := lib.MemberDetails(a.MemberID)
		if err != nil {
			return res, err
		}
		res.Member = &m
		res.Books = books
		return res, nil
	case ListAvailable:
		res.Books = lib.AvailableBooks()
		return res, nil
	case LoanHistory:
		loans, err := lib.LoanHistory(ctx, a.MemberID)
		if err != nil {
			return res, err
		}
		res.Loans = loans
		return res, nil
	case Exit:
		return res, nil
	default:
		return res, fmt.Errorf("unknown command %d", int(cmd))
	}
}
