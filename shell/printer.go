package shell

import (
	"errors"
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	"library-catalog/library"
)

// Printer renders command results and errors.
type Printer interface {
	Result(w io.Writer, r Result)
	Error(w io.Writer, cmd Command, err error)
}

// NewPrinter returns the printer for format ("text" or "json").
func NewPrinter(format string) Printer {
	if format == "json" {
		return JSONPrinter{}
	}
	return TextPrinter{}
}

// ------------------ text ------------------

// TextPrinter writes the human-readable console messages.
type TextPrinter struct{}

func (TextPrinter) Result(w io.Writer, r Result) {
	switch r.Command {
	case AddBook:
		fmt.Fprintln(w, "Book added successfully!")
	case AddMember:
		fmt.Fprintln(w, "Member added successfully!")
	case IssueBook:
		fmt.Fprintln(w, "Book issued successfully!")
	case ReturnBook:
		fmt.Fprintln(w, "Book returned successfully!")
	case SearchBooks:
		if len(r.Books) == 0 {
			fmt.Fprintln(w, "No books found")
			return
		}
		fmt.Fprintln(w, "Search results:")
		printBooks(w, r.Books)
	case ViewMember:
		fmt.Fprintln(w, "\nMember Details:")
		if r.Member != nil {
			fmt.Fprintln(w, r.Member.String())
		}
		fmt.Fprintln(w, "Borrowed Books:")
		printBooks(w, r.Books)
	case ListAvailable:
		fmt.Fprintln(w, "Available Books:")
		printBooks(w, r.Books)
	case LoanHistory:
		if len(r.Loans) == 0 {
			fmt.Fprintln(w, "No loans recorded")
			return
		}
		fmt.Fprintf(w, "%-36s %-8s %-20s %-20s\n", "Loan", "Book", "Issued", "Returned")
		for _, l := range r.Loans {
			returned := "-"
			if l.ReturnedAt != nil {
				returned = l.ReturnedAt.Local().Format(time.DateTime)
			}
			fmt.Fprintf(w, "%-36s %-8s %-20s %-20s\n", l.ID, l.BookID, l.IssuedAt.Local().Format(time.DateTime), returned)
		}
	case Exit:
		fmt.Fprintln(w, "Exiting...")
	}
}

func printBooks(w io.Writer, books []library.Book) {
	for _, b := range books {
		fmt.Fprintln(w, b.String())
	}
}

func (TextPrinter) Error(w io.Writer, cmd Command, err error) {
	fmt.Fprintln(w, errorMessage(cmd, err))
}

func errorMessage(cmd Command, err error) string {
	switch {
	case errors.Is(err, library.ErrNotFound) && (cmd == ViewMember || cmd == LoanHistory):
		return "Member not found"
	case errors.Is(err, library.ErrNotFound):
		return "Member or book not found"
	case errors.Is(err, library.ErrBorrowLimitExceeded):
		return "Member has reached maximum borrowing limit"
	case errors.Is(err, library.ErrNoCopiesAvailable):
		return "No copies available"
	case errors.Is(err, library.ErrNotBorrowedByMember):
		return "This member didn't borrow this book"
	default:
		return "Error: " + err.Error()
	}
}

// ------------------ json ------------------

// JSONPrinter writes one JSON object per result, for scripted use.
type JSONPrinter struct{}

type jsonResult struct {
	OK      bool            `json:"ok"`
	Command string          `json:"command,omitempty"`
	Error   string          `json:"error,omitempty"`
	Member  *library.Member `json:"member,omitempty"`
	Books   []library.Book  `json:"books,omitempty"`
	Loans   []library.Loan  `json:"loans,omitempty"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (JSONPrinter) Result(w io.Writer, r Result) {
	writeJSON(w, jsonResult{
		OK:      true,
		Command: r.Command.String(),
		Member:  r.Member,
		Books:   r.Books,
		Loans:   r.Loans,
	})
}

func (JSONPrinter) Error(w io.Writer, cmd Command, err error) {
	writeJSON(w, jsonResult{Command: cmd.String(), Error: err.Error()})
}

func writeJSON(w io.Writer, v jsonResult) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, "{\"ok\":false,\"error\":%q}\n", err.Error())
	}
}
