package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"library-catalog/library"
)

// seedcheck loads each seed file given on the command line into a fresh
// catalog and prints what the catalog would contain.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: seedcheck <seed.yaml> [more.yaml ...]")
		os.Exit(2)
	}
	if errs := check(os.Stdout, os.Args[1:]); errs > 0 {
		os.Exit(1)
	}
}

// check returns the number of files that failed.
func check(w io.Writer, paths []string) int {
	errorCount := 0
	for _, path := range paths {
		fmt.Fprintf(w, "Checking %s... ", path)

		seed, err := library.LoadSeedFile(path)
		if err != nil {
			fmt.Fprintf(w, "ERROR - %v\n", err)
			errorCount++
			continue
		}
		catalog := library.NewCatalog()
		if err := seed.Apply(catalog); err != nil {
			fmt.Fprintf(w, "ERROR - %v\n", err)
			errorCount++
			continue
		}

		books, members := catalog.Books(), catalog.Members()
		fmt.Fprintf(w, "OK (%d books, %d members)\n", len(books), len(members))
		printSummary(w, books, members)
	}

	fmt.Fprintf(w, "\nChecked %d file(s), errors: %d\n", len(paths), errorCount)
	return errorCount
}

func printSummary(w io.Writer, books []library.Book, members []library.Member) {
	if len(books) > 0 {
		fmt.Fprintf(w, "%-8s %-40s %-25s %-16s %6s\n", "ID", "Title", "Author", "ISBN", "Copies")
		fmt.Fprintln(w, strings.Repeat("-", 99))
		for _, b := range books {
			fmt.Fprintf(w, "%-8s %-40s %-25s %-16s %6d\n",
				b.ID, truncateString(b.Title, 40), truncateString(b.Author, 25), b.ISBN, b.TotalCopies)
		}
	}
	if len(members) > 0 {
		fmt.Fprintf(w, "%-8s %-30s %-30s\n", "ID", "Name", "Email")
		fmt.Fprintln(w, strings.Repeat("-", 70))
		for _, m := range members {
			fmt.Fprintf(w, "%-8s %-30s %-30s\n", m.ID, truncateString(m.Name, 30), truncateString(m.Email, 30))
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
