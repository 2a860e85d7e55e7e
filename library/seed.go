package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Seed is the start-up content of a catalog, usually read from a YAML file.
type Seed struct {
	Books   []SeedBook   `yaml:"books"`
	Members []SeedMember `yaml:"members"`
}

type SeedBook struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	ISBN   string `yaml:"isbn"`
	Year   int    `yaml:"year"`
	Copies int    `yaml:"copies"`
}

type SeedMember struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

// SampleSeed is the catalog the interactive program starts with when no seed
// file is configured.
func SampleSeed() Seed {
	return Seed{
		Books: []SeedBook{
			{ID: "B001", Title: "Effective Java", Author: "Joshua Bloch", ISBN: "978-0134686097", Year: 2018, Copies: 5},
			{ID: "B002", Title: "Clean Code", Author: "Robert Martin", ISBN: "978-0136083238", Year: 2008, Copies: 3},
		},
		Members: []SeedMember{
			{ID: "M001", Name: "John Smith", Email: "john@email.com", Phone: "1234567890"},
		},
	}
}

// LoadSeed decodes a YAML seed document from r.
func LoadSeed(r io.Reader) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return Seed{}, nil
		}
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	return s, nil
}

// LoadSeedFile reads the seed at path.
func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Seed{}, err
	}
	defer f.Close()
	return LoadSeed(f)
}

// Apply adds every book and member to c, stopping at the first failure.
func (s Seed) Apply(c *Catalog) error {
	for _, b := range s.Books {
		if err := c.AddBook(NewBook(b.ID, b.Title, b.Author, b.ISBN, b.Year, b.Copies)); err != nil {
			return err
		}
	}
	for _, m := range s.Members {
		if err := c.AddMember(NewMember(m.ID, m.Name, m.Email, m.Phone)); err != nil {
			return err
		}
	}
	return nil
}
