// Shared helpers for contactbook CLI commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/henrijaeger/contact-book/internal/paths"
	"github.com/henrijaeger/contact-book/pkg/contactbook"
	"github.com/henrijaeger/contact-book/pkg/types"
)

// databaseFileName is the SQLite file created inside the data directory.
const databaseFileName = "contact_book_db.sqlite"

// newLogger returns a console logger on stderr. Debug level requires the
// --verbose flag.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// openBook resolves the config and data directories, loads config.yaml,
// and returns a facade over the database file in the data directory.
func openBook() (*contactbook.Book, error) {
	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	return contactbook.New(filepath.Join(dataDir, databaseFileName), newLogger()), nil
}

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

// parseBirthdate accepts a YYYY-MM-DD calendar date and returns it as
// epoch seconds. An empty string means no birthdate.
func parseBirthdate(arg string) (int64, error) {
	if arg == "" {
		return 0, nil
	}
	t, err := time.ParseInLocation("2006-01-02", arg, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid birthdate %q, want YYYY-MM-DD: %w", arg, err)
	}
	return t.Unix(), nil
}

// printPerson writes a one-line summary of a person.
func printPerson(p *types.Person) {
	birthdate := "-"
	if p.Birthdate != 0 {
		birthdate = time.Unix(p.Birthdate, 0).Format("2006-01-02")
	}
	fmt.Printf("%s\t%s %s\tborn %s\tmodified %s\n",
		p.ID, p.FirstName, p.LastName, birthdate,
		time.Unix(p.ModificationDate, 0).Format(time.RFC3339))
}
