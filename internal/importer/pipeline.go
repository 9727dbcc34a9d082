package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bankcsv/bankcsv/internal/charset"
	"github.com/bankcsv/bankcsv/internal/config"
	"github.com/bankcsv/bankcsv/internal/model"
	"github.com/bankcsv/bankcsv/internal/profile"
	"github.com/bankcsv/bankcsv/internal/statement"
)

// ErrAccountRequired is returned for banks whose exports carry no account
// number when the caller supplied none either.
var ErrAccountRequired = errors.New("account setting required")

// Pipeline parses bank exports into statements. A Pipeline holds no state
// between parses and may be used from several goroutines.
type Pipeline struct {
	log zerolog.Logger

	// AllowEmpty returns a statement without balances or dates instead of
	// statement.ErrEmptyStatement when no row produced a record.
	AllowEmpty bool
}

// New creates a Pipeline logging to log.
func New(log zerolog.Logger) *Pipeline {
	return &Pipeline{log: log}
}

// Result is a parsed statement and the profile that produced it.
type Result struct {
	Statement *model.Statement
	Profile   *profile.Profile
}

// Parse reads every row of r with profile prof and returns the finalized
// statement. The header starts out as seed. Any row that fails to map aborts
// the parse.
func (p *Pipeline) Parse(r io.Reader, prof *profile.Profile, seed statement.Header) (*model.Statement, error) {
	cr := csv.NewReader(r)
	cr.Comma = prof.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	acc := statement.NewAccumulator(seed)
	for index := 0; ; index++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s export: %w", prof.Name, err)
		}

		m, ok, err := MapRow(row, prof, index)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.log.Debug().Str("profile", prof.Name).Int("row", index+1).Msg("skipping row")
			continue
		}
		acc.Add(m.Record, m.Header)
	}

	if acc.Len() == 0 && p.AllowEmpty {
		return acc.Statement(), nil
	}
	stmt, err := acc.Finalize()
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", prof.Name, err)
	}
	return stmt, nil
}

// ParseBank selects the profile of bank b for the decoded export r, seeds the
// header from s and the bank defaults, and parses r.
func (p *Pipeline) ParseBank(r io.Reader, b *profile.Bank, s config.Settings) (*Result, error) {
	seed, err := Seed(b, s)
	if err != nil {
		return nil, err
	}

	prof := b.Profiles[0]
	if b.NeedsFirstLine() {
		br := bufio.NewReader(r)
		first, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading first line: %w", err)
		}
		prof = b.Profile(first)
		r = io.MultiReader(strings.NewReader(first), br)
	}
	p.log.Debug().Str("bank", b.Name).Str("profile", prof.Name).Msg("selected profile")

	stmt, err := p.Parse(r, prof, seed)
	if err != nil {
		return nil, err
	}
	return &Result{Statement: stmt, Profile: prof}, nil
}

// ParseFile opens path, decodes it with the charset from s (or the bank
// default) and parses it with ParseBank.
func (p *Pipeline) ParseFile(path string, b *profile.Bank, s config.Settings) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	r, err := charset.NewReader(f, s.Get(config.KeyCharset, b.Charset()))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	res, err := p.ParseBank(r, b, s)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return res, nil
}

// Seed returns the header a statement of bank b starts with. Settings take
// precedence over bank defaults.
func Seed(b *profile.Bank, s config.Settings) (statement.Header, error) {
	h := statement.Header{
		AccountID: s.Get(config.KeyAccount, b.DefaultAccount),
		BankID:    s.Get(config.KeyBank, b.BankID),
	}
	if b.AccountRequired && h.AccountID == "" {
		return statement.Header{}, fmt.Errorf("%s: %w", b.Name, ErrAccountRequired)
	}
	return h, nil
}
