// Package amfi downloads and parses the daily NAV feed published by the
// Association of Mutual Funds in India.
//
// The feed is one record per line, six fields separated by ';':
// scheme code, two ISIN columns, "Scheme Name - Plan", NAV, and the NAV
// date as dd-Mon-yyyy. Section headings, fund house names, and blank
// lines are interleaved with the records and are skipped.
package amfi

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/shazib/mftracker/date"
	"github.com/shopspring/decimal"
)

// FeedURL is the public NAV list for open ended schemes.
const FeedURL = "https://www.amfiindia.com/spages/NAVopen.txt"

// fieldCount is the number of ';' separated fields in a NAV record.
const fieldCount = 6

// Quote is one fund's published NAV for one day.
type Quote struct {
	SchemeCode string
	Name       string
	NAV        decimal.Decimal
	Date       date.Date
}

// ParseLine parses a single feed record. The scheme name keeps only the
// portion before the first '-', trimmed, so "ICICI Prudential Short
// Term-Growth" becomes "ICICI Prudential Short Term".
func ParseLine(line string) (Quote, error) {
	fields := strings.Split(strings.TrimSpace(line), ";")
	if len(fields) != fieldCount {
		return Quote{}, fmt.Errorf("amfi: record %q: want %d fields, got %d", line, fieldCount, len(fields))
	}
	name, _, _ := strings.Cut(fields[3], "-")
	nav, err := decimal.NewFromString(strings.TrimSpace(fields[4]))
	if err != nil {
		return Quote{}, fmt.Errorf("amfi: record %q: bad NAV: %w", line, err)
	}
	on, err := date.Parse(strings.TrimSpace(fields[5]))
	if err != nil {
		return Quote{}, fmt.Errorf("amfi: record %q: bad date: %w", line, err)
	}
	return Quote{
		SchemeCode: strings.TrimSpace(fields[0]),
		Name:       strings.TrimSpace(name),
		NAV:        nav,
		Date:       on,
	}, nil
}

// Filter returns the feed lines whose scheme-code field matches one of the
// tracked ids. The match is an exact comparison of the full first field:
// earlier shell revisions grepped with an unanchored alternation, which
// could match a short code as a substring of a longer one.
func Filter(feed string, ids []string) []string {
	tracked := make(map[string]bool, len(ids))
	for _, id := range ids {
		tracked[id] = true
	}
	var lines []string
	for line := range strings.Lines(feed) {
		line = strings.TrimRight(line, "\r\n")
		code, rest, found := strings.Cut(line, ";")
		if !found || !strings.Contains(rest, ";") {
			continue // heading, fund house name, or blank line
		}
		if tracked[strings.TrimSpace(code)] {
			lines = append(lines, line)
		}
	}
	return lines
}

// Parse parses filtered feed lines into quotes.
func Parse(lines []string) ([]Quote, error) {
	quotes := make([]Quote, 0, len(lines))
	for _, line := range lines {
		q, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// Digest returns a content hash of the given text. It is compared against
// the hash stored from the previous run to skip recomputation when the
// upstream feed has not moved.
func Digest(text string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(text)))
}
