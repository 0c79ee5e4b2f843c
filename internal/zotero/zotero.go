// Package zotero reads bibliographic records from a Zotero SQLite library.
//
// Access is strictly read-only: the database belongs to a live Zotero
// install that may be open elsewhere, so the connection is opened with
// mode=ro and a query_only pragma, and no statement other than SELECT is
// ever issued.
package zotero

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrSourceUnavailable indicates the library database cannot be opened at
// all. This is the only fatal error class; everything else degrades to a
// skipped record.
var ErrSourceUnavailable = errors.New("zotero library unavailable")

// eligibleTypes are the Zotero item types exported to the vault.
// Attachment and note rows are excluded separately.
var eligibleTypes = []string{
	"journalArticle",
	"conferencePaper",
	"report",
	"thesis",
	"book",
	"bookSection",
	"webpage",
	"preprint",
}

// Record is one library entry normalized for export.
type Record struct {
	Key      string // stable Zotero item key; the sole join key
	Title    string
	ItemType string
	Year     int // 0 when unknown
	Authors  string
	Abstract string
	Tags     []string
	DOI      string
	URL      string

	// Attachment is a zotero:// deep link to the item's first stored
	// attachment, empty when the item has none.
	Attachment string
}

// Library is a read-only handle on a Zotero database.
type Library struct {
	db *sql.DB
}

// Open opens the Zotero database at path read-only.
func Open(path string) (*Library, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	dsn := "file:" + path + "?mode=ro&_pragma=query_only(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	// sql.Open is lazy; verify we can actually talk to the file.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return &Library{db: db}, nil
}

// Close releases the database handle.
func (l *Library) Close() error {
	return l.db.Close()
}

// WarnFunc receives a message for each skipped or partially read record.
type WarnFunc func(format string, args ...any)

// Records returns all eligible records in library order, plus the number of
// records excluded as malformed.
//
// Individual malformed rows are reported through warn and skipped; they
// never abort the read. Recoverable problems (an unparsable date, a failed
// creators or attachments lookup) also go through warn but the record is
// still exported with the affected field empty, and the skipped count does
// not include it. warn may be nil.
func (l *Library) Records(ctx context.Context, warn WarnFunc) ([]Record, int, error) {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(eligibleTypes)), ", ")
	query := fmt.Sprintf(`
		SELECT
			items.itemID,
			items.key,
			itemTypes.typeName,
			fields.fieldName,
			itemDataValues.value
		FROM items
		JOIN itemTypes ON items.itemTypeID = itemTypes.itemTypeID
		JOIN itemData ON items.itemID = itemData.itemID
		JOIN itemDataValues ON itemData.valueID = itemDataValues.valueID
		JOIN fields ON itemData.fieldID = fields.fieldID
		WHERE itemTypes.typeName IN (%s)
		AND items.itemID NOT IN (SELECT itemID FROM itemAttachments)
		AND items.itemID NOT IN (SELECT itemID FROM deletedItems)
		ORDER BY items.itemID, fields.fieldName`, placeholders)

	args := make([]any, len(eligibleTypes))
	for i, t := range eligibleTypes {
		args[i] = t
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var order []int64
	byID := make(map[int64]*Record)
	skipped := 0

	for rows.Next() {
		var (
			itemID    int64
			key       string
			typeName  string
			fieldName string
			value     string
		)
		if err := rows.Scan(&itemID, &key, &typeName, &fieldName, &value); err != nil {
			warn("skipping malformed row: %v", err)
			continue
		}

		rec, ok := byID[itemID]
		if !ok {
			rec = &Record{Key: key, ItemType: typeName}
			byID[itemID] = rec
			order = append(order, itemID)
		}
		applyField(rec, fieldName, value, warn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("read items: %w", err)
	}

	records := make([]Record, 0, len(order))
	for _, id := range order {
		rec := byID[id]
		if rec.Key == "" {
			warn("skipping item %d: no key", id)
			skipped++
			continue
		}

		rec.Tags, err = l.itemTags(ctx, id)
		if err != nil {
			warn("skipping %s: tags: %v", rec.Key, err)
			skipped++
			continue
		}
		if rec.Authors, err = l.itemAuthors(ctx, id); err != nil {
			warn("%s: creators: %v", rec.Key, err)
		}
		if rec.Attachment, err = l.itemAttachment(ctx, id); err != nil {
			warn("%s: attachments: %v", rec.Key, err)
		}

		records = append(records, *rec)
	}
	return records, skipped, nil
}

// applyField maps a Zotero metadata field onto the record.
func applyField(rec *Record, fieldName, value string, warn WarnFunc) {
	switch fieldName {
	case "title":
		rec.Title = value
	case "abstractNote":
		rec.Abstract = value
	case "DOI":
		rec.DOI = value
	case "url":
		rec.URL = value
	case "date":
		if year, ok := parseYear(value); ok {
			rec.Year = year
		} else if value != "" {
			warn("%s: unparsable date %q", rec.Key, value)
		}
	}
}

// parseYear extracts a 4-digit year from a Zotero date value, which may be
// "2021", "2021-05-01", or a free-form string with an embedded year.
func parseYear(value string) (int, bool) {
	for i := 0; i+4 <= len(value); i++ {
		if !allDigits(value[i : i+4]) {
			continue
		}
		// Reject a window inside a longer digit run.
		if i > 0 && isDigit(value[i-1]) {
			continue
		}
		if i+4 < len(value) && isDigit(value[i+4]) {
			continue
		}
		year, err := strconv.Atoi(value[i : i+4])
		if err == nil && year >= 1000 {
			return year, true
		}
	}
	return 0, false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
