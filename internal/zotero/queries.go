package zotero

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// itemTags returns an item's tags in library order, duplicates collapsed.
func (l *Library) itemTags(ctx context.Context, itemID int64) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT tags.name
		FROM itemTags
		JOIN tags ON itemTags.tagID = tags.tagID
		WHERE itemTags.itemID = ?
		ORDER BY itemTags.tagID`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	seen := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// itemAuthors formats an item's creators as "First Last, First Last" in
// creator order. Single-field names (institutions) store a NULL firstName
// in Zotero, so both columns scan as nullable and the name passes through
// as-is.
func (l *Library) itemAuthors(ctx context.Context, itemID int64) (string, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT creators.firstName, creators.lastName
		FROM itemCreators
		JOIN creators ON itemCreators.creatorID = creators.creatorID
		WHERE itemCreators.itemID = ?
		ORDER BY itemCreators.orderIndex`, itemID)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var first, last sql.NullString
		if err := rows.Scan(&first, &last); err != nil {
			return "", err
		}
		name := strings.TrimSpace(first.String + " " + last.String)
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", "), rows.Err()
}

// itemAttachment returns a zotero:// deep link to the item's first stored
// attachment, or "" when the item has none.
func (l *Library) itemAttachment(ctx context.Context, itemID int64) (string, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT items.key
		FROM itemAttachments
		JOIN items ON itemAttachments.itemID = items.itemID
		WHERE itemAttachments.parentItemID = ?
		ORDER BY itemAttachments.itemID
		LIMIT 1`, itemID)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		return "", rows.Err()
	}
	var key string
	if err := rows.Scan(&key); err != nil {
		return "", err
	}
	return fmt.Sprintf("zotero://open-pdf/library/items/%s", key), nil
}
