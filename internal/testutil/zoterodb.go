package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// ZoteroDB builds a miniature Zotero database for reader tests. It covers
// just the tables the reader queries.
type ZoteroDB struct {
	t    *testing.T
	db   *sql.DB
	Path string

	nextItemID  int64
	nextValueID int64
	typeIDs     map[string]int64
	fieldIDs    map[string]int64
	tagIDs      map[string]int64
	creatorIDs  int64
}

const zoteroSchema = `
CREATE TABLE itemTypes (itemTypeID INTEGER PRIMARY KEY, typeName TEXT);
CREATE TABLE fields (fieldID INTEGER PRIMARY KEY, fieldName TEXT);
CREATE TABLE items (itemID INTEGER PRIMARY KEY, itemTypeID INTEGER, key TEXT);
CREATE TABLE itemData (itemID INTEGER, fieldID INTEGER, valueID INTEGER);
CREATE TABLE itemDataValues (valueID INTEGER PRIMARY KEY, value);
CREATE TABLE tags (tagID INTEGER PRIMARY KEY, name TEXT);
CREATE TABLE itemTags (itemID INTEGER, tagID INTEGER);
CREATE TABLE deletedItems (itemID INTEGER PRIMARY KEY);
CREATE TABLE itemAttachments (itemID INTEGER PRIMARY KEY, parentItemID INTEGER, path TEXT);
CREATE TABLE creators (creatorID INTEGER PRIMARY KEY, firstName TEXT, lastName TEXT);
CREATE TABLE itemCreators (itemID INTEGER, creatorID INTEGER, orderIndex INTEGER);
`

// NewZoteroDB creates an empty fixture database in a temp directory.
func NewZoteroDB(t *testing.T) *ZoteroDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "zotero.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(zoteroSchema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}

	return &ZoteroDB{
		t:        t,
		db:       db,
		Path:     path,
		typeIDs:  make(map[string]int64),
		fieldIDs: make(map[string]int64),
		tagIDs:   make(map[string]int64),
	}
}

func (z *ZoteroDB) exec(query string, args ...any) {
	z.t.Helper()
	if _, err := z.db.Exec(query, args...); err != nil {
		z.t.Fatalf("fixture exec: %v", err)
	}
}

func (z *ZoteroDB) typeID(name string) int64 {
	if id, ok := z.typeIDs[name]; ok {
		return id
	}
	id := int64(len(z.typeIDs) + 1)
	z.typeIDs[name] = id
	z.exec(`INSERT INTO itemTypes (itemTypeID, typeName) VALUES (?, ?)`, id, name)
	return id
}

func (z *ZoteroDB) fieldID(name string) int64 {
	if id, ok := z.fieldIDs[name]; ok {
		return id
	}
	id := int64(len(z.fieldIDs) + 1)
	z.fieldIDs[name] = id
	z.exec(`INSERT INTO fields (fieldID, fieldName) VALUES (?, ?)`, id, name)
	return id
}

// AddItem inserts an item with metadata fields (Zotero field name -> value)
// and returns its itemID.
func (z *ZoteroDB) AddItem(key, typeName string, fields map[string]string) int64 {
	z.t.Helper()

	z.nextItemID++
	itemID := z.nextItemID
	z.exec(`INSERT INTO items (itemID, itemTypeID, key) VALUES (?, ?, ?)`,
		itemID, z.typeID(typeName), key)

	for name, value := range fields {
		z.nextValueID++
		z.exec(`INSERT INTO itemDataValues (valueID, value) VALUES (?, ?)`, z.nextValueID, value)
		z.exec(`INSERT INTO itemData (itemID, fieldID, valueID) VALUES (?, ?, ?)`,
			itemID, z.fieldID(name), z.nextValueID)
	}
	return itemID
}

// Tag associates a tag with an item.
func (z *ZoteroDB) Tag(itemID int64, name string) {
	z.t.Helper()
	id, ok := z.tagIDs[name]
	if !ok {
		id = int64(len(z.tagIDs) + 1)
		z.tagIDs[name] = id
		z.exec(`INSERT INTO tags (tagID, name) VALUES (?, ?)`, id, name)
	}
	z.exec(`INSERT INTO itemTags (itemID, tagID) VALUES (?, ?)`, itemID, id)
}

// Creator appends a two-field creator to an item.
func (z *ZoteroDB) Creator(itemID int64, first, last string) {
	z.t.Helper()
	z.addCreator(itemID, first, last)
}

// InstitutionCreator appends a single-field creator (fieldMode=1 in Zotero),
// which stores a NULL firstName.
func (z *ZoteroDB) InstitutionCreator(itemID int64, name string) {
	z.t.Helper()
	z.addCreator(itemID, nil, name)
}

func (z *ZoteroDB) addCreator(itemID int64, first any, last string) {
	z.creatorIDs++
	z.exec(`INSERT INTO creators (creatorID, firstName, lastName) VALUES (?, ?, ?)`,
		z.creatorIDs, first, last)
	var order int
	_ = z.db.QueryRow(`SELECT COUNT(*) FROM itemCreators WHERE itemID = ?`, itemID).Scan(&order)
	z.exec(`INSERT INTO itemCreators (itemID, creatorID, orderIndex) VALUES (?, ?, ?)`,
		itemID, z.creatorIDs, order)
}

// Attachment adds a child attachment item and returns its key.
func (z *ZoteroDB) Attachment(parentItemID int64, key string) {
	z.t.Helper()
	z.nextItemID++
	z.exec(`INSERT INTO items (itemID, itemTypeID, key) VALUES (?, ?, ?)`,
		z.nextItemID, z.typeID("attachment"), key)
	z.exec(`INSERT INTO itemAttachments (itemID, parentItemID, path) VALUES (?, ?, ?)`,
		z.nextItemID, parentItemID, "storage:paper.pdf")
}

// Delete marks an item as trashed.
func (z *ZoteroDB) Delete(itemID int64) {
	z.t.Helper()
	z.exec(`INSERT INTO deletedItems (itemID) VALUES (?)`, itemID)
}
