// Package library provides the SQLite-backed media catalog and implements
// the media.Source contract over it: asynchronous children delivery,
// point lookups, search, and change watching.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/mediadeck/pkg/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id        TEXT PRIMARY KEY,
	parent_id TEXT REFERENCES nodes(id),
	title     TEXT NOT NULL,
	subtitle  TEXT NOT NULL DEFAULT '',
	browsable INTEGER NOT NULL DEFAULT 0,
	playable  INTEGER NOT NULL DEFAULT 0,
	uri       TEXT NOT NULL DEFAULT '',
	ord       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id, ord);
`

// Catalog is the media content tree stored in SQLite.
type Catalog struct {
	db   *sql.DB
	path string
}

// OpenCatalog opens an existing catalog read-only.
func OpenCatalog(path string) (*Catalog, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot open catalog: %w", err)
	}
	return &Catalog{db: db, path: path}, nil
}

// CreateCatalog opens (or creates) a catalog read-write and ensures the
// schema exists. Used by the importer.
func CreateCatalog(path string) (*Catalog, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot create catalog: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}
	return &Catalog{db: db, path: path}, nil
}

// Path returns the catalog file path.
func (c *Catalog) Path() string { return c.path }

// Close closes the database.
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

const itemColumns = "id, title, subtitle, browsable, playable, uri"

func scanItem(row interface{ Scan(...any) error }) (media.Item, error) {
	var it media.Item
	var browsable, playable int
	err := row.Scan(&it.ID, &it.Title, &it.Subtitle, &browsable, &playable, &it.URI)
	if err != nil {
		return media.Item{}, err
	}
	it.Browsable = browsable != 0
	it.Playable = playable != 0
	return it, nil
}

// Root returns the catalog's root node (the single node with no parent).
func (c *Catalog) Root(ctx context.Context) (media.Item, error) {
	row := c.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM nodes WHERE parent_id IS NULL ORDER BY ord LIMIT 1")
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return media.Item{}, fmt.Errorf("catalog has no root node")
	}
	if err != nil {
		return media.Item{}, fmt.Errorf("loading root: %w", err)
	}
	return it, nil
}

// Children returns the ordered children of a node.
func (c *Catalog) Children(nodeID string) ([]media.Item, error) {
	rows, err := c.db.Query(
		"SELECT "+itemColumns+" FROM nodes WHERE parent_id = ? ORDER BY ord, title", nodeID)
	if err != nil {
		return nil, fmt.Errorf("loading children of %s: %w", nodeID, err)
	}
	defer rows.Close()
	var items []media.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning child of %s: %w", nodeID, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Item looks up one node by ID.
func (c *Catalog) Item(id string) (media.Item, bool) {
	row := c.db.QueryRow("SELECT "+itemColumns+" FROM nodes WHERE id = ?", id)
	it, err := scanItem(row)
	if err != nil {
		return media.Item{}, false
	}
	return it, true
}

// Search returns nodes whose title or subtitle contains the query,
// case-insensitively, ordered by title.
func (c *Catalog) Search(query string) ([]media.Item, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}
	pattern := "%" + escapeLike(q) + "%"
	rows, err := c.db.Query(
		"SELECT "+itemColumns+` FROM nodes
		 WHERE (title LIKE ? ESCAPE '\' OR subtitle LIKE ? ESCAPE '\')
		   AND parent_id IS NOT NULL
		 ORDER BY title`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	defer rows.Close()
	var items []media.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Insert writes one node. The importer is its only caller; browse-time
// access is read-only.
func (c *Catalog) Insert(parentID string, it media.Item, ord int) error {
	var parent any
	if parentID != "" {
		parent = parentID
	}
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO nodes (id, parent_id, title, subtitle, browsable, playable, uri, ord)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, parent, it.Title, it.Subtitle, boolInt(it.Browsable), boolInt(it.Playable), it.URI, ord)
	if err != nil {
		return fmt.Errorf("inserting node %s: %w", it.ID, err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// escapeLike escapes LIKE metacharacters in user-entered search text.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
