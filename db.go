package mapscreator

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Cache records the source CRC of every texture packed by a scan so
// unchanged textures can be skipped.
type Cache struct {
	db *sql.DB
}

// Record is a cached run.
type Record struct {
	Name       string
	CRC        string
	AlphaGroup AlphaGroup
	Written    MapSet
}

// NewCache opens or creates the cache database in file
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	// Workers share the one connection rather than fight over the lock
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, alpha INTEGER NOT NULL, maps INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the record for texture name, or nil if there isn't one
func (c *Cache) Lookup(name string) (*Record, error) {
	r := Record{Name: name}
	switch err := c.db.QueryRow("SELECT crc, alpha, maps FROM texture WHERE name = ?", name).Scan(&r.CRC, &r.AlphaGroup, &r.Written); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &r, nil
	default:
		return nil, err
	}
}

// Store records a successful run for texture with the given source CRC
func (c *Cache) Store(crc string, result *Result) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO texture (name, crc, alpha, maps) VALUES (?, ?, ?, ?)", result.Name, crc, int(result.AlphaGroup), int(result.Written)); err != nil {
		return err
	}
	return nil
}

// Forget removes the record for texture name
func (c *Cache) Forget(name string) error {
	_, err := c.db.Exec("DELETE FROM texture WHERE name = ?", name)
	return err
}
