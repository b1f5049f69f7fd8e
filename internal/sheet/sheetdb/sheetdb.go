// Package sheetdb is the tabular row store behind the sheet endpoint. It
// mimics a spreadsheet with one tab per collection: every record is one row
// whose payload column holds the entity's full JSON (the only column ever
// read back) plus a handful of derived columns kept readable for anyone
// eyeballing the table.
package sheetdb

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Sheet names, one per collection plus the config singleton.
const (
	SheetOrders        = "Orders"
	SheetMenus         = "Menus"
	SheetEmployees     = "Employees"
	SheetAnnouncements = "Announcements"
	SheetAdmins        = "Admins"
	SheetConfig        = "Config"
)

// Sheets lists every known sheet.
var Sheets = []string{
	SheetOrders, SheetMenus, SheetEmployees, SheetAnnouncements, SheetAdmins, SheetConfig,
}

// Row is one spreadsheet row. Payload is the source of truth; the readable
// columns are derived on write and never read back.
type Row struct {
	ID        uint   `gorm:"primaryKey"`
	Sheet     string `gorm:"size:32;not null;index:idx_sheet_position,priority:1"`
	Position  int    `gorm:"not null;index:idx_sheet_position,priority:2"`
	Payload   string `gorm:"type:text;not null"`
	Readable1 string `gorm:"size:255"`
	Readable2 string `gorm:"size:255"`
	Readable3 string `gorm:"size:255"`
	Readable4 string `gorm:"size:255"`
	Readable5 string `gorm:"size:255"`
	Readable6 string `gorm:"size:255"`
}

// DB wraps the GORM handle with sheet-shaped operations.
type DB struct {
	gdb *gorm.DB
}

// Open migrates the rows table and returns the store.
func Open(gdb *gorm.DB) (*DB, error) {
	if err := gdb.AutoMigrate(&Row{}); err != nil {
		return nil, fmt.Errorf("sheetdb: migrate: %w", err)
	}
	return &DB{gdb: gdb}, nil
}

// Rows returns the payload column of every row of a sheet, in position
// order. Rows whose payload no longer parses are skipped, not surfaced:
// a hand-mangled row must not take the whole collection down.
func (d *DB) Rows(sheet string) ([]json.RawMessage, error) {
	var payloads []string
	err := d.gdb.Model(&Row{}).
		Where("sheet = ?", sheet).
		Order("position").
		Pluck("payload", &payloads).Error
	if err != nil {
		return nil, fmt.Errorf("sheetdb: rows %s: %w", sheet, err)
	}

	out := make([]json.RawMessage, 0, len(payloads))
	for _, p := range payloads {
		if json.Valid([]byte(p)) {
			out = append(out, json.RawMessage(p))
		}
	}
	return out, nil
}

// Append adds one row at the end of a sheet.
func (d *DB) Append(sheet string, payload json.RawMessage, readable []string) error {
	return d.gdb.Transaction(func(tx *gorm.DB) error {
		var max int
		if err := tx.Model(&Row{}).
			Where("sheet = ?", sheet).
			Select("COALESCE(MAX(position), 0)").
			Scan(&max).Error; err != nil {
			return fmt.Errorf("sheetdb: append %s: %w", sheet, err)
		}

		row := newRow(sheet, max+1, payload, readable)
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("sheetdb: append %s: %w", sheet, err)
		}
		return nil
	})
}

// Replace clears a sheet and writes the given payloads as its new contents,
// atomically. An empty list leaves the sheet empty.
func (d *DB) Replace(sheet string, payloads []json.RawMessage, readables [][]string) error {
	return d.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet = ?", sheet).Delete(&Row{}).Error; err != nil {
			return fmt.Errorf("sheetdb: clear %s: %w", sheet, err)
		}
		if len(payloads) == 0 {
			return nil
		}

		rows := make([]Row, 0, len(payloads))
		for i, p := range payloads {
			var readable []string
			if i < len(readables) {
				readable = readables[i]
			}
			rows = append(rows, newRow(sheet, i+1, p, readable))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("sheetdb: replace %s: %w", sheet, err)
		}
		return nil
	})
}

// Config returns the config map stored in the Config sheet's single row.
// Missing or unparseable config is an empty map, never an error.
func (d *DB) Config() (map[string]any, error) {
	rows, err := d.Rows(SheetConfig)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return map[string]any{}, nil
	}

	var cfg map[string]any
	if err := json.Unmarshal(rows[0], &cfg); err != nil {
		return map[string]any{}, nil
	}
	return cfg, nil
}

// SetConfig replaces the Config sheet with the given map as its one row.
func (d *DB) SetConfig(cfg map[string]any) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("sheetdb: encode config: %w", err)
	}
	return d.Replace(SheetConfig, []json.RawMessage{payload}, nil)
}

func newRow(sheet string, position int, payload json.RawMessage, readable []string) Row {
	row := Row{Sheet: sheet, Position: position, Payload: string(payload)}

	cols := []*string{
		&row.Readable1, &row.Readable2, &row.Readable3,
		&row.Readable4, &row.Readable5, &row.Readable6,
	}
	for i, v := range readable {
		if i >= len(cols) {
			break
		}
		*cols[i] = v
	}
	return row
}
