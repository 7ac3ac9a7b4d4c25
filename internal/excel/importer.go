package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/drillbot/internal/database"
	"github.com/example/drillbot/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	SheetName        string // Name of the sheet to import (Excel only)
	TermColumn       string // Column with the term
	DefinitionColumn string // Column with the definition
	ListColumn       string // Column with the list name; empty disables it
	DefaultList      string // List for rows without a list name; defaults to the file name
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:        "Sheet1",
		TermColumn:       "A",
		DefinitionColumn: "B",
		ListColumn:       "C",
		StartRow:         2, // skip header
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	ListsCreated   int
	ListsUpdated   int
	Entries        int
	Skipped        int
	Errors         []string
}

// ParsedList is a list read from a file, entries in file order
type ParsedList struct {
	Name    string
	Entries []models.Entry
}

// ListStore is the part of the catalog the importer writes to
type ListStore interface {
	ByName(ctx context.Context, name string) (models.List, error)
	Create(ctx context.Context, name string) (int64, error)
	ReplaceEntries(ctx context.Context, listID int64, entries []models.Entry) error
}

// ReadLists parses an Excel or CSV file into lists. Rows with a missing term
// or definition are reported in the result and skipped.
func ReadLists(cfg ImportConfig) ([]ParsedList, *ImportResult, error) {
	rows, err := readRows(cfg)
	if err != nil {
		return nil, nil, err
	}

	cols, err := resolveColumns(cfg)
	if err != nil {
		return nil, nil, err
	}

	defaultList := cfg.DefaultList
	if defaultList == "" {
		base := filepath.Base(cfg.FilePath)
		defaultList = strings.TrimSuffix(base, filepath.Ext(base))
	}

	start := cfg.StartRow
	if start < 1 {
		start = 1
	}

	result := &ImportResult{Errors: make([]string, 0)}
	var lists []ParsedList
	index := make(map[string]int)

	for i, row := range rows {
		// Skip header rows
		if i < start-1 {
			continue
		}

		term := cell(row, cols.term)
		definition := cell(row, cols.definition)
		if term == "" && definition == "" {
			result.Skipped++
			continue
		}

		result.TotalProcessed++
		if term == "" || definition == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: empty term or definition", i+1))
			continue
		}

		name := defaultList
		if cols.list >= 0 {
			if v := cell(row, cols.list); v != "" {
				name = v
			}
		}

		pos, ok := index[name]
		if !ok {
			pos = len(lists)
			index[name] = pos
			lists = append(lists, ParsedList{Name: name})
		}
		lists[pos].Entries = append(lists[pos].Entries, models.Entry{
			Position:   len(lists[pos].Entries),
			Term:       term,
			Definition: definition,
		})
		result.Entries++
	}

	return lists, result, nil
}

// ImportLists reads the file and stores every list, replacing the entries of
// lists that already exist.
func ImportLists(ctx context.Context, store ListStore, cfg ImportConfig) (*ImportResult, error) {
	lists, result, err := ReadLists(cfg)
	if err != nil {
		return nil, err
	}

	for _, l := range lists {
		existing, err := store.ByName(ctx, l.Name)
		var id int64
		switch {
		case err == nil:
			id = existing.ID
			result.ListsUpdated++
		case errors.Is(err, database.ErrNotFound):
			id, err = store.Create(ctx, l.Name)
			if err != nil {
				return result, fmt.Errorf("create list %q: %w", l.Name, err)
			}
			result.ListsCreated++
		default:
			return result, fmt.Errorf("look up list %q: %w", l.Name, err)
		}

		if err := store.ReplaceEntries(ctx, id, l.Entries); err != nil {
			return result, fmt.Errorf("store list %q: %w", l.Name, err)
		}
	}

	return result, nil
}

type columns struct {
	term, definition, list int
}

func resolveColumns(cfg ImportConfig) (columns, error) {
	var cols columns
	var err error

	if cols.term, err = columnIndex(cfg.TermColumn); err != nil {
		return cols, fmt.Errorf("term column: %w", err)
	}
	if cols.definition, err = columnIndex(cfg.DefinitionColumn); err != nil {
		return cols, fmt.Errorf("definition column: %w", err)
	}
	cols.list = -1
	if cfg.ListColumn != "" {
		if cols.list, err = columnIndex(cfg.ListColumn); err != nil {
			return cols, fmt.Errorf("list column: %w", err)
		}
	}
	return cols, nil
}

// columnIndex converts a column name ("A", "AB") to a 0-based index
func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(name))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readRows(cfg ImportConfig) ([][]string, error) {
	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		return readCSV(cfg.FilePath)
	}
	return readExcel(cfg)
}

// readExcel returns all rows of the configured sheet
func readExcel(cfg ImportConfig) ([][]string, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSV returns all records of a CSV file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
