package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	postmodel "blogpress-backend/internal/domains/post/model"
	settingsmodel "blogpress-backend/internal/domains/settings/model"
	"blogpress-backend/internal/domains/sync/model"
)

// Header signatures. Kind detection is by the first header row, compared
// case-insensitively after trimming.
var (
	settingsHeader = []string{"Settings", "type", "value"}
	postsHeader    = []string{"slug", "title", "author", "content", "published", "featured", "updated_at"}
)

// parsedSheet is the typed outcome of one sheet parse. Raw holds the original
// CSV text so snapshots stay byte-for-byte faithful to what was submitted; it
// is empty for xlsx uploads, which have no CSV form of their own.
type parsedSheet struct {
	Kind     string
	Raw      []byte
	Posts    []postmodel.UpsertRow
	Settings []settingsmodel.Entry
}

// parseCSV reads a whole sheet. Ragged rows are tolerated: short rows are
// padded, long rows truncated. An unrecognized header fails the parse before
// anything is written.
func parseCSV(data []byte) (*parsedSheet, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		records = append(records, record)
	}

	sheet, err := parseRecords(records)
	if err != nil {
		return nil, err
	}
	sheet.Raw = data

	return sheet, nil
}

// parseXLSX reads the first worksheet of an xlsx workbook.
func parseXLSX(data []byte) (*parsedSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, model.ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}

	return parseRecords(rows)
}

func parseRecords(records [][]string) (*parsedSheet, error) {
	records = dropEmptyRows(records)
	if len(records) == 0 {
		return nil, model.ErrEmptySheet
	}

	header := records[0]
	body := records[1:]

	switch {
	case headerMatches(header, settingsHeader):
		if len(body) == 0 {
			return nil, model.ErrEmptySheet
		}
		return &parsedSheet{
			Kind:     model.KindSettings,
			Settings: parseSettingsRows(body),
		}, nil

	case headerMatches(header, postsHeader):
		if len(body) == 0 {
			return nil, model.ErrEmptySheet
		}
		return &parsedSheet{
			Kind:  model.KindPosts,
			Posts: parsePostRows(body),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownHeader, strings.Join(header, ","))
	}
}

func headerMatches(row, signature []string) bool {
	if len(row) < len(signature) {
		return false
	}
	for i, want := range signature {
		if !strings.EqualFold(strings.TrimSpace(row[i]), want) {
			return false
		}
	}
	return true
}

func parseSettingsRows(rows [][]string) []settingsmodel.Entry {
	entries := make([]settingsmodel.Entry, 0, len(rows))
	for _, row := range rows {
		row = padRow(row, 3)
		entries = append(entries, settingsmodel.Entry{
			Key:   strings.TrimSpace(row[0]),
			Type:  strings.TrimSpace(row[1]),
			Value: strings.TrimSpace(row[2]),
		})
	}
	return entries
}

func parsePostRows(rows [][]string) []postmodel.UpsertRow {
	posts := make([]postmodel.UpsertRow, 0, len(rows))
	for _, row := range rows {
		row = padRow(row, 7)

		// Rows without a slug cannot be addressed and are skipped.
		slug := strings.TrimSpace(row[0])
		if slug == "" {
			continue
		}

		posts = append(posts, postmodel.UpsertRow{
			Slug:      slug,
			Title:     strings.TrimSpace(row[1]),
			Author:    strings.ToLower(strings.TrimSpace(row[2])),
			Content:   row[3],
			Published: parseSheetBool(row[4]),
			Featured:  parseSheetBool(row[5]),
			UpdatedAt: parseSheetTime(row[6]),
		})
	}
	return posts
}

func padRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}

func parseSheetBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

var sheetTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseSheetTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range sheetTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

func dropEmptyRows(records [][]string) [][]string {
	out := records[:0]
	for _, row := range records {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
