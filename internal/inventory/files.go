package inventory

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/util"
)

// WriteLines writes one value per line, creating parent directories.
func WriteLines(path string, lines []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// ReadLines reads a line file, trimming whitespace and dropping blanks.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return util.CleanLines(strings.Split(string(data), "\n")), nil
}

// WriteMergedCSV writes the merged dataset with a header row.
func WriteMergedCSV(path string, rows []model.MergedRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

// ReadMergedCSV reads a merged dataset written by WriteMergedCSV.
func ReadMergedCSV(path string) ([]model.MergedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []model.MergedRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
