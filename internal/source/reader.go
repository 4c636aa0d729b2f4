package source

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"jobscout/internal/common"
	"jobscout/internal/entity"
)

// Read loads job-posting URLs from a line-delimited text file or an
// XLSX workbook with a URL column, normalized into one ordered
// sequence. Blank lines are ignored and duplicates are dropped by
// exact string match, preserving first-seen order.
func Read(path string, logger *slog.Logger) ([]entity.JobSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, common.NewAppError(common.CodeSourceNotFound, path, common.ErrSourceNotFound)
	}

	var (
		urls []string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		urls, err = readWorkbook(path)
	default:
		urls, err = readLines(path)
	}
	if err != nil {
		return nil, common.WrapError(err, "read source "+path)
	}

	sources := normalize(urls)
	if len(sources) == 0 {
		return nil, common.NewAppError(common.CodeEmptySource, path, common.ErrEmptySource)
	}

	logger.Info("source.read.ok", "path", path, "urls", len(sources))
	return sources, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// readWorkbook pulls the column whose header mentions "url" from the
// first sheet, falling back to the first column when no header matches.
func readWorkbook(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := 0
	for i, h := range rows[0] {
		if strings.Contains(strings.ToLower(h), "url") {
			col = i
			break
		}
	}

	var out []string
	for _, row := range rows[1:] {
		if col < len(row) {
			out = append(out, row[col])
		}
	}
	return out, nil
}

func normalize(urls []string) []entity.JobSource {
	seen := make(map[string]bool, len(urls))
	var out []entity.JobSource
	for _, raw := range urls {
		u := strings.TrimSpace(raw)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, entity.JobSource{
			Index:  len(out),
			URL:    u,
			Origin: Classify(u),
		})
	}
	return out
}
