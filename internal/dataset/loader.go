package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/csvdeck/csvdeck/internal/core/errx"
	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

// numericThreshold is the share of non-empty cells that must parse for a
// column to be typed numeric (or datetime). Stray malformed cells below the
// threshold become missing values instead of demoting the column.
const numericThreshold = 0.5

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// Load reads the CSV at path into a Table. The delimiter is sniffed from the
// header line and the first row is always treated as the header. Failures to
// open or parse the file, and files without data rows, yield a data error.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errx.Wrap(errx.KindData, err, "open csv %q", path)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, err
	}
	logx.Debug().Str("path", path).Int("rows", t.RowCount()).Int("columns", len(t.Columns)).Msg("csv loaded")
	return t, nil
}

// Read parses CSV content from r. Split out from Load so tests and callers
// holding in-memory data skip the filesystem.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, errx.Wrap(errx.KindData, err, "read csv header")
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(header)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errx.Wrap(errx.KindData, err, "parse csv")
	}
	if len(records) < 2 {
		return nil, errx.New(errx.KindData, "csv contains no data rows")
	}

	names := records[0]
	rows := records[1:]

	t := &Table{rows: len(rows), Columns: make([]Column, len(names))}
	for i, name := range names {
		raw := make([]string, len(rows))
		for j, rec := range rows {
			// short records leave trailing cells missing
			if i < len(rec) {
				raw[j] = strings.TrimSpace(rec[i])
			}
		}
		t.Columns[i] = inferColumn(strings.TrimSpace(name), raw)
	}
	return t, nil
}

// sniffDelimiter picks the candidate separator occurring most often in the
// header line. Defaults to comma.
func sniffDelimiter(header []byte) rune {
	line := string(header)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, c := range []rune{';', '\t', '|'} {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

func inferColumn(name string, raw []string) Column {
	col := Column{Name: name, Raw: raw}

	nonEmpty, numeric, datetime := 0, 0, 0
	for _, v := range raw {
		if v == "" {
			continue
		}
		nonEmpty++
		if _, err := parseNumber(v); err == nil {
			numeric++
		} else if _, ok := parseTime(v); ok {
			datetime++
		}
	}
	if nonEmpty == 0 {
		col.Type = Categorical
		return col
	}

	switch {
	case float64(numeric)/float64(nonEmpty) > numericThreshold:
		col.Type = Numeric
		col.Numbers = make([]float64, len(raw))
		for i, v := range raw {
			n, err := parseNumber(v)
			if v == "" || err != nil {
				n = math.NaN()
			}
			col.Numbers[i] = n
		}
	case float64(datetime)/float64(nonEmpty) > numericThreshold:
		col.Type = Datetime
		col.Times = make([]time.Time, len(raw))
		for i, v := range raw {
			if ts, ok := parseTime(v); ok {
				col.Times[i] = ts
			}
		}
	default:
		col.Type = Categorical
	}
	return col
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
