package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/parquet"
	"github.com/huangsam/wordboard/schema"
)

// ErrEmptySnapshot is returned when a snapshot file has no content at all.
var ErrEmptySnapshot = errors.New("snapshot is empty")

// jsonRecord mirrors schema.ScoreRecord with lenient field types.
type jsonRecord struct {
	Name         string          `json:"name"`
	Guesses      json.RawMessage `json:"guesses"`
	DNF          json.RawMessage `json:"dnf"`
	SubmittedAt  json.RawMessage `json:"submittedAt"`
	PuzzleNumber json.RawMessage `json:"puzzleNumber"`
}

// jsonEnvelope is the object form of a JSON snapshot.
type jsonEnvelope struct {
	Scores []jsonRecord `json:"scores"`
}

// DecodeJSON parses a JSON snapshot: either an array of records or an
// object with a "scores" array.
func DecodeJSON(data []byte) ([]schema.ScoreRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptySnapshot
	}

	var raw []jsonRecord
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode JSON records: %w", err)
		}
	case '{':
		var env jsonEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to decode JSON snapshot: %w", err)
		}
		raw = env.Scores
	default:
		return nil, fmt.Errorf("JSON snapshot must be an array or an object with a \"scores\" field")
	}

	records := make([]schema.ScoreRecord, len(raw))
	for i, r := range raw {
		records[i] = schema.ScoreRecord{
			Name:         r.Name,
			Guesses:      parseGuesses(rawText(r.Guesses)),
			DNF:          parseDNF(rawText(r.DNF)),
			SubmittedAt:  rawString(r.SubmittedAt),
			PuzzleNumber: rawText(r.PuzzleNumber),
		}
	}
	return records, nil
}

// rawString returns msg when it holds a JSON string and "" otherwise.
// Objects and numbers leave the record without a usable timestamp, so it is excluded later.
func rawString(msg json.RawMessage) string {
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return ""
	}
	return s
}

// rawText returns the scalar text of a JSON value: strings are unquoted,
// null and absent values become "".
func rawText(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	text := string(bytes.TrimSpace(msg))
	if text == "null" {
		return ""
	}
	return text
}

// parseGuesses converts a guess cell into the raw guess value.
// Anything that is not a number becomes nil, which normalizes to a DNF.
func parseGuesses(text string) *float64 {
	text = strings.TrimSpace(text)
	switch strings.ToLower(text) {
	case "", "null", "undefined", "nan":
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

// parseDNF reads a did-not-finish cell. Empty and unreadable values mean false,
// leaving the outcome to the guess count.
func parseDNF(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	v, err := contract.ParseBoolString(text)
	if err != nil {
		return false
	}
	return v
}

// csvColumns maps accepted header names onto record fields.
var csvColumns = map[string]string{
	"name":          "name",
	"player":        "name",
	"guesses":       "guesses",
	"dnf":           "dnf",
	"submittedat":   "submittedAt",
	"submitted_at":  "submittedAt",
	"puzzlenumber":  "puzzleNumber",
	"puzzle_number": "puzzleNumber",
}

// DecodeCSV parses a CSV snapshot with a header row.
// Required columns are name and submittedAt; guesses, dnf and puzzleNumber are optional.
func DecodeCSV(r io.Reader) ([]schema.ScoreRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if field, ok := csvColumns[key]; ok {
			index[field] = i
		}
	}
	for _, required := range []string{"name", "submittedAt"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing the %q column", required)
		}
	}

	cell := func(row []string, field string) string {
		i, ok := index[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []schema.ScoreRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		records = append(records, schema.ScoreRecord{
			Name:         cell(row, "name"),
			Guesses:      parseGuesses(cell(row, "guesses")),
			DNF:          parseDNF(cell(row, "dnf")),
			SubmittedAt:  cell(row, "submittedAt"),
			PuzzleNumber: cell(row, "puzzleNumber"),
		})
	}
	return records, nil
}

// DecodeParquet parses a Parquet snapshot held in memory.
func DecodeParquet(data []byte) ([]schema.ScoreRecord, error) {
	if len(data) == 0 {
		return nil, ErrEmptySnapshot
	}
	return parquet.ReadScores(bytes.NewReader(data))
}

// Decode parses a snapshot in the given concrete format.
func Decode(data []byte, format schema.SourceFormat) ([]schema.ScoreRecord, error) {
	switch format {
	case schema.JSONFormat:
		return DecodeJSON(data)
	case schema.CSVFormat:
		return DecodeCSV(bytes.NewReader(data))
	case schema.ParquetFormat:
		return DecodeParquet(data)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", format)
	}
}
