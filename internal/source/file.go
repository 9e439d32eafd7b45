package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
)

// FileSource reads a snapshot from a file on disk or from a stream such as stdin.
// The content is read once and reused by Fingerprint and Load.
type FileSource struct {
	path   string
	format schema.SourceFormat
	stream io.Reader // set for stdin; nil for files

	once sync.Once
	data []byte
	err  error
}

var _ contract.SnapshotSource = &FileSource{} // Compile-time check

// NewFileSource returns a source for a snapshot file. The format is inferred
// from the extension when it is auto.
func NewFileSource(path string, format schema.SourceFormat) (*FileSource, error) {
	resolved, err := resolveFormat(path, format)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, format: resolved}, nil
}

// NewStreamSource returns a source that reads a JSON snapshot from r.
func NewStreamSource(r io.Reader) *FileSource {
	return &FileSource{path: contract.StdinSource, format: schema.JSONFormat, stream: r}
}

// resolveFormat maps auto onto a concrete format using the file extension.
func resolveFormat(path string, format schema.SourceFormat) (schema.SourceFormat, error) {
	if format != schema.AutoFormat && format != "" {
		return format, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return schema.JSONFormat, nil
	case ".csv":
		return schema.CSVFormat, nil
	case ".parquet", ".pq":
		return schema.ParquetFormat, nil
	default:
		return "", fmt.Errorf("cannot infer snapshot format of %q; pass --source-format json, csv or parquet", path)
	}
}

// Format returns the concrete snapshot format.
func (fs *FileSource) Format() schema.SourceFormat {
	return fs.format
}

// Describe implements the SnapshotSource interface.
func (fs *FileSource) Describe() string {
	if fs.stream != nil {
		return "stdin"
	}
	return "file:" + fs.path
}

// read loads the raw bytes once.
func (fs *FileSource) read() ([]byte, error) {
	fs.once.Do(func() {
		if fs.stream != nil {
			fs.data, fs.err = io.ReadAll(fs.stream)
			if fs.err != nil {
				fs.err = fmt.Errorf("failed to read snapshot from stdin: %w", fs.err)
			}
			return
		}
		fs.data, fs.err = os.ReadFile(fs.path)
		if fs.err != nil {
			fs.err = fmt.Errorf("failed to read snapshot file %s: %w", fs.path, fs.err)
		}
	})
	return fs.data, fs.err
}

// Fingerprint implements the SnapshotSource interface as the SHA-256 of the content.
func (fs *FileSource) Fingerprint(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := fs.read()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Load implements the SnapshotSource interface.
func (fs *FileSource) Load(ctx context.Context) ([]schema.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.read()
	if err != nil {
		return nil, err
	}
	records, err := Decode(data, fs.format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fs.Describe(), err)
	}
	return records, nil
}
