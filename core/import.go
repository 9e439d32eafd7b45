package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/internal/source"
	"github.com/huangsam/wordboard/schema"
)

// SnapshotSink accepts score records, such as a SQL score table.
type SnapshotSink interface {
	EnsureTable(ctx context.Context) error
	Insert(ctx context.Context, records []schema.ScoreRecord) error
	Describe() string
}

// ExecuteImport copies a snapshot file (or stdin for "-") into the configured SQL score table.
func ExecuteImport(ctx context.Context, cfg *contract.Config, path string) error {
	var from contract.SnapshotSource
	if path == contract.StdinSource {
		from = source.NewStreamSource(os.Stdin)
	} else {
		fileSource, err := source.NewFileSource(path, cfg.SourceFormat)
		if err != nil {
			return err
		}
		from = fileSource
	}

	to, err := source.NewSQLSource(cfg.SourceBackend, cfg.SourceDBConnect, cfg.SourceTable)
	if err != nil {
		return err
	}
	_, err = ImportSnapshot(ctx, os.Stdout, from, to)
	return err
}

// ImportSnapshot loads every record of from and appends them to to.
// Records are copied as they are; invalid ones are excluded later, at ranking time.
func ImportSnapshot(ctx context.Context, out io.Writer, from contract.SnapshotSource, to SnapshotSink) (int, error) {
	records, err := from.Load(ctx)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%s has no records to import", from.Describe())
	}
	if err := to.EnsureTable(ctx); err != nil {
		return 0, err
	}
	if err := to.Insert(ctx, records); err != nil {
		return 0, err
	}
	_, _ = fmt.Fprintf(out, "Imported %d records from %s into %s\n", len(records), from.Describe(), to.Describe())
	return len(records), nil
}
