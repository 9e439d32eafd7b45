// Package source supplies score snapshots from files, stdin or SQL tables.
package source

import (
	"errors"
	"os"

	"github.com/huangsam/wordboard/internal/contract"
)

// ErrNoSource is returned when no snapshot source was configured.
var ErrNoSource = errors.New("no snapshot source configured; pass --source <file>, --source - or --source db")

// NewSource builds the snapshot source selected by the configuration.
func NewSource(cfg *contract.Config) (contract.SnapshotSource, error) {
	switch cfg.Source {
	case "":
		return nil, ErrNoSource
	case contract.StdinSource:
		return NewStreamSource(os.Stdin), nil
	case contract.DBSource:
		return NewSQLSource(cfg.SourceBackend, cfg.SourceDBConnect, cfg.SourceTable)
	default:
		return NewFileSource(cfg.Source, cfg.SourceFormat)
	}
}
