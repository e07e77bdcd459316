package plugin

/*
	FileSource

	Reads sequence documents from a directory, one JSON file per sequence.
	The file name without extension is the sequence ID.

	A document is an array of entries: a metadata header, the start
	position and the beats, see types.RawEntry.
*/

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	Sc "github.com/austencloud/tka-scribe-sub004/classifier"
	St "github.com/austencloud/tka-scribe-sub004/types"
)

type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Sequences decodes every .json file in Dir, ordered by ID.
// Undecodable files are logged and skipped.
func (src *FileSource) Sequences(ctx context.Context) ([]St.Sequence, error) {
	entries, err := os.ReadDir(src.Dir)
	if err != nil {
		return nil, fmt.Errorf("read sequence dir %s: %w", src.Dir, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)

	seqs := make([]St.Sequence, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seq, err := src.Sequence(ctx, id)
		if err != nil {
			slog.Warn("Skipping sequence file",
				slog.String("sequence", id),
				slog.Any("error", err))
			continue
		}
		seqs = append(seqs, seq)
	}

	slog.Info("FileSource loaded sequences",
		slog.String("dir", src.Dir),
		slog.Int("files", len(ids)),
		slog.Int("count", len(seqs)))
	return seqs, nil
}

// Sequence reads one document. The id must name a file directly inside Dir.
func (src *FileSource) Sequence(ctx context.Context, id string) (St.Sequence, error) {
	if !validID(id) {
		return St.Sequence{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	data, err := os.ReadFile(filepath.Join(src.Dir, id+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return St.Sequence{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return St.Sequence{}, err
	}
	return DecodeSequence(id, data)
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && filepath.IsLocal(id+".json")
}

// DecodeSequence extracts a sequence from one JSON document.
// An empty id falls back to the document's word.
func DecodeSequence(id string, data []byte) (St.Sequence, error) {
	var entries []St.RawEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Error("Error unmarshalling sequence json",
			slog.String("sequence", id),
			slog.Any("error", err))
		return St.Sequence{}, fmt.Errorf("error unmarshalling sequence %s: %w", id, err)
	}
	return Sc.Extract(id, entries), nil
}
