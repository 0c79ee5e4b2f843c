// Package syncer drives one sync run: for every library record it locates
// the destination note, reconciles it with the record, and writes the result
// back when anything changed.
package syncer

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/teoward/zinc/internal/atomicfile"
	"github.com/teoward/zinc/internal/note"
	"github.com/teoward/zinc/internal/vault"
	"github.com/teoward/zinc/internal/zotero"
)

// Action describes the outcome for one record.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
	ActionRenamed   Action = "renamed"
	ActionFailed    Action = "failed"
)

// Options configures a sync run.
type Options struct {
	// Folder is the destination folder for notes (created if missing).
	Folder string

	// DryRun computes every action without touching the filesystem.
	DryRun bool
}

// Result is the outcome for a single record.
type Result struct {
	Key    string
	Title  string
	Action Action
	Path   string
	Err    error
}

// Summary aggregates per-record outcomes for one run. Skipped counts records
// the source excluded before the run; it is filled in by the caller.
type Summary struct {
	Created   int
	Updated   int
	Unchanged int
	Renamed   int
	Skipped   int
	Failed    int
}

func (s Summary) add(a Action) Summary {
	switch a {
	case ActionCreated:
		s.Created++
	case ActionUpdated:
		s.Updated++
	case ActionUnchanged:
		s.Unchanged++
	case ActionRenamed:
		s.Renamed++
	case ActionFailed:
		s.Failed++
	}
	return s
}

// Total returns the number of records processed.
func (s Summary) Total() int {
	return s.Created + s.Updated + s.Unchanged + s.Renamed + s.Failed
}

// Run processes all records sequentially. Per-record failures are isolated:
// they appear in the results and the summary but never abort the run. The
// only returned error is a destination folder that cannot be created.
func Run(ctx context.Context, records []zotero.Record, opts Options) (Summary, []Result, error) {
	if !opts.DryRun {
		if err := os.MkdirAll(opts.Folder, 0o755); err != nil {
			return Summary{}, nil, fmt.Errorf("create notes folder: %w", err)
		}
	}

	var summary Summary
	results := make([]Result, 0, len(records))

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			// Interrupted runs are safe to resume: every completed write is
			// whole-document, and unprocessed records are simply untouched.
			return summary, results, err
		}

		res := syncOne(rec, opts)
		summary = summary.add(res.Action)
		results = append(results, res)
	}

	return summary, results, nil
}

// syncOne reconciles a single record against the vault.
func syncOne(rec zotero.Record, opts Options) Result {
	res := Result{Key: rec.Key, Title: rec.Title}

	dest := vault.NotePath(opts.Folder, rec.Title, rec.Key)
	res.Path = dest

	// Locate the existing note: the canonical path first, then a key scan
	// for notes whose title (and so filename) changed since the last run.
	existingPath := dest
	if _, err := os.Stat(dest); err != nil {
		if !os.IsNotExist(err) {
			res.Action = ActionFailed
			res.Err = fmt.Errorf("stat %s: %w", dest, err)
			return res
		}
		existingPath, err = vault.FindByKey(opts.Folder, rec.Key)
		if err != nil {
			res.Action = ActionFailed
			res.Err = err
			return res
		}
	}

	var parsed note.Parsed
	var current []byte
	if existingPath != "" {
		var err error
		current, err = os.ReadFile(existingPath)
		if err != nil {
			res.Action = ActionFailed
			res.Err = fmt.Errorf("read %s: %w", existingPath, err)
			return res
		}
		parsed = note.Parse(string(current))
	}

	rendered := []byte(note.Render(note.Reconcile(rec, parsed)))

	moved := existingPath != "" && existingPath != dest
	if moved && !opts.DryRun {
		if err := os.Rename(existingPath, dest); err != nil {
			res.Action = ActionFailed
			res.Err = fmt.Errorf("rename %s: %w", existingPath, err)
			return res
		}
	}

	switch {
	case existingPath == "":
		res.Action = ActionCreated
	case moved:
		res.Action = ActionRenamed
	case bytes.Equal(current, rendered):
		// Skip the write entirely so an unchanged note keeps its mtime.
		res.Action = ActionUnchanged
		return res
	default:
		res.Action = ActionUpdated
	}

	if opts.DryRun {
		return res
	}

	if err := atomicfile.WriteFile(dest, rendered); err != nil {
		res.Action = ActionFailed
		res.Err = fmt.Errorf("write %s: %w", dest, err)
	}
	return res
}
