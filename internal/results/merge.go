package results

import (
	"path/filepath"
	"strings"

	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
)

// MergeCustomFile produces the final result records for one test, given
// its parsed custom result file (nil/empty when absent), the runner's
// observation, and the directories needed to rewrite log paths (spec
// §4.5 "Custom-result merge rules").
func MergeCustomFile(parentName string, custom []Record, obs Observation, dataDir, resultsDir string) ([]Record, error) {
	if len(custom) == 0 {
		return []Record{synthesize(parentName, obs)}, nil
	}

	out := make([]Record, 0, len(custom))
	for _, entry := range custom {
		merged, err := mergeEntry(parentName, entry, obs, dataDir, resultsDir)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}
	return out, nil
}

func synthesize(parentName string, obs Observation) Record {
	return Record{
		Name:         parentName,
		Result:       obs.Result,
		SerialNumber: obs.SerialNumber,
		Guest:        obs.Guest,
		FMFID:        obs.FMFID,
		Duration:     obs.Duration,
		StartTime:    obs.StartTime,
		EndTime:      obs.EndTime,
	}
}

func mergeEntry(parentName string, entry Record, obs Observation, dataDir, resultsDir string) (Record, error) {
	isParent := entry.Name == "/" || entry.Name == ""

	rewritten, err := rewriteLogPaths(entry.Log, dataDir, resultsDir)
	if err != nil {
		return Record{}, &fmterrors.ResultError{Path: dataDir, Detail: err.Error()}
	}
	entry.Log = rewritten

	entry.SerialNumber = obs.SerialNumber
	entry.Guest = obs.Guest
	entry.FMFID = obs.FMFID

	if isParent {
		entry.Duration = obs.Duration
		entry.StartTime = obs.StartTime
		entry.EndTime = obs.EndTime
	}
	// Timing fields survive from the custom file for sub-entries (spec
	// §4.5: "timing fields survive from the custom file").
	entry.Name = PrefixedName(parentName, entry.Name)

	return entry, nil
}

// rewriteLogPaths resolves each log path relative to dataDir (where the
// test wrote it) and re-expresses it relative to resultsDir (where the
// final results document lives), per spec §4.5.
func rewriteLogPaths(logs []string, dataDir, resultsDir string) ([]string, error) {
	if len(logs) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		abs := l
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(dataDir, l)
		}
		rel, err := filepath.Rel(resultsDir, abs)
		if err != nil {
			return nil, err
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out, nil
}

// PrefixedName reports the final name a custom entry's `name: /x` becomes
// once merged under parent (spec §8 property 6).
func PrefixedName(parentName, entryName string) string {
	if entryName == "/" || entryName == "" {
		return parentName
	}
	return strings.TrimSuffix(parentName, "/") + entryName
}
