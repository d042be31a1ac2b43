// Package results implements the Result merger of spec §4.5: combining
// per-test custom result files with runner-observed metadata into a
// plan's final results document, reducing outcomes under spec §4.5's
// monoid, and mapping a run's outcomes to the exit codes of spec §6.
package results

import "github.com/fmfcore/tmtmeta/internal/schema"

// Record is one entry of the results document (spec §6): the schema a
// results.yaml/results.json file's sequence elements share, whether they
// originated from runner observation or a test's custom result file.
type Record struct {
	Name         string                 `yaml:"name" json:"name"`
	Result       schema.Outcome         `yaml:"result" json:"result"`
	Note         string                 `yaml:"note,omitempty" json:"note,omitempty"`
	Log          []string               `yaml:"log,omitempty" json:"log,omitempty"`
	IDs          map[string]string      `yaml:"ids,omitempty" json:"ids,omitempty"`
	StartTime    string                 `yaml:"start-time,omitempty" json:"start-time,omitempty"`
	EndTime      string                 `yaml:"end-time,omitempty" json:"end-time,omitempty"`
	Duration     string                 `yaml:"duration,omitempty" json:"duration,omitempty"`
	SerialNumber int                    `yaml:"serial-number,omitempty" json:"serial-number,omitempty"`
	Guest        string                 `yaml:"guest,omitempty" json:"guest,omitempty"`
	DataPath     string                 `yaml:"data-path,omitempty" json:"data-path,omitempty"`
	FMFID        string                 `yaml:"fmf_id,omitempty" json:"fmf_id,omitempty"`
	Check        []schema.Check         `yaml:"check,omitempty" json:"check,omitempty"`
	Extra        map[string]interface{} `yaml:",inline" json:"-"`
}

// Observation is the runner-observed metadata for one test run, the
// authoritative source for the fields spec §4.5 says must overwrite
// whatever a custom result file claims.
type Observation struct {
	Result       schema.Outcome
	SerialNumber int
	Guest        string
	FMFID        string
	Duration     string
	StartTime    string
	EndTime      string
}
