// Package schema defines the typed Test object of spec §3: the
// well-known keys, their declared shapes, the closed set of valid
// `result` values, and the per-key source tag that downstream policy
// templates and diagnostics can inspect.
package schema

// SourceTag records where a key's current value came from (spec §3).
type SourceTag string

const (
	SourceDefault SourceTag = "default"
	SourceFMF     SourceTag = "fmf"
	SourceCLI     SourceTag = "cli"
	SourcePolicy  SourceTag = "policy"
)

// Outcome is one of the closed set of result values (spec §3 invariant).
type Outcome string

const (
	OutcomePass  Outcome = "pass"
	OutcomeFail  Outcome = "fail"
	OutcomeInfo  Outcome = "info"
	OutcomeWarn  Outcome = "warn"
	OutcomeError Outcome = "error"
	OutcomeSkip  Outcome = "skip"
)

// ValidOutcomes is the closed set from spec §3.
var ValidOutcomes = map[Outcome]bool{
	OutcomePass: true, OutcomeFail: true, OutcomeInfo: true,
	OutcomeWarn: true, OutcomeError: true, OutcomeSkip: true,
}

// ResultPolicy is the outcome-interpretation policy stored under the
// `result` key (spec §3); it is a meta-level directive, not itself an
// Outcome.
type ResultPolicy string

const (
	ResultRespect ResultPolicy = "respect"
	ResultXFail   ResultPolicy = "xfail"
	ResultPass    ResultPolicy = "pass"
	ResultFail    ResultPolicy = "fail"
	ResultInfo    ResultPolicy = "info"
)

// Link is one entry of the `link` sequence (spec §3).
type Link struct {
	Relation string `yaml:"relation" json:"relation"`
	Target   string `yaml:"target" json:"target"`
	Note     string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Check is one entry of the `check` sequence (spec §3): a mapping with
// `how`, `result`, and arbitrary extra keys preserved for forward
// compatibility.
type Check struct {
	How    string                 `yaml:"how" json:"how"`
	Result string                 `yaml:"result,omitempty" json:"result,omitempty"`
	Extra  map[string]interface{} `yaml:",inline" json:"-"`
}

// Value pairs a normalized key's canonical data with its source tag.
type Value struct {
	Data   interface{}
	Source SourceTag
}

// Test is the fully typed, normalized test object of spec §3.
type Test struct {
	// Name is the test's identifier path, immutable post-load.
	Name string

	// Values holds every well-known and unknown key, each tagged with
	// its source. Known keys always hold their canonical shape (bool,
	// string, []string, map[string]string, []Check, []Link, float64
	// seconds for duration); unknown keys are preserved verbatim as
	// whatever the loader decoded, per spec §4.2 forward-compatibility.
	Values map[string]Value
}

// NewTest returns an empty Test ready to receive normalized values.
func NewTest(name string) *Test {
	return &Test{Name: name, Values: make(map[string]Value)}
}

// Get returns the raw data and whether key is present.
func (t *Test) Get(key string) (interface{}, bool) {
	v, ok := t.Values[key]
	if !ok {
		return nil, false
	}
	return v.Data, true
}

// SourceOf returns the source tag of key, or "" if key is absent.
func (t *Test) SourceOf(key string) SourceTag {
	return t.Values[key].Source
}

// Set assigns key's canonical value and source tag.
func (t *Test) Set(key string, data interface{}, source SourceTag) {
	t.Values[key] = Value{Data: data, Source: source}
}

// Enabled returns the `enabled` key, defaulting to true per spec §3.
func (t *Test) Enabled() bool {
	v, ok := t.Get("enabled")
	if !ok {
		return true
	}
	b, _ := v.(bool)
	return b
}

// StringSeq returns a []string for a sequence-of-string key, or nil.
func (t *Test) StringSeq(key string) []string {
	v, ok := t.Get(key)
	if !ok {
		return nil
	}
	s, _ := v.([]string)
	return s
}

// Duration returns the `duration` key in seconds.
func (t *Test) Duration() (float64, bool) {
	v, ok := t.Get("duration")
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Checks returns the `check` sequence.
func (t *Test) Checks() []Check {
	v, ok := t.Get("check")
	if !ok {
		return nil
	}
	c, _ := v.([]Check)
	return c
}

// Links returns the `link` sequence.
func (t *Test) Links() []Link {
	v, ok := t.Get("link")
	if !ok {
		return nil
	}
	l, _ := v.([]Link)
	return l
}

// ToPlain projects the Test into plain structured data (strings, bools,
// numbers, sequences, mappings — never Test/Value/Check/Link), the
// representation the policy engine's VALUE/TEST template bindings require
// (spec §4.3: "projections into plain structured data, not references to
// internal objects").
func (t *Test) ToPlain() map[string]interface{} {
	out := make(map[string]interface{}, len(t.Values))
	for k, v := range t.Values {
		out[k] = toPlainValue(v.Data)
	}
	return out
}

func toPlainValue(v interface{}) interface{} {
	switch x := v.(type) {
	case []Check:
		seq := make([]interface{}, len(x))
		for i, c := range x {
			m := map[string]interface{}{"how": c.How}
			if c.Result != "" {
				m["result"] = c.Result
			}
			for k, v := range c.Extra {
				m[k] = v
			}
			seq[i] = m
		}
		return seq
	case []Link:
		seq := make([]interface{}, len(x))
		for i, l := range x {
			m := map[string]interface{}{"relation": l.Relation, "target": l.Target}
			if l.Note != "" {
				m["note"] = l.Note
			}
			seq[i] = m
		}
		return seq
	case []string:
		seq := make([]interface{}, len(x))
		for i, s := range x {
			seq[i] = s
		}
		return seq
	case map[string]string:
		m := make(map[string]interface{}, len(x))
		for k, v := range x {
			m[k] = v
		}
		return m
	default:
		return v
	}
}
