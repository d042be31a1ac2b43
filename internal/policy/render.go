package policy

import (
	"bytes"
	"regexp"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
	"github.com/fmfcore/tmtmeta/internal/normalize"
	"github.com/fmfcore/tmtmeta/internal/schema"
)

// noOpValuePattern recognizes a template that is exactly the VALUE
// binding with nothing else, the no-op rule spec §8 property 5 requires:
// "For any policy rule that renders to exactly `{{ VALUE }}`, the test is
// unchanged... regardless of key type". Detecting it structurally avoids
// routing a mapping/sequence VALUE through Go's default %v stringification
// and a YAML re-parse that was never guaranteed to round-trip it.
var noOpValuePattern = regexp.MustCompile(`^\{\{\s*\.VALUE\s*\}\}$`)

// bindings is the read-only template scope spec §4.3 specifies: VALUE,
// VALUE_SOURCE, and TEST, each a projection into plain structured data
// (schema.Test.ToPlain), never a reference to the Test/Value/Check/Link
// types themselves.
type bindings struct {
	VALUE        interface{}
	VALUE_SOURCE string
	TEST         map[string]interface{}
}

// Apply runs every rule of doc against test in declaration order,
// rewriting test in place. Within one rule, keys are processed in the
// order Rule.Keys records them.
func Apply(test *schema.Test, doc Document) error {
	for ruleIdx, rule := range doc.Rules {
		for _, key := range rule.Keys {
			if err := applyOne(test, ruleIdx, key, rule.Templates[key]); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyOne(test *schema.Test, ruleIdx int, key, tmplSrc string) error {
	if noOpValuePattern.MatchString(strings.TrimSpace(tmplSrc)) {
		return nil
	}

	rendered, err := renderTemplate(tmplSrc, test, key)
	if err != nil {
		return &fmterrors.RenderError{RuleIndex: ruleIdx, Key: key, Detail: "template evaluation failed", Err: err}
	}

	if strings.TrimSpace(rendered) == "" {
		return nil
	}

	var raw interface{}
	if err := yaml.Unmarshal([]byte(rendered), &raw); err != nil {
		return &fmterrors.RenderError{RuleIndex: ruleIdx, Key: key, Detail: "re-parsing rendered output failed", Err: err}
	}

	canonical, err := normalize.Canonicalize(test.Name, key, raw)
	if err != nil {
		return &fmterrors.RenderError{RuleIndex: ruleIdx, Key: key, Detail: "re-normalizing rendered output failed", Err: err}
	}

	test.Set(key, canonical, schema.SourcePolicy)
	return nil
}

func renderTemplate(tmplSrc string, test *schema.Test, key string) (string, error) {
	plain := test.ToPlain()
	data := bindings{
		VALUE:        plain[key],
		VALUE_SOURCE: string(test.SourceOf(key)),
		TEST:         plain,
	}

	tmpl, err := template.New(key).Funcs(funcMap()).Parse(tmplSrc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
