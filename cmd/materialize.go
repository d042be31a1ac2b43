package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fmfcore/tmtmeta/internal/adjust"
	"github.com/fmfcore/tmtmeta/internal/config"
	"github.com/fmfcore/tmtmeta/internal/dimension"
	fmterrors "github.com/fmfcore/tmtmeta/internal/errors"
	"github.com/fmfcore/tmtmeta/internal/fmfloader"
	"github.com/fmfcore/tmtmeta/internal/normalize"
	"github.com/fmfcore/tmtmeta/internal/policy"
	"github.com/fmfcore/tmtmeta/internal/results"
	"github.com/fmfcore/tmtmeta/internal/schema"
	"github.com/fmfcore/tmtmeta/pkg/logging"
)

func newMaterializeCmd() *cobra.Command {
	var treeRoot string
	var contextPairs []string
	var policyFile string
	var policyName string
	var watch bool

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Load, adjust, normalize, and policy-rewrite an fmf tree for a context",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := parseContext(contextPairs)
			if err != nil {
				return newCLIError(ExitError, err)
			}

			doc, err := loadPolicyDocument(policyFile, policyName)
			if err != nil {
				return newCLIError(ExitError, err)
			}

			if err := materializeAndPrint(cmd, treeRoot, ctx, doc); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndMaterialize(cmd, treeRoot, ctx, doc)
		},
	}

	cmd.Flags().StringVar(&treeRoot, "tree", ".", "root of the fmf tree to materialize")
	cmd.Flags().StringArrayVar(&contextPairs, "context", nil, "context dimension as key=value, repeatable")
	cmd.Flags().StringVar(&policyFile, "policy-file", "", "policy document path")
	cmd.Flags().StringVar(&policyName, "policy-name", "", "symbolic policy name under POLICY_ROOT")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-materialize whenever the fmf tree changes, until interrupted")
	return cmd
}

// materializeAndPrint runs one load-adjust-normalize-policy pass over
// treeRoot and writes the resulting tests as YAML to cmd's stdout.
func materializeAndPrint(cmd *cobra.Command, treeRoot string, ctx dimension.Context, doc policy.Document) error {
	tree, err := fmfloader.Load(treeRoot)
	if err != nil {
		return newCLIError(ExitError, err)
	}

	var failures fmterrors.Collection
	tests := make([]*schema.Test, 0, len(tree.Leaves))
	for _, leaf := range tree.Leaves {
		test, err := materializeOne(leaf, ctx, doc)
		if err != nil {
			failures.Add(leaf.Name, err)
			continue
		}
		tests = append(tests, test)
	}

	plain := make([]map[string]interface{}, len(tests))
	for i, t := range tests {
		plain[i] = t.ToPlain()
	}
	out, err := yaml.Marshal(plain)
	if err != nil {
		return newCLIError(ExitError, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))

	if failures.HasFailures() {
		logging.Error("materialize", &failures, "materialization failed for %d test(s)", len(failures.Failures))
		return newCLIError(ExitError, &failures)
	}
	return nil
}

// watchAndMaterialize re-runs materializeAndPrint every time fmfloader.Watch
// reports a tree change, until SIGINT/SIGTERM arrives.
func watchAndMaterialize(cmd *cobra.Command, treeRoot string, ctx dimension.Context, doc policy.Document) error {
	wctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trees, err := fmfloader.Watch(wctx, treeRoot)
	if err != nil {
		return newCLIError(ExitError, err)
	}

	logging.Info("materialize", "watching %s for changes", treeRoot)
	for range trees {
		if err := materializeAndPrint(cmd, treeRoot, ctx, doc); err != nil {
			logging.Error("materialize", err, "re-materialization failed")
		}
	}
	return nil
}

func parseContext(pairs []string) (dimension.Context, error) {
	ctx := dimension.Context{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --context %q, want key=value", p)
		}
		ctx.Add(k, v)
	}
	return ctx, nil
}

func loadPolicyDocument(cliFile, cliName string) (policy.Document, error) {
	loc := config.PolicyLocationFromEnv()
	ref, root := loc.Resolve(cliFile, cliName)
	if ref == "" {
		return policy.Document{}, nil
	}

	resolved, err := policy.Resolve(root, ref)
	if err != nil {
		return policy.Document{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return policy.Document{}, err
	}
	return policy.LoadDocument(data)
}

func materializeOne(leaf fmfloader.LeafNode, ctx dimension.Context, doc policy.Document) (*schema.Test, error) {
	adjusted, err := adjust.Apply(leaf.Raw, ctx)
	if err != nil {
		return nil, err
	}

	test, err := normalize.Normalize(leaf.Name, adjusted, leaf.Inherited, schema.SourceFMF)
	if err != nil {
		return nil, err
	}

	if len(doc.Rules) > 0 {
		if err := policy.Apply(test, doc); err != nil {
			return nil, err
		}
	}

	if _, ok := test.Get("id"); !ok {
		test.Set("id", results.StableID(test.Name), schema.SourceDefault)
	}

	return test, nil
}
