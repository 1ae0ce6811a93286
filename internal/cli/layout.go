package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tidytree/pkg/cache"
	"github.com/matzehuels/tidytree/pkg/export"
	"github.com/matzehuels/tidytree/pkg/pipeline"
	"github.com/matzehuels/tidytree/pkg/tree"
)

// layoutCommand creates the layout command for computing tree placements.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.optionsFromConfig()

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Compute node positions for a tree",
		Long: `Compute node positions for a tree.

The layout command reads a tree.json file (use "-" for stdin) and computes a
tidy placement for every node. The output is a layout.json file containing
absolute positions, ready for 'render' or 'inspect'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Layout flags
	cmd.Flags().BoolVar(&opts.Layered, "layered", opts.Layered, "align nodes of equal depth on shared rows")
	cmd.Flags().Float64Var(&opts.ParentChildMargin, "margin-vertical", opts.ParentChildMargin, "vertical gap between a node and its children")
	cmd.Flags().Float64Var(&opts.PeerMargin, "margin-peer", opts.PeerMargin, "horizontal gap between adjacent subtrees")

	return cmd
}

// runLayout loads the tree, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, source, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	root, err := runner.Load(ctx, data, source)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", source, err)
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	p := newProgress(loggerFromContext(ctx))

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, root, cache.Hash(data), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Placed %d nodes", len(l.Blocks)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(input, "") + ".layout.json"
	}

	if err := export.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(tree.Count(root), tree.Depth(root), cacheHit)
	printNewline()
	printNextStep("Render", "tidytree render "+input)

	return nil
}
