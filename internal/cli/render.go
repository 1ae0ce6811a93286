package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tidytree/pkg/pipeline"
)

// renderCommand creates the render command for producing drawable artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := c.optionsFromConfig()

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render a tree as SVG, PNG, DOT, or JSON",
		Long: `Render a tree as SVG, PNG, DOT, or JSON.

The render command runs the full pipeline: it reads a tree.json file (use "-"
for stdin), computes the layout, and writes one artifact per requested format
next to the input (or at the --output base path).

Layouts and artifacts are cached locally; identical inputs render instantly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				opts.Formats = parseFormats(formats)
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "comma-separated output formats: svg, png, dot, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")

	// Layout flags
	cmd.Flags().BoolVar(&opts.Layered, "layered", opts.Layered, "align nodes of equal depth on shared rows")
	cmd.Flags().Float64Var(&opts.ParentChildMargin, "margin-vertical", opts.ParentChildMargin, "vertical gap between a node and its children")
	cmd.Flags().Float64Var(&opts.PeerMargin, "margin-peer", opts.PeerMargin, "horizontal gap between adjacent subtrees")

	// Render flags
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", opts.Detailed, "include coordinates and metadata in node labels")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, data, source, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := outputBase(input, output)
	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + "." + format
		if format == pipeline.FormatJSON {
			path = base + ".layout.json"
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.Depth, result.CacheInfo.RenderHit)

	return nil
}
