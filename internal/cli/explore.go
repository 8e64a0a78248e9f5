package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/config"
	pkgio "github.com/matzehuels/doctree/pkg/io"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

// reportSuffix is appended to the input name when the output path is
// derived from it.
const reportSuffix = "_tree_structure.txt"

// exploreOpts holds the flags shared by explore and render. Unset flags
// leave the config file values alone.
type exploreOpts struct {
	output   string
	formats  string
	title    string
	maxDepth int
	detailed bool
	refresh  bool
	toStdout bool
	levels   bool
}

func (o *exploreOpts) register(cmd *cobra.Command, defaultFormats string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file; other formats swap its extension")
	cmd.Flags().StringVarP(&o.formats, "format", "f", defaultFormats, "output format(s): text, json, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&o.title, "title", "", "report title (default \"Consumer Rights Structure\")")
	cmd.Flags().IntVar(&o.maxDepth, "max-depth", 0, "deepest nesting level to explore")
	cmd.Flags().BoolVar(&o.detailed, "detailed", false, "show level and title in diagram labels")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&o.toStdout, "stdout", false, "print the text report instead of writing files")
	cmd.Flags().BoolVar(&o.levels, "levels", false, "print the node count table")
}

// apply overrides cfg with the flags that were set and revalidates it.
func (o *exploreOpts) apply(cmd *cobra.Command, cfg *config.Config, args []string) error {
	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Input = args[0]
		if !flags.Changed("output") && cfg.Output == config.DefaultOutput {
			cfg.Output = derivedOutput(args[0])
		}
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("format") || o.formats != pipeline.DefaultFormat {
		cfg.Formats = pipeline.ParseFormats(o.formats)
	}
	if flags.Changed("title") {
		cfg.Title = o.title
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = o.maxDepth
	}
	if flags.Changed("detailed") {
		cfg.Detailed = o.detailed
	}
	return cfg.Validate()
}

// derivedOutput names the report after its input: data/policy.json
// becomes policy_tree_structure.txt in the working directory.
func derivedOutput(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + reportSuffix
}

// exploreCommand creates the explore command, which writes the text report.
func (c *CLI) exploreCommand() *cobra.Command {
	var opts exploreOpts

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Write the tree report for a JSON document",
		Long: `Explore walks a JSON document and writes its tree report: the
top-level structure, the detailed hierarchy under
"hierarchical_document_structure", and node counts per level.

Without a file argument the configured input is used.`,
		Example: `  doctree explore data/consumer_rights_structure.json
  doctree explore policy.json -o out/policy.txt -f text,json
  doctree explore policy.json --stdout --max-depth 50`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg, args); err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), cmd, cfg, &opts)
		},
	}
	opts.register(cmd, pipeline.DefaultFormat)
	return cmd
}

// renderCommand creates the render command, which defaults to the
// node-link diagram instead of the text report.
func (c *CLI) renderCommand() *cobra.Command {
	var opts exploreOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the node-link diagram of a JSON document",
		Long: `Render draws every node (an object with "id" and "type") and its
children as a Graphviz diagram. Root nodes are filled.`,
		Example: `  doctree render policy.json
  doctree render policy.json -f svg,png --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg, args); err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), cmd, cfg, &opts)
		},
	}
	opts.register(cmd, pipeline.FormatSVG)
	return cmd
}

// runExplore loads the input, runs the pipeline and writes one file per
// format.
func (c *CLI) runExplore(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts *exploreOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	logger.Infof("Loading %s", cfg.Input)
	doc, err := pkgio.ImportJSON(cfg.Input)
	if err != nil {
		return err
	}
	logger.Infof("JSON loaded successfully. File size: %.2f MB", doc.SizeMB())

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := cfg.PipelineOptions()
	popts.Refresh = opts.refresh
	popts.Logger = logger
	if opts.toStdout {
		popts.Formats = []string{pipeline.FormatText}
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	var spin *Spinner
	if popts.NeedsGraph() && !c.verbose {
		spin = newSpinner(ctx, os.Stderr, "Rendering "+strings.Join(popts.Formats, ", "))
		spin.Start()
	}
	result, err := runner.ExecuteDocument(ctx, doc, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if opts.toStdout {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(result.Artifacts[pipeline.FormatText]))
		return err
	}

	paths := make([]string, 0, len(popts.Formats))
	for _, format := range popts.Formats {
		path := pipeline.OutputPath(cfg.Output, format)
		logger.Debugf("Writing %s to %s", format, path)
		if err := pkgio.WriteFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}
	prog.done("Wrote outputs", "files", len(paths))

	printSuccess("Tree structure successfully written to %s", paths[0])
	for _, p := range paths[1:] {
		printFile(p)
	}
	printStats(result.Stats.Lines, result.Stats.Nodes, result.Stats.Levels, result.CacheInfo.RenderHit)
	if opts.levels && result.Stats.Levels > 0 {
		fmt.Fprintln(stdout, levelTable(result.Report.Levels))
	}
	if n := result.Stats.NodeErrors; n > 0 {
		printWarning("%d node(s) could not be explored; see the report for details", n)
	}
	printNextStep("Page through it", "doctree browse "+cfg.Input)
	return nil
}
