package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benoitkugler/boxlayout/config"
	"github.com/benoitkugler/boxlayout/document"
	"github.com/benoitkugler/boxlayout/draw"
	"github.com/benoitkugler/boxlayout/images"
	"github.com/benoitkugler/boxlayout/layout"
	"github.com/benoitkugler/boxlayout/logger"
	"github.com/benoitkugler/boxlayout/utils/testutils/tracer"
)

// flag name -> configuration key
var layoutFlags = map[string]string{
	"page-width":         "page.width",
	"page-height":        "page.height",
	"margin":             "page.margin",
	"font-size":          "layout.font_size",
	"collapsing-margins": "layout.collapsing_margins",
	"outlines":           "layout.outlines",
	"log-level":          "logger.level",
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <input.html>",
		Short: "Lay out an HTML fragment",
		Long: `Lay out an HTML fragment, whose elements are styled with their style
attribute, and write the pages as a PDF of box outlines.
With --format, the laid out tree is dumped to the standard output instead.
Use - to read the standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: runLayout,
	}
	flags := cmd.Flags()
	flags.StringP("output", "o", "", "output PDF file (default: the input name with a .pdf extension)")
	flags.String("format", "", "dump format instead of PDF output: text or json")
	flags.Float32("page-width", 0, "page width, in points")
	flags.Float32("page-height", 0, "page height, in points")
	flags.Float32("margin", 0, "page margin, in points")
	flags.Float32("font-size", 0, "default font size, in points")
	flags.Bool("collapsing-margins", false, "collapse adjoining vertical margins")
	flags.Bool("outlines", false, "frame every box in the PDF output")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()
	for flag, key := range layoutFlags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return config.NewConfigFromViper(v)
}

func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

func outputName(input string) string {
	if input == "-" {
		return "out.pdf"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
}

func runLayout(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown format %q: expected text or json", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(cfg.Logger, cmd.ErrOrStderr())
	defer func() { _ = log.Sync() }()

	input, err := openInput(cmd, args[0])
	if err != nil {
		return err
	}
	defer input.Close()

	builder := document.NewBuilder(log)
	builder.RootStyle = cfg.RootStyle()
	if args[0] != "-" {
		builder.Images = images.NewCache(filepath.Dir(args[0]))
	}
	doc, err := builder.Build(input)
	if err != nil {
		return fmt.Errorf("laying out %s: %w", args[0], err)
	}
	pages, err := doc.Paginate(cfg.PageSize(), layout.NewEnv(log, nil))
	if err != nil {
		return fmt.Errorf("laying out %s: %w", args[0], err)
	}
	log.Info("layout done", zap.String("input", args[0]), zap.Int("pages", len(pages)))

	switch format {
	case "text":
		tr := tracer.NewTracerWriter(cmd.OutOrStdout())
		for _, page := range pages {
			tr.DumpTree(page.Root, fmt.Sprintf("page %d", page.Number))
		}
		return nil
	case "json":
		return tracer.NewTracerWriter(cmd.OutOrStdout()).DumpJSON(pages)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = outputName(args[0])
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	drawer := draw.NewDrawer(draw.Options{Outlines: cfg.Layout.Outlines}, log)
	if err := drawer.WritePDF(f, pages); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	log.Info("output written", zap.String("output", output))
	return nil
}
