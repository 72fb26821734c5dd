package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bindery"
	"github.com/fwojciec/bindery/etree"
	"github.com/fwojciec/bindery/fs"
	"github.com/fwojciec/bindery/glamour"
	"github.com/fwojciec/bindery/goquery"
	"github.com/fwojciec/bindery/htmltomarkdown"
	"github.com/fwojciec/bindery/readability"
	"github.com/fwojciec/bindery/render"
	"github.com/fwojciec/bindery/rod"
	bslog "github.com/fwojciec/bindery/slog"
	"github.com/fwojciec/bindery/sqlite"
	"github.com/fwojciec/bindery/trafilatura"
	"github.com/fwojciec/bindery/validate"
	"github.com/fwojciec/bindery/xz"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Empty selects the configured or default location.
	DBPath string

	// SQLite database used by the report history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bindery"),
		kong.Description("Validate, convert and publish HTML content."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bindery --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(configPath(cli.Config))
	if err != nil {
		return fail(deps, err)
	}
	deps.Config = cfg

	if cli.Verbose {
		level, _ := cfg.Level()
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	}
	logger := deps.Logger

	cmd := strings.Fields(kongCtx.Command())[0]

	// Stateless services are built for every command.
	text := render.NewConverter(render.NewTextRenderer())
	deps.Converters = map[string]bindery.Converter{
		"text":       bslog.NewLoggingConverter(text, "text", logger),
		"markdown":   bslog.NewLoggingConverter(render.NewConverter(render.NewMarkdownRenderer()), "markdown", logger),
		"commonmark": bslog.NewLoggingConverter(htmltomarkdown.NewConverter(), "commonmark", logger),
		"substack":   bslog.NewLoggingConverter(goquery.NewSubstackConverter(), "substack", logger),
	}
	deps.Extractors = map[string]bindery.Extractor{
		"trafilatura": trafilatura.NewExtractor(),
		"readability": readability.NewExtractor(),
	}
	deps.Summarizer = goquery.NewSummarizer(render.NewTextRenderer())
	deps.RichWriter = etree.NewDocxWriter()
	deps.References = fs.NewReferenceLoader()
	deps.Archiver = xz.NewArchiver()
	deps.Previewer = &glamour.Previewer{Width: cli.Preview.Width}
	deps.Inliner = goquery.NewStaticInliner()

	switch cmd {
	case "validate":
		checks, err := cfg.Checks(cli.Validate.Only)
		if err != nil {
			return fail(deps, err)
		}
		root := cli.Validate.Root
		if root == "" {
			root = cfg.SiteRoot
		}
		deps.Validator = bslog.NewLoggingValidator(&validate.Validator{Checks: checks, Root: root}, logger)

	case "convert":
		if cli.Convert.Output != "" && cli.Convert.Output != "-" {
			deps.Artifacts = fs.NewWriter(cli.Convert.Output)
		}
		if cli.Convert.Template != "" {
			docx := etree.NewDocxWriter()
			if err := docx.UseTemplate(cli.Convert.Template); err != nil {
				return fail(deps, err)
			}
			deps.RichWriter = docx
		}
		if cli.Convert.To == "pdf" {
			renderer := rod.NewPDFRenderer()
			defer renderer.Close()
			deps.PDF = bslog.NewLoggingPDFRenderer(renderer, logger)
		}

	case "deploy":
		var sitemap bindery.SitemapWriter
		if cli.Deploy.Sitemap {
			baseURL := cli.Deploy.BaseURL
			if baseURL == "" {
				baseURL = cfg.BaseURL
			}
			sitemap = etree.NewSitemapWriter(baseURL)
		}
		deps.Deployer = fs.NewDeployer(sitemap)
	}

	if (cmd == "validate" && cli.Validate.Record) || cmd == "history" {
		path := m.DBPath
		if path == "" {
			path = cfg.DatabasePath()
		}
		if dir := filepath.Dir(path); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}

		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set BINDERY_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()

		deps.Reports = bslog.NewLoggingReportService(sqlite.NewReportService(m.DB), logger)
	}

	return kongCtx.Run(deps)
}
