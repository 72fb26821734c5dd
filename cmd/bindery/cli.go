package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/bindery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config Config

	Validator  bindery.Validator
	Reports    bindery.ReportService
	Summarizer bindery.Summarizer
	RichWriter bindery.RichWriter
	PDF        bindery.PDFRenderer
	References bindery.ReferenceLoader
	Archiver   bindery.Archiver
	Deployer   bindery.Deployer
	Previewer  bindery.Previewer
	Artifacts  bindery.ArtifactWriter
	Inliner    bindery.Inliner

	// Converters is keyed by output name: text, markdown, commonmark, substack.
	Converters map[string]bindery.Converter

	// Extractors is keyed by engine name: trafilatura, readability.
	Extractors map[string]bindery.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Project config file (default ./bindery.toml)" env:"BINDERY_CONFIG"`
	Verbose bool   `short:"v" help:"Log operations to stderr"`

	Validate ValidateCmd `cmd:"" help:"Validate an HTML document or a directory of documents"`
	Convert  ConvertCmd  `cmd:"" help:"Convert a document to another format"`
	Bundle   BundleCmd   `cmd:"" help:"Archive a content directory as tar.xz"`
	Deploy   DeployCmd   `cmd:"" help:"Copy a site for publication without development files"`
	History  HistoryCmd  `cmd:"" help:"List recorded validation reports"`
	Preview  PreviewCmd  `cmd:"" help:"Render a document as Markdown in the terminal"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Path        string   `arg:"" help:"HTML file or directory"`
	JSON        bool     `help:"Write reports as JSON"`
	WordCount   bool     `name:"word-count" help:"Print only the word count"`
	Record      bool     `help:"Store reports in the history database"`
	Only        []string `help:"Run only these checks: html, content, a11y, links"`
	Root        string   `help:"Site root used to resolve /-rooted links"`
	Concurrency int      `short:"c" help:"Documents validated in parallel"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Path     string `arg:"" help:"HTML file or directory"`
	To       string `short:"t" required:"" enum:"text,markdown,docx,json,substack,static,bibtex,pdf" help:"Output format: text, markdown, docx, json, substack, static, bibtex, pdf"`
	Engine   string `default:"native" enum:"native,commonmark" help:"Markdown converter: native or commonmark"`
	Extract  string `default:"none" enum:"none,trafilatura,readability" help:"Extract main content before converting"`
	Output   string `short:"o" help:"Output path, '-' for stdout (default derived from input)"`
	Split    bool   `help:"Write one file per document into the output directory"`
	Template string `help:"Word document whose styles the docx export reuses"`
}

// BundleCmd is the "bundle" subcommand.
type BundleCmd struct {
	Path   string `arg:"" help:"Content directory or file"`
	Output string `short:"o" help:"Archive path (default <path>.tar.xz)"`
}

// DeployCmd is the "deploy" subcommand.
type DeployCmd struct {
	Path    string `arg:"" help:"Site directory"`
	Output  string `short:"o" help:"Deploy directory (default <path>_deploy)"`
	Sitemap bool   `help:"Write sitemap.xml"`
	BaseURL string `name:"base-url" help:"Prefix for sitemap locations"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Path   string `arg:"" optional:"" help:"Only reports for this document"`
	Status string `enum:"any,passed,warnings,failed" default:"any" help:"Filter by status: passed, warnings, failed"`
	Limit  int    `short:"n" default:"20" help:"Maximum reports to list"`
	ID     string `help:"Show the full report with this ID"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	Path  string `arg:"" help:"HTML or Markdown file"`
	Width int    `short:"w" help:"Word wrap width"`
}

// ErrValidationFailed is returned when at least one document has errors.
var ErrValidationFailed = errors.New("validation failed")

// reportedError wraps an error already printed to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// fail prints err to stderr and marks it as reported.
func fail(deps *Dependencies, err error) error {
	msg := bindery.ErrorMessage(err)
	if bindery.ErrorCode(err) == bindery.EINTERNAL {
		msg = err.Error()
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
	return &reportedError{err: err}
}
