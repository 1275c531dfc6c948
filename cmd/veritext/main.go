package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/veritext/veritext"
	"github.com/veritext/veritext/apify"
	"github.com/veritext/veritext/goquery"
	"github.com/veritext/veritext/htmltomarkdown"
	vhttp "github.com/veritext/veritext/http"
	"github.com/veritext/veritext/pipeline"
	"github.com/veritext/veritext/readability"
	vslog "github.com/veritext/veritext/slog"
	"github.com/veritext/veritext/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL           string        `arg:"" optional:"" help:"URL to extract content from"`
	Input         string        `short:"i" help:"File with one URL per line for batch extraction"`
	MaxChars      int           `short:"m" default:"0" help:"Truncate extracted content to this many characters (0 = no limit)"`
	Timeout       time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	Concurrency   int           `short:"c" default:"4" help:"Concurrent extraction limit for batch mode"`
	Rate          float64       `default:"1.0" help:"Requests per second per domain in batch mode"`
	Format        string        `short:"f" default:"json" enum:"json,text" help:"Output format"`
	Fallback      string        `default:"trafilatura" enum:"trafilatura,readability" help:"Fallback extractor for publisher pages"`
	ApifyToken    string        `env:"APIFY_TOKEN" help:"API token for the remote rendering service"`
	ApifyBaseURL  string        `env:"APIFY_BASE_URL" help:"Override the remote rendering service endpoint"`
	NoCompression bool          `help:"Request uncompressed responses"`
	Verbose       bool          `short:"v" help:"Enable debug logging"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("veritext"),
		kong.Description("Extract readable article text from news sites and social media posts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.URL == "" && cli.Input == "" {
		return fmt.Errorf("either a URL argument or --input is required")
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	p := m.buildPipeline(cli, logger)

	if cli.Input != "" {
		return m.runBatch(ctx, cli, p, stdout, stderr)
	}
	return m.runSingle(ctx, cli, p, stdout)
}

// buildPipeline wires the extraction strategies for every source
// category.
func (m *Main) buildPipeline(cli *CLI, logger *slog.Logger) *pipeline.Pipeline {
	fetcherOpts := []vhttp.Option{vhttp.WithTimeout(cli.Timeout)}
	if cli.NoCompression {
		fetcherOpts = append(fetcherOpts, vhttp.WithoutCompression())
	}

	defaultFetcher := vslog.NewLoggingFetcher(vhttp.NewFetcher(fetcherOpts...), logger)

	var fallback veritext.Extractor
	if cli.Fallback == "readability" {
		fallback = readability.NewExtractor()
	} else {
		fallback = trafilatura.NewExtractor()
	}
	converter := htmltomarkdown.NewConverter()

	registry := goquery.NewRegistry()
	goquery.RegisterDefaultProfiles(registry)

	// Publisher strategies get dedicated fetchers when a profile needs
	// transport-level quirks.
	publishers := make(map[veritext.SourceCategory]veritext.Strategy)
	for _, profile := range registry.List() {
		fetcher := defaultFetcher
		if profile.InsecureTLS || profile.ForceUTF8 {
			opts := append([]vhttp.Option{}, fetcherOpts...)
			if profile.InsecureTLS {
				opts = append(opts, vhttp.WithInsecureTLS())
			}
			if profile.ForceUTF8 {
				opts = append(opts, vhttp.WithForcedUTF8())
			}
			fetcher = vslog.NewLoggingFetcher(vhttp.NewFetcher(opts...), logger)
		}
		publishers[profile.Category] = vslog.NewLoggingStrategy(
			goquery.NewStructured(profile, fetcher, fallback, converter), logger)
	}

	lightweight := vslog.NewLoggingStrategy(goquery.NewLightweight(defaultFetcher), logger)

	// Remote rendering is only available with a service token.
	var remote map[veritext.SourceCategory]veritext.Strategy
	if cli.ApifyToken != "" {
		clientOpts := []apify.ClientOption{}
		if cli.ApifyBaseURL != "" {
			clientOpts = append(clientOpts, apify.WithBaseURL(cli.ApifyBaseURL))
		}
		client := apify.NewClient(cli.ApifyToken, clientOpts...)

		remote = make(map[veritext.SourceCategory]veritext.Strategy)
		for category, spec := range apify.DefaultJobSpecs() {
			remote[category] = vslog.NewLoggingStrategy(
				apify.NewExtractor(client, spec, converter), logger)
		}
	}

	return &pipeline.Pipeline{
		Publishers:  publishers,
		Lightweight: lightweight,
		Remote:      remote,
		RateLimiter: pipeline.NewDomainLimiter(cli.Rate),
		Concurrency: cli.Concurrency,
	}
}

// runSingle extracts one URL and writes the result to stdout.
func (m *Main) runSingle(ctx context.Context, cli *CLI, p *pipeline.Pipeline, stdout io.Writer) error {
	result := p.Extract(ctx, veritext.ExtractionRequest{URL: cli.URL, MaxChars: cli.MaxChars})

	if err := writeResult(stdout, cli.Format, result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("extraction failed: %s", result.Error)
	}
	return nil
}

// runBatch extracts every URL in the input file, one JSON result per
// line on stdout, progress on stderr.
func (m *Main) runBatch(ctx context.Context, cli *CLI, p *pipeline.Pipeline, stdout, stderr io.Writer) error {
	urls, err := readURLs(cli.Input)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", cli.Input)
	}

	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(stderr, "Extracting %d URLs...\n", event.Total)
		case pipeline.ProgressCompleted:
			fmt.Fprintf(stderr, "[%d/%d] ok      %s\n", event.Completed, event.Total, event.URL)
		case pipeline.ProgressFailed:
			fmt.Fprintf(stderr, "[%d/%d] failed  %s: %v\n", event.Completed, event.Total, event.URL, event.Error)
		case pipeline.ProgressSkipped:
			fmt.Fprintf(stderr, "skipped duplicate %s\n", event.URL)
		}
	}

	results := p.ExtractAll(ctx, urls, cli.MaxChars, progress)

	var failed int
	for _, result := range results {
		if err := writeResult(stdout, cli.Format, result); err != nil {
			return err
		}
		if !result.Success {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(results))
	}
	return nil
}

func writeResult(w io.Writer, format string, result *veritext.ExtractionResult) error {
	if format == "text" {
		if result.Success {
			fmt.Fprintln(w, result.Content)
		}
		return nil
	}

	enc := json.NewEncoder(w)
	return enc.Encode(result)
}

// readURLs reads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return urls, nil
}
