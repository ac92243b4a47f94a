package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/tdh8316/handlecheck/internal/httpx"
	"github.com/tdh8316/handlecheck/internal/output"
)

var (
	ErrHelp  = errors.New("help requested")
	ErrUsage = errors.New("expected exactly one NAME argument")
)

type Options struct {
	NoColor  bool
	Verbose  bool
	Strict   bool
	Progress bool

	PlatformsFile string
	Only          []string
	Format        string
	ProxyURL      string
	UserAgent     string
	Timeout       time.Duration
	Concurrency   int
}

const defaultTimeoutSeconds = int(httpx.DefaultTimeout / time.Second)

const usageText = `
usage:
  handlecheck [flags] NAME

positional arguments:
  NAME                  username or company name to look up

flags:
  -h, --help            show this help message and exit
  --no-color            disable colored output
  --strict              report ambiguous responses as unknown instead of available
  --progress            show a progress bar on stderr
  -v, --verbose         debug logging on stderr

options:
  --platforms PATH      use a custom platform table (JSON)
  --only P1,P2,...      check only these platforms (default: all)
  --format FORMAT       text, table or json (default: text)
  --timeout SECONDS     HTTP request timeout (default: 5)
  --concurrency N       max concurrent requests (default: 1)
  --proxy URL           SOCKS5 proxy, e.g. socks5://127.0.0.1:9050
  --user-agent UA       User-Agent header to send
`

// Parse parses flags and returns the single positional NAME.
func Parse(args []string, stdout, stderr io.Writer) (Options, string, error) {
	var opts Options
	var (
		help     bool
		onlyCSV  string
		timeoutS int
	)

	fs := flag.NewFlagSet("handlecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Usage = func() {
		_, _ = fmt.Fprint(stderr, usageText)
	}

	// Help
	fs.BoolVar(&help, "h", false, "show help")
	fs.BoolVar(&help, "help", false, "show help")

	// Behavior flags
	fs.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&opts.Strict, "strict", false, "three-way classification")
	fs.BoolVar(&opts.Progress, "progress", false, "progress bar on stderr")
	fs.BoolVar(&opts.Verbose, "v", false, "verbose output")
	fs.BoolVar(&opts.Verbose, "verbose", false, "verbose output")

	// Options
	fs.StringVar(&opts.PlatformsFile, "platforms", "", "custom platform table path")
	fs.StringVar(&onlyCSV, "only", "", "comma-separated platform list")
	fs.StringVar(&opts.Format, "format", output.FormatText, "output format")
	fs.IntVar(&timeoutS, "timeout", defaultTimeoutSeconds, "request timeout in seconds")
	fs.IntVar(&opts.Concurrency, "concurrency", 1, "max concurrent requests")
	fs.StringVar(&opts.ProxyURL, "proxy", "", "SOCKS5 proxy url")
	fs.StringVar(&opts.UserAgent, "user-agent", "", "User-Agent header")

	if err := fs.Parse(args); err != nil {
		return Options{}, "", err
	}
	if help {
		_, _ = fmt.Fprint(stdout, usageText)
		return Options{}, "", ErrHelp
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return Options{}, "", ErrUsage
	}

	if !output.ValidFormat(opts.Format) {
		fs.Usage()
		return Options{}, "", fmt.Errorf("invalid --format %q", opts.Format)
	}

	if timeoutS <= 0 {
		// Don't allow zero or negative timeouts; reset to default.
		timeoutS = defaultTimeoutSeconds
		msg := fmt.Sprintf("Invalid timeout value; using default of %d seconds.", defaultTimeoutSeconds)
		if opts.NoColor {
			fmt.Fprintf(stderr, "[!] %s\n", msg)
		} else {
			fmt.Fprintf(stderr, "[%s] %s\n", color.HiRedString("!"), color.HiYellowString("%s", msg))
		}
	}
	opts.Timeout = time.Duration(timeoutS) * time.Second

	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	if onlyCSV != "" {
		for _, s := range strings.Split(onlyCSV, ",") {
			if s = strings.TrimSpace(s); s != "" {
				opts.Only = append(opts.Only, s)
			}
		}
	}

	return opts, fs.Arg(0), nil
}
