package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apimgr/ipweather/src/metrics"
	"github.com/apimgr/ipweather/src/services"
)

// Execute is the main entry point for the CLI
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// Run parses args, performs one lookup and writes the result to stdout.
// Nothing is written to stdout when any stage fails.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet(projectName, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	// Selection flags
	selected := make(map[string]*bool, len(fieldSelectors))
	for _, sel := range fieldSelectors {
		selected[sel.Flag] = flagSet.Bool(sel.Flag, false, sel.Usage)
	}

	// Global flags
	configFlag := flagSet.String("config", "", "Config file path")
	outputFlag := flagSet.String("output", "", "Output format: text, json (overrides config)")
	noColorFlag := flagSet.Bool("no-color", false, "Disable colored output")
	timeoutFlag := flagSet.Int("timeout", 0, "Overall timeout in seconds (overrides config)")
	providerFlag := flagSet.String("ip-provider", "", "Public IP provider: http, dns (overrides config)")
	geoipFlag := flagSet.String("geoip-db", "", "Resolve location from a local .mmdb city database")
	proxyFlag := flagSet.String("proxy", "", "Proxy URL for HTTP requests")
	metricsFlag := flagSet.String("metrics-file", "", "Write run metrics to this file")
	debugFlag := flagSet.Bool("debug", false, "Log debug output to stderr")
	versionFlag := flagSet.Bool("version", false, "Show version information")
	helpFlag := flagSet.Bool("help", false, "Show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return nil
		}
		return NewUsageError(err.Error())
	}

	if *versionFlag {
		printVersion(stdout)
		return nil
	}
	if *helpFlag {
		printUsage(stdout)
		return nil
	}
	if flagSet.NArg() > 0 {
		return NewUsageError(fmt.Sprintf("unexpected argument: %s", flagSet.Arg(0)))
	}

	if err := LoadDotEnv(".env"); err != nil {
		return err
	}

	config, err := LoadConfig(*configFlag)
	if err != nil {
		return err
	}

	// Override config with flags
	if *outputFlag != "" {
		config.Output.Format = *outputFlag
	}
	if *noColorFlag {
		config.Output.Color = "never"
	}
	if *timeoutFlag > 0 {
		config.HTTP.Timeout = fmt.Sprintf("%ds", *timeoutFlag)
	}
	if *providerFlag != "" {
		config.IP.Provider = *providerFlag
	}
	if *geoipFlag != "" {
		config.GeoIP.Database = *geoipFlag
	}
	if *proxyFlag != "" {
		config.HTTP.Proxy = *proxyFlag
	}
	if *metricsFlag != "" {
		config.Metrics.Textfile = *metricsFlag
	}
	if *debugFlag {
		config.Debug = true
	}

	if err := config.Validate(); err != nil {
		return err
	}

	logger, err := NewLogger(config, stderr)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	pipeline, cleanup, err := newPipeline(config, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	timeout, err := config.HTTPTimeout()
	if err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap, runErr := pipeline.Run(runCtx)

	pipeline.Metrics.Finish(runErr == nil, time.Now())
	if path := config.Metrics.Textfile; path != "" {
		if err := pipeline.Metrics.WriteTextfile(path); err != nil {
			logger.Warn("failed to write metrics", zap.String("path", path), zap.Error(err))
		}
	}

	if runErr != nil {
		return toExitError(runErr)
	}

	enabled := make(map[string]bool, len(selected))
	for name, set := range selected {
		enabled[name] = *set
	}
	if sel, ok := selectField(enabled); ok {
		fmt.Fprintln(stdout, sel.Value(snap))
		return nil
	}

	formatter := NewFormatter(config.Output.Format, useColor(config.Output.Color, stdout), stdout)
	output, err := formatter.FormatSnapshot(snap)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, output)
	return nil
}

// newPipeline wires the stage implementations selected by config
func newPipeline(config *CLIConfig, logger *zap.Logger) (*Pipeline, func(), error) {
	cleanup := func() {}

	timeout, err := config.HTTPTimeout()
	if err != nil {
		return nil, cleanup, err
	}

	httpClient, err := services.NewHTTPClient(services.HTTPOptions{
		Timeout:   timeout,
		UserAgent: config.GetUserAgent(),
		Proxy:     config.HTTP.Proxy,
	}, logger)
	if err != nil {
		return nil, cleanup, NewConfigError(fmt.Sprintf("http.proxy: %v", err))
	}

	p := &Pipeline{
		Weather: services.NewOpenMeteoFetcher(httpClient, config.Endpoints.Weather),
		Metrics: metrics.NewRun(),
		Logger:  logger,
	}

	switch config.IP.Provider {
	case "dns":
		p.IP = services.NewDNSIPResolver(config.IP.DNSServer, config.IP.DNSName, config.IP.DNSIPv6, timeout)
	default:
		p.IP = services.NewHTTPIPResolver(httpClient, config.Endpoints.IP)
	}

	if config.GeoIP.Database != "" {
		db, err := services.OpenMMDBResolver(config.GeoIP.Database)
		if err != nil {
			return nil, cleanup, NewConfigError(fmt.Sprintf("geoip.database: %v", err))
		}
		p.Location = db
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Debug("failed to close geoip database", zap.Error(err))
			}
		}
	} else {
		p.Location = services.NewIPAPIResolver(httpClient, config.Endpoints.Geolocation)
	}

	return p, cleanup, nil
}

// printUsage prints the usage information
func printUsage(w io.Writer) {
	var sb strings.Builder
	sb.WriteString("ipweather - current weather for your public IP address\n\n")
	sb.WriteString("Usage:\n")
	sb.WriteString("  ipweather [flags]\n\n")
	sb.WriteString("Selection flags (the first one set, in this order, is printed alone):\n")
	for _, sel := range fieldSelectors {
		fmt.Fprintf(&sb, "  --%-22s %s\n", sel.Flag, sel.Usage)
	}
	sb.WriteString("\nGlobal Flags:\n")
	sb.WriteString("  --config <path>        Config file path (default: " + CLIConfigFile() + ")\n")
	sb.WriteString("  --output <format>      Output format: text, json (default: text)\n")
	sb.WriteString("  --no-color             Disable colored output\n")
	sb.WriteString("  --timeout <seconds>    Overall timeout for all lookups (default: 30)\n")
	sb.WriteString("  --ip-provider <name>   Public IP provider: http, dns (default: http)\n")
	sb.WriteString("  --geoip-db <path>      Resolve location from a local .mmdb city database\n")
	sb.WriteString("  --proxy <url>          socks5://, http:// or https:// proxy\n")
	sb.WriteString("  --metrics-file <path>  Write Prometheus run metrics to <path>\n")
	sb.WriteString("  --debug                Log debug output to stderr\n")
	sb.WriteString("  --version              Show version information\n")
	sb.WriteString("  --help                 Show this help message\n\n")
	sb.WriteString("Examples:\n")
	sb.WriteString("  ipweather\n")
	sb.WriteString("  ipweather --temperature\n")
	sb.WriteString("  ipweather --output json --ip-provider dns\n")
	fmt.Fprint(w, sb.String())
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s version %s\n", projectName, Version)
	fmt.Fprintf(w, "Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
}
