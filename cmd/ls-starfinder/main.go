// Command ls-starfinder identifies the star you saw from where you stood,
// when, and where you were looking.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-starfinder/internal/catalog"
	"github.com/litescript/ls-starfinder/internal/dump"
	"github.com/litescript/ls-starfinder/internal/finder"
	"github.com/litescript/ls-starfinder/internal/geo"
	"github.com/litescript/ls-starfinder/internal/input"
	"github.com/litescript/ls-starfinder/internal/logging"
	"github.com/litescript/ls-starfinder/internal/metrics"
	"github.com/litescript/ls-starfinder/internal/report"
	"github.com/litescript/ls-starfinder/internal/search"
	"github.com/litescript/ls-starfinder/internal/state"
	"github.com/litescript/ls-starfinder/internal/ui"
)

// CLI flags for headless mode
var (
	location  string
	altitude  string
	azimuth   string
	year      string
	month     string
	day       string
	hour      string
	minute    string
	second    string
	jsonMode  bool
	latDeg    float64
	lonDeg    float64
	utcOffset int
)

const (
	minTimeout = 5 * time.Second
	maxTimeout = 10 * time.Minute
)

func main() {
	now := time.Now()
	_, localOffset := now.Zone()

	flag.StringVar(&location, "location", "", "Where the sighting was made (place name)")
	flag.StringVar(&altitude, "alt", "", "Altitude above the horizon in degrees")
	flag.StringVar(&azimuth, "az", "", "Azimuth in degrees, 0=N 90=E")
	flag.StringVar(&year, "year", strconv.Itoa(now.Year()), "Local year of the sighting")
	flag.StringVar(&month, "month", strconv.Itoa(int(now.Month())), "Local month")
	flag.StringVar(&day, "day", strconv.Itoa(now.Day()), "Local day")
	flag.StringVar(&hour, "hour", strconv.Itoa(now.Hour()), "Local hour")
	flag.StringVar(&minute, "minute", strconv.Itoa(now.Minute()), "Local minute")
	flag.StringVar(&second, "second", strconv.Itoa(now.Second()), "Local second")
	flag.Float64Var(&latDeg, "lat", 0, "Observer latitude; skips the location lookup when set with -lon")
	flag.Float64Var(&lonDeg, "lon", 0, "Observer longitude, east positive")
	flag.IntVar(&utcOffset, "utc-offset", localOffset/3600, "UTC offset in hours for -lat/-lon and the first zone lookup")
	flag.BoolVar(&jsonMode, "json", false, "Print the result as JSON (headless)")
	offline := flag.Bool("offline", false, "Search the built-in bright-star table instead of SIMBAD")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	dumpDir := flag.String("dump-dir", "", "Save raw service responses to this directory")
	timeout := flag.Duration("timeout", finder.DefaultConfig().Timeout, "Time limit for one sighting")
	cacheTTL := flag.Duration("cache-ttl", catalog.DefaultCacheTTL, "How long catalog answers are reused")
	flag.Parse()

	// Validate timeout
	if *timeout < minTimeout {
		*timeout = minTimeout
	} else if *timeout > maxTimeout {
		*timeout = maxTimeout
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	fixed := set["lat"] && set["lon"]

	// Set up logging
	logger := logging.New(logging.ParseLevel(*logLevel))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if *metricsAddr != "" {
		go serveMetrics(ctx, *metricsAddr, logger)
	}

	var store *dump.Store
	if *dumpDir != "" {
		var err error
		if store, err = dump.New(*dumpDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Initialize components
	resolver := newResolver(fixed, store, logger)
	lookup := newLookup(*offline, *cacheTTL, store, logger)

	cfg := finder.DefaultConfig()
	cfg.Timeout = *timeout
	f := finder.New(resolver, lookup, cfg, logger.Named("finder"))

	stateMgr := state.NewManager(state.DefaultConfig())

	// Headless mode: no TUI
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if !isTTY || location != "" || fixed {
		os.Exit(runHeadless(ctx, f, stateMgr, utcOffset))
	}

	// The TUI owns the terminal, so keep log lines off it
	logger.SetOutput(io.Discard)

	model := ui.New(ctx, f, stateMgr, utcOffset, search.DefaultConfig().MaxRadiusDeg, now)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func newResolver(fixed bool, store *dump.Store, logger *logging.Logger) geo.Resolver {
	if fixed {
		return geo.Fixed{Location: geo.Location{
			Name:           location,
			LatDeg:         latDeg,
			LonDeg:         lonDeg,
			UTCOffsetHours: utcOffset,
		}}
	}

	weatherKey := os.Getenv("WEATHERAPI_KEY")
	zoneKey := os.Getenv("GOOGLE_TIMEZONE_KEY")
	if weatherKey == "" || zoneKey == "" {
		logger.Warn("WEATHERAPI_KEY or GOOGLE_TIMEZONE_KEY is unset; place lookups will fail (use -lat/-lon)")
	}

	geoLog := logger.Named("geo")
	return geo.ChainResolver{
		Places: geo.NewWeatherAPIClient(geo.WithAPIKey(weatherKey), geo.WithDump(store), geo.WithLogger(geoLog)),
		Zones:  geo.NewTimezoneClient(geo.WithAPIKey(zoneKey), geo.WithDump(store), geo.WithLogger(geoLog)),
	}
}

func newLookup(offline bool, ttl time.Duration, store *dump.Store, logger *logging.Logger) search.Lookup {
	if offline {
		return catalog.NewLocalCatalog(nil)
	}
	client := catalog.NewSimbadClient(
		catalog.WithDump(store),
		catalog.WithLogger(logger.Named("catalog")),
	)
	return catalog.NewCache(client, ttl)
}

// runHeadless runs one sighting from the flags and returns the exit code.
func runHeadless(ctx context.Context, f *finder.Finder, stateMgr *state.Manager, offset int) int {
	req := finder.Request{
		Form: input.RawForm{
			Location: location,
			Altitude: altitude,
			Azimuth:  azimuth,
			Year:     year,
			Month:    month,
			Day:      day,
			Hour:     hour,
			Minute:   minute,
			Second:   second,
		},
		PriorOffsetHours: offset,
	}

	start := time.Now()
	rep, err := f.Find(ctx, req)
	entry := stateMgr.Record(req, rep, time.Since(start), err)

	if jsonMode {
		export := report.NewExport(entry.ID, entry.RecordedAt, entry.Duration, entry.Report, entry.Err)
		if werr := export.WriteJSON(os.Stdout); werr != nil {
			fmt.Fprintf(os.Stderr, "Error: write JSON to stdout: %v\n", werr)
			return 1
		}
	} else if err == nil {
		report.WriteText(os.Stdout, rep)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func serveMetrics(ctx context.Context, addr string, logger *logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server: %v", err)
	}
}
