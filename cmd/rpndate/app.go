package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/daviddao/rpndate/pkg/config"
	"github.com/daviddao/rpndate/pkg/date"
	"github.com/daviddao/rpndate/pkg/store"
)

// errIncomplete makes the process exit with status 2: the command ran, but
// the catalogue does not cover the requested range.
var errIncomplete = errors.New("coverage incomplete")

// app holds shared state for all CLI subcommands.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	out    io.Writer
	errOut io.Writer

	// flags shared by every command
	cfgPath string
	dbPath  string
	format  string
	jsonOut bool
	verbose bool

	catalog store.Catalog
	open    func(path string) (store.Catalog, error)
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:    out,
		errOut: errOut,
		log:    slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelWarn})),
		open:   openStore,
	}
}

// openStore opens the SQLite catalogue, creating its directory if needed.
func openStore(path string) (store.Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", path, err)
	}
	return s, nil
}

// setup resolves configuration and the logger. It runs before every
// command.
func (a *app) setup() error {
	cfg, err := config.Resolve(a.cfgPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	if a.format != "" {
		cfg.Output.Format = a.format
	}
	if a.jsonOut {
		cfg.Output.Format = "json"
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: lvl}))
	return nil
}

// openCatalog opens the catalogue on first use.
func (a *app) openCatalog() (store.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	c, err := a.open(a.cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("opened catalog", "path", a.cfg.Database.Path)
	a.catalog = c
	return c, nil
}

// Close releases the catalogue if one was opened.
func (a *app) Close() {
	if a.catalog != nil {
		a.catalog.Close()
		a.catalog = nil
	}
}

// emit writes v as JSON or YAML when asked to, otherwise calls text.
func (a *app) emit(v any, text func(w io.Writer)) error {
	switch strings.ToLower(a.cfg.Output.Format) {
	case "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(a.out)
		return nil
	}
}

// parseDate accepts "YYYYMMDD/HHMMSShh", "YYYYMMDD.HHMMSShh", a bare
// "YYYYMMDD" (midnight) or an RFC 3339 time.
func parseDate(s string, opts ...date.Option) (*date.Date, error) {
	if strings.ContainsAny(s, "T-:") {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", s, err)
		}
		return date.FromTime(t, opts...)
	}
	ymdStr, hmsStr, found := strings.Cut(s, "/")
	if !found {
		ymdStr, hmsStr, found = strings.Cut(s, ".")
	}
	ymd, err := strconv.Atoi(ymdStr)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, date.ErrInvalidArgumentType)
	}
	hms := 0
	if found {
		if hms, err = strconv.Atoi(hmsStr); err != nil {
			return nil, fmt.Errorf("parse time %q: %w", s, date.ErrInvalidArgumentType)
		}
	}
	return date.FromPrint(ymd, hms, opts...)
}

// parseHours parses a signed hour count.
func parseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("hours %q: %w", s, date.ErrInvalidArgumentType)
	}
	return h, nil
}
