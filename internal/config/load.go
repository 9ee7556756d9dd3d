package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tetris/internal/logging"
)

//go:embed default_config.json
var defaultPayload []byte

// DefaultPayload returns a copy of the built-in tetris.json content.
func DefaultPayload() []byte {
	return append([]byte(nil), defaultPayload...)
}

// Default parses the built-in configuration. The payload ships with the
// binary, so a failure here is a build defect.
func Default() Config {
	cfg, err := Parse(defaultPayload)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default is invalid: %v", err))
	}
	return cfg
}

var (
	ErrFileUnreadable       = errors.New("config file unreadable")
	ErrBootstrapWriteFailed = errors.New("default config could not be written")
	ErrParseFailed          = errors.New("config file could not be parsed")
)

type ErrorKind string

const (
	KindLocationUnresolvable ErrorKind = "location_unresolvable"
	KindFileUnreadable       ErrorKind = "file_unreadable"
	KindBootstrapWriteFailed ErrorKind = "bootstrap_write_failed"
	KindParseFailed          ErrorKind = "parse_failed"
)

// LoadError is a recovered failure. It matches both the sentinel for its
// kind and the underlying cause under errors.Is.
type LoadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindLocationUnresolvable:
		return ErrLocationUnresolvable
	case KindFileUnreadable:
		return ErrFileUnreadable
	case KindBootstrapWriteFailed:
		return ErrBootstrapWriteFailed
	default:
		return ErrParseFailed
	}
}

type Source int

const (
	// SourceEmbedded means the built-in default was used in memory.
	SourceEmbedded Source = iota
	// SourceFile means an existing file was read and parsed.
	SourceFile
	// SourceBootstrapped means the default was written to disk on this run
	// and read back.
	SourceBootstrapped
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceBootstrapped:
		return "bootstrapped"
	default:
		return "embedded"
	}
}

// Report describes how Load arrived at its result.
type Report struct {
	Path      string
	Source    Source
	Recovered []error
}

type loadOptions struct {
	path      string
	app       AppID
	logger    logging.Logger
	writeFile func(path string, data []byte) error
}

type LoadOption func(*loadOptions)

// WithPath skips location resolution and loads from path.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) { o.path = path }
}

func WithApp(app AppID) LoadOption {
	return func(o *loadOptions) { o.app = app }
}

func WithLogger(logger logging.Logger) LoadOption {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Load resolves, reads, bootstraps and parses the key-binding file. It
// always returns a usable Config: every failure falls back to the built-in
// default and is reported as a warning.
func Load(opts ...LoadOption) Config {
	cfg, _ := LoadWithReport(opts...)
	return cfg
}

func LoadWithReport(opts ...LoadOption) (Config, Report) {
	o := loadOptions{
		app:       DefaultApp,
		logger:    logging.Nop(),
		writeFile: writeFileAtomic,
	}
	for _, opt := range opts {
		opt(&o)
	}

	report := Report{Path: o.path, Source: SourceEmbedded}
	recovered := func(err *LoadError) (Config, Report) {
		report.Recovered = append(report.Recovered, err)
		o.logger.Warn("using default config",
			logging.F("kind", string(err.Kind)),
			logging.F("path", err.Path),
			logging.Err(err.Err),
		)
		return Default(), report
	}

	if report.Path == "" {
		path, err := ConfigPath(o.app)
		if err != nil {
			return recovered(&LoadError{Kind: KindLocationUnresolvable, Err: err})
		}
		report.Path = path
	}

	data, source, loadErr := o.read(report.Path)
	if loadErr != nil {
		return recovered(loadErr)
	}
	cfg, err := Parse(data)
	if err != nil {
		return recovered(&LoadError{Kind: KindParseFailed, Path: report.Path, Err: err})
	}
	report.Source = source
	o.logger.Debug("config loaded", logging.F("path", report.Path), logging.F("source", source))
	return cfg, report
}

func (o loadOptions) read(path string) ([]byte, Source, *LoadError) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, SourceFile, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, SourceEmbedded, &LoadError{Kind: KindFileUnreadable, Path: path, Err: err}
	}

	o.logger.Info("config file not found, creating default", logging.F("path", path))
	if err := o.writeFile(path, defaultPayload); err != nil {
		return nil, SourceEmbedded, &LoadError{Kind: KindBootstrapWriteFailed, Path: path, Err: err}
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, SourceEmbedded, &LoadError{Kind: KindFileUnreadable, Path: path, Err: err}
	}
	return data, SourceBootstrapped, nil
}

// writeFileAtomic creates the parent directories and replaces path with data
// via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	file, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if err := os.Chmod(file.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(file.Name(), path)
}
