package config

import (
	"errors"
	"sync"
)

var ErrCellAlreadySet = errors.New("cell already set")

// Cell holds a value that is written once and read many times.
type Cell[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool
}

// Set stores v if the cell is empty.
func (c *Cell[T]) Set(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set {
		return ErrCellAlreadySet
	}
	c.value = v
	c.set = true
	return nil
}

func (c *Cell[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.set
}

type installed struct {
	config Config
	help   []string
}

var global Cell[installed]

// Install stores cfg and its help lines for the rest of the process. A
// second call is a programming error and panics.
func Install(cfg Config) {
	if err := global.Set(installed{config: cfg, help: HelpMessage(cfg)}); err != nil {
		panic("config: Install called twice: " + err.Error())
	}
}

// Installed reports whether Install has run.
func Installed() bool {
	_, ok := global.Get()
	return ok
}

// Current returns the installed Config. It panics before Install.
func Current() Config {
	return mustInstalled().config
}

// Help returns a copy of the installed help lines. It panics before Install.
func Help() []string {
	return append([]string(nil), mustInstalled().help...)
}

func mustInstalled() installed {
	v, ok := global.Get()
	if !ok {
		panic("config: Current called before Install")
	}
	return v
}
