package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/raphi011/wtproj/internal/log"
)

// GoProvider interprets a Go source file (package main) and calls
// <Kind>Hook() error functions declared in it.
//
// The script is evaluated once per provider. Hooks run in-process, so
// Invoke changes the process working directory and is not safe for
// concurrent use.
type GoProvider struct {
	Script string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	once    sync.Once
	interp  *interp.Interpreter
	loadErr error
}

// NewGoProvider returns a provider for the Go script at path.
func NewGoProvider(script string) *GoProvider {
	return &GoProvider{
		Script: script,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (p *GoProvider) load() (*interp.Interpreter, error) {
	p.once.Do(func() {
		i := interp.New(interp.Options{
			Stdin:  p.Stdin,
			Stdout: p.Stdout,
			Stderr: p.Stderr,
		})
		if err := i.Use(stdlib.Symbols); err != nil {
			p.loadErr = fmt.Errorf("load stdlib symbols: %w", err)
			return
		}
		if _, err := i.EvalPath(p.Script); err != nil {
			p.loadErr = fmt.Errorf("interpret %s: %w", p.Script, err)
			return
		}
		p.interp = i
	})
	return p.interp, p.loadErr
}

func (p *GoProvider) lookup(kind Kind) (reflect.Value, error) {
	i, err := p.load()
	if err != nil {
		return reflect.Value{}, err
	}
	fn, err := i.Eval(kind.goFunc())
	if err != nil {
		return reflect.Value{}, err
	}
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return reflect.Value{}, fmt.Errorf("%s is not a function", kind.goFunc())
	}
	return fn, nil
}

// Has reports whether the script declares the hook function. A script that
// fails to interpret is reported as a warning and treated as having no hooks.
func (p *GoProvider) Has(ctx context.Context, kind Kind) bool {
	if _, err := os.Stat(p.Script); err != nil {
		return false
	}
	if _, err := p.load(); err != nil {
		log.FromContext(ctx).Warnf("go hooks: %v", err)
		return false
	}
	_, err := p.lookup(kind)
	return err == nil
}

// Invoke calls the hook function with dir as the process working directory
// and restores the previous directory afterwards.
func (p *GoProvider) Invoke(ctx context.Context, kind Kind, dir string) (err error) {
	fn, err := p.lookup(kind)
	if err != nil {
		return err
	}

	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("enter %s: %w", dir, err)
	}
	defer func() {
		if cdErr := os.Chdir(prev); cdErr != nil && err == nil {
			err = fmt.Errorf("restore working directory: %w", cdErr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", kind.goFunc(), r)
		}
	}()

	log.FromContext(ctx).Debug("go hook", "func", kind.goFunc(), "dir", dir)
	return callHook(fn)
}

func callHook(fn reflect.Value) error {
	if fn.Type().NumIn() != 0 {
		return fmt.Errorf("hook must take no arguments")
	}
	results := fn.Call(nil)
	switch len(results) {
	case 0:
		return nil
	case 1:
		if results[0].Kind() != reflect.Interface {
			return fmt.Errorf("hook must return error")
		}
		if results[0].IsNil() {
			return nil
		}
		if e, ok := results[0].Interface().(error); ok {
			return e
		}
		return fmt.Errorf("hook returned non-error value")
	default:
		return fmt.Errorf("hook must return error")
	}
}
