// Package xslt applies XSLT stylesheets to XML documents through an external processor.
package xslt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds how long a single transformation may run.
const DefaultTimeout = 5 * time.Second

// waitDelay bounds how long a killed Saxon's children may hold its stdout and stderr open.
const waitDelay = time.Second

var (
	ErrNoStylesheet = errors.New("no stylesheet")
	ErrTimeout      = errors.New("transform timed out")
)

// A Transformer applies the stylesheet at the given path to the XML read from src.
type Transformer interface {
	Transform(ctx context.Context, stylesheet string, src io.Reader) ([]byte, error)
}

// TransformerFunc adapts a function to a Transformer.
type TransformerFunc func(ctx context.Context, stylesheet string, src io.Reader) ([]byte, error)

// Transform calls fn.
func (fn TransformerFunc) Transform(ctx context.Context, stylesheet string, src io.Reader) ([]byte, error) {
	return fn(ctx, stylesheet, src)
}

// Saxon runs the Saxon XSLT processor as a subprocess, one per transformation.
type Saxon struct {
	// Path to the Saxon jar, e.g., lib/saxon/saxon9he.jar
	Jar string

	// Java executable; defaults to "java"
	Java string

	// Upper bound for a transformation; defaults to DefaultTimeout
	Timeout time.Duration
}

// NewSaxon constructs a *Saxon using the jar at the provided path.
func NewSaxon(jar string, timeout time.Duration) *Saxon {
	return &Saxon{Jar: jar, Java: "java", Timeout: timeout}
}

// Transform pipes src into Saxon's stdin and returns what Saxon writes to stdout.
//
// The subprocess is killed when ctx is done or the Saxon's timeout elapses.
func (s *Saxon) Transform(ctx context.Context, stylesheet string, src io.Reader) ([]byte, error) {
	if stylesheet == "" {
		return nil, ErrNoStylesheet
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.java(), s.args(stylesheet)...)
	cmd.Stdin = src
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %s applying %s", ErrTimeout, timeout, stylesheet)
		}

		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("cannot apply %s: %w", stylesheet, err)
		}
		return nil, fmt.Errorf("cannot apply %s: %w: %s", stylesheet, err, msg)
	}

	return stdout.Bytes(), nil
}

func (s *Saxon) java() string {
	if s.Java == "" {
		return "java"
	}
	return s.Java
}

// args builds the command line for reading the source document from stdin.
func (s *Saxon) args(stylesheet string) []string {
	return []string{"-jar", s.Jar, "-xsl:" + stylesheet, "-s:-"}
}
