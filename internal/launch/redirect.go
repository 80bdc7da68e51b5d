// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/marcelocantos/mish/internal/pipeline"
)

// Streams holds the files opened for one stage's redirections.
// Stdin and Stdout are nil when the stage does not redirect them.
type Streams struct {
	Stdin  *os.File
	Stdout *os.File
	files  []*os.File
}

// OpenRedirects opens every redirect target in order, resolving relative
// paths against dir. When a stream is redirected more than once the last
// directive wins, but every target is still opened (and truncated or
// created) as a real shell would.
func OpenRedirects(dir string, redirects []pipeline.Redirect) (*Streams, error) {
	s := &Streams{}
	for _, r := range redirects {
		f, err := openRedirect(dir, r)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.files = append(s.files, f)
		if r.Kind == pipeline.RedirectInput {
			s.Stdin = f
		} else {
			s.Stdout = f
		}
	}
	return s, nil
}

func openRedirect(dir string, r pipeline.Redirect) (*os.File, error) {
	path := r.Path
	if dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	switch r.Kind {
	case pipeline.RedirectInput:
		return os.Open(path)
	case pipeline.RedirectTruncate:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	case pipeline.RedirectAppend:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	default:
		return nil, errors.New("unknown redirection " + r.String())
	}
}

// Close closes every opened file.
func (s *Streams) Close() error {
	var errs []error
	for _, f := range s.files {
		errs = append(errs, f.Close())
	}
	s.files = nil
	return errors.Join(errs...)
}
