// Package cli provides the file handling shared by mdannotate commands.
package cli

import (
	"io"
	"os"
)

// ReadText returns the text to annotate. Several paths are concatenated in
// order; no paths means stdin.
func ReadText(paths []string) (string, error) {
	r, err := open(paths)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func open(paths []string) (io.ReadCloser, error) {
	switch len(paths) {
	case 0:
		return io.NopCloser(os.Stdin), nil
	case 1:
		return os.Open(paths[0])
	}

	readers := make([]io.Reader, 0, len(paths))
	closers := make([]io.Closer, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			// Close any files we've already opened
			for _, c := range closers {
				c.Close()
			}
			return nil, err
		}
		readers = append(readers, f)
		closers = append(closers, f)
	}

	return &multiReadCloser{
		reader:  io.MultiReader(readers...),
		closers: closers,
	}, nil
}

type multiReadCloser struct {
	reader  io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Read(p []byte) (int, error) {
	return m.reader.Read(p)
}

func (m *multiReadCloser) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
