package cli

import (
	"fmt"
	"io"
	"os"
)

// Emit writes a command result. With writeInPlace it replaces path, and only
// touches the file when the content changed; otherwise the result goes to w.
func Emit(w io.Writer, path string, writeInPlace bool, result string) error {
	if !writeInPlace {
		_, err := io.WriteString(w, result)
		return err
	}
	if path == "" {
		return fmt.Errorf("-w requires an output file")
	}
	if err := writeIfChanged(path, result); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// writeIfChanged writes result to path unless it already holds it.
func writeIfChanged(path, result string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if err == nil && string(data) == result {
		return nil
	}
	return os.WriteFile(path, []byte(result), 0644)
}
