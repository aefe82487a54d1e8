package cmd

import (
	"fmt"
	"io"
	"os"
)

// readInput reads the named file, or stdin for "-" or no name.
func readInput(in io.Reader, args []string) (name string, data []byte, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(in)
		if err != nil {
			return "", nil, fmt.Errorf("reading stdin: %w", err)
		}
		return "-", data, nil
	}
	name = args[0]
	data, err = os.ReadFile(name)
	if err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return name, data, nil
}

// writeFile replaces name with data, keeping the mode of an existing file.
func writeFile(name string, data []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(name); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(name, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
