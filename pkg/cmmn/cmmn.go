// 12 Mar 2024

// Package cmmn has the small definitions shared by the mmtf packages
// and their tests. It should stay tiny.
package cmmn

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// A null byte in the file means an alt-loc or insertion code is absent.
// In the hierarchy we use a blank instead.
const (
	AbsentChar byte = 0
	BlankChar  byte = ' '
)

// WrtTemp writes bytes to a temporary file and returns the
// filename. It is used all over the place in testing.
func WrtTemp(b []byte) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}

	if _, err := f_tmp.Write(b); err != nil {
		return "", fmt.Errorf("writing to temp file %v", f_tmp.Name())
	}
	name := f_tmp.Name()
	f_tmp.Close()
	return name, nil
}

// CpTemp copies a reader to a temporary file, for tests which need a
// filename rather than a stream.
func CpTemp(r io.Reader) (string, error) {
	f_tmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail")
	}
	defer f_tmp.Close()
	if _, err := io.Copy(f_tmp, r); err != nil {
		return "", err
	}
	return f_tmp.Name(), nil
}
