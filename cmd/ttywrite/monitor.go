package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errFailed = errors.New("target reported failure")

// monitor copies the lines read from r to w until the target reports a test
// result or a panic. It returns errFailed unless the tests passed.
func monitor(w io.Writer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		fmt.Fprintln(w, line)
		switch {
		case strings.HasPrefix(line, "fatal error:"), strings.HasPrefix(line, "panic:"):
			return errFailed
		case strings.TrimSpace(line) == "The pi is overdone.":
			return errFailed
		case line == "FAIL":
			return errFailed
		case line == "PASS":
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}
