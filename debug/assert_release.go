//go:build !debug

package debug

const Enabled = false

func Assert(ok bool, message string) {}

func AssertErrNil(err error) {}
