// hwtest runs tests against the real peripherals. Build it like the kernel
// and load it with
//
//	ttywrite --monitor -i hwtest.bin /dev/ttyUSB0
//
// which exits with the test result.
package main

import (
	"os"
	"reflect"
	"runtime"
	"testing"

	"github.com/clktmr/rpi/machine"
)

func main() {
	defer machine.Recover()

	os.Args = append(os.Args, "-test.v")
	testing.Main(
		matchAll,
		[]testing.InternalTest{
			newInternalTest(TestTimerMonotonic),
			newInternalTest(TestSpinSleep),
			newInternalTest(TestStatusLED),
			newInternalTest(TestUARTIdle),
		},
		[]testing.InternalBenchmark{
			newInternalBenchmark(BenchmarkTimerNow),
		}, nil,
	)
}

func matchAll(_ string, _ string) (bool, error) { return true, nil }

func newInternalTest(testFn func(*testing.T)) testing.InternalTest {
	return testing.InternalTest{
		Name: runtime.FuncForPC(reflect.ValueOf(testFn).Pointer()).Name(),
		F:    testFn,
	}
}

func newInternalBenchmark(testFn func(*testing.B)) testing.InternalBenchmark {
	return testing.InternalBenchmark{
		Name: runtime.FuncForPC(reflect.ValueOf(testFn).Pointer()).Name(),
		F:    testFn,
	}
}
