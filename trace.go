/*------------------------------------------------------------------------------
* trace.go : leveled debug trace
*
* notes  : disabled unless TraceOpen is called; level 1 errors additionally go
*          to stdout. guarded by a mutex so concurrent parse call sites may
*          trace freely
*-----------------------------------------------------------------------------*/

package ionolab

import (
	"fmt"
	"os"
	"sync"
)

var (
	fpTrace    *os.File
	levelTrace int
	muTrace    sync.Mutex
)

/* open trace file; empty path traces to stdout ------------------------------*/
func TraceOpen(file string) {
	muTrace.Lock()
	defer muTrace.Unlock()

	if len(file) == 0 {
		fpTrace = os.Stdout
		return
	}
	fp, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace file open error: %s\n", err)
		return
	}
	fpTrace = fp
}

func TraceClose() {
	muTrace.Lock()
	defer muTrace.Unlock()

	if fpTrace != nil && fpTrace != os.Stdout {
		fpTrace.Close()
	}
	fpTrace = nil
}

func TraceLevel(level int) {
	muTrace.Lock()
	defer muTrace.Unlock()
	levelTrace = level
}

func Trace(level int, format string, v ...interface{}) {
	muTrace.Lock()
	defer muTrace.Unlock()

	if level <= 1 {
		fmt.Printf(format, v...)
	}
	if fpTrace == nil || level > levelTrace {
		return
	}
	fmt.Fprintf(fpTrace, "%d ", level)
	fmt.Fprintf(fpTrace, format, v...)
}
