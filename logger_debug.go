//go:build debug

package once

import (
	"io"
	"log"
	"os"
	"time"
)

// CheckContention turns contention diagnostics on or off. While on,
// every failed flag acquire reports the current holder's call site to
// stdout and to a log file named after where.
func CheckContention(ok bool, where string) {
	_gLogOut = ok
	if ok {
		file, err := os.OpenFile("./contention-"+where+"-"+time.Now().Format("20060102150405.999")+".log", os.O_CREATE|os.O_WRONLY|os.O_SYNC|os.O_APPEND, 0666)
		if err != nil {
			_gLogOut = false
			return
		}
		_gLogger = log.New(io.MultiWriter(file, os.Stdout), "", 0)
	}
}
