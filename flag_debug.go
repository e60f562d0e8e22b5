//go:build debug

package once

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"
)

type holder struct {
	file     string
	funcName string
	line     int
	gid      int
}

type busyFlag struct {
	held   atomic.Bool
	gid    atomic.Int64
	holder atomic.Pointer[holder]
}

func (f *busyFlag) tryAcquire() bool {
	if f.held.Swap(true) {
		if _gLogOut {
			var h holder
			if p := f.holder.Load(); p != nil {
				h = *p
			}
			gid := getGID()
			funcName, file, line, _ := runtime.Caller(2)
			msg := fmt.Sprintf("flag contended\nheld by:\n\t[gid:%d] func: %s\t%s:%d\ncalling on:\n\t[gid:%d] func: %s\t%s:%d\n",
				h.gid, h.funcName, h.file, h.line, gid, runtime.FuncForPC(funcName).Name(), file, line)
			_gLogger.Printf(warnFormat, time.Now().Format(layout), msg)
		}
		return false
	}
	gid := getGID()
	f.gid.Store(int64(gid))
	funcName, file, line, _ := runtime.Caller(2)
	f.holder.Store(&holder{file: file, funcName: runtime.FuncForPC(funcName).Name(), line: line, gid: gid})
	return true
}

func (f *busyFlag) release() {
	f.gid.Store(0)
	f.held.Store(false)
}

func (f *busyFlag) heldByCaller() bool {
	return f.held.Load() && f.gid.Load() == int64(getGID())
}
