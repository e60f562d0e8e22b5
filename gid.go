package once

import (
	"bytes"
	"runtime"
	"strconv"
)

// getGID parses the current goroutine id out of the stack header. Only
// used to classify a failed flag acquire as reentrancy or contention.
func getGID() int {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	gid, _ := strconv.Atoi(string(b))
	return gid
}
