//go:build unix

package driver

import (
	log "github.com/golang/glog"
	"golang.org/x/sys/unix"
)

// checkFileLimit warns when the process's open-file soft limit looks
// too low for jobs workers, each of which may hold a subprocess's
// stdout/stderr pipes plus its own source/output file descriptors
// open at once. Grounded on subcmd/ninja/limits_unix.go's
// checkResourceLimits: unix.Getrlimit(RLIMIT_NOFILE) against an
// estimated requirement, warn rather than fail.
func checkFileLimit(jobs int) {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &lim); err != nil {
		log.V(1).Infof("checking file limit: %v", err)
		return
	}
	required := uint64(jobs) * 8 // stdout+stderr pipes, source+output fds per in-flight unit
	log.V(1).Infof("rlimit.nofile=%d,%d required=%d?", lim.Cur, lim.Max, required)
	if lim.Cur < required {
		log.Warningf("open-file limit %d is low for %d jobs (wanted >= %d); consider raising ulimit -n", lim.Cur, jobs, required)
	}
}
