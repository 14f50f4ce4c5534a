package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Version is stamped with -ldflags "-X main.Version=...".
var Version = ""

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fbrowse: %v\n", err)
		os.Exit(1)
	}
}

// effectiveVersion prefers the ldflags value, then the module version, then
// the VCS revision stamped by the go command ("devel+<rev>[+dirty]").
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		return mv
	}

	vcs := make(map[string]string, len(info.Settings))
	for _, kv := range info.Settings {
		vcs[kv.Key] = kv.Value
	}
	rev := vcs["vcs.revision"]
	if rev == "" {
		return "devel"
	}
	ver := "devel+" + shortRevision(rev)
	if vcs["vcs.modified"] == "true" {
		ver += "+dirty"
	}
	return ver
}

func shortRevision(rev string) string {
	const n = 12
	if len(rev) > n {
		return rev[:n]
	}
	return rev
}
