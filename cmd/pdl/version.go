package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the pdl release. Tagged module builds report the module
// version; anything else is a development build of the release named in the
// VERSION file, suffixed with the short commit when the build recorded one.
func Version() string {
	release := strings.TrimSpace(embeddedVersion)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return release
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var commit string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) >= 7 {
				commit = s.Value[:7]
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	v := release + "-dev"
	if commit != "" {
		v += "+" + commit
		if dirty {
			v += ".dirty"
		}
	}
	return v
}
