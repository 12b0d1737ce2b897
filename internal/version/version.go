package version

import "github.com/fatih/color"

// Build metadata for the keyva CLI. Release builds stamp GitCommit and
// BuildDate through -ldflags; a source build leaves them empty.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version, with each component tinted for the
	// pretty output. The color package strips the escapes when disabled.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	GitCommit = ""
	BuildDate = ""
)
