// Package fileutil holds file modes shared by the packages that write to disk.
package fileutil

import "os"

// ReadableByAll is the file permission mode for rendered declaration files,
// which are published alongside the built product modules.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the permission mode for output directories.
const DirReadableByAll os.FileMode = 0o755
