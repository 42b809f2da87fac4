package logging

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RawInfix marks a raw run log; every derived artifact replaces it
const RawInfix = ".raw."

// ArtifactPaths are the files derived from one raw log
type ArtifactPaths struct {
	Raw      string
	Elements string
	Full     string
	Issues   string
}

// PathsForRawLog derives the artifact paths of rawPath by substituting its
// last ".raw." infix
func PathsForRawLog(rawPath string) (ArtifactPaths, error) {
	if !IsRawLog(rawPath) {
		return ArtifactPaths{}, fmt.Errorf("%s is not a raw log: file name must contain %q", rawPath, RawInfix)
	}
	return ArtifactPaths{
		Raw:      rawPath,
		Elements: replaceInfix(rawPath, ".elements."),
		Full:     replaceInfix(rawPath, ".full."),
		Issues:   replaceInfix(rawPath, ".issues."),
	}, nil
}

// IsRawLog reports whether the file name of path carries the raw infix
func IsRawLog(path string) bool {
	return strings.Contains(filepath.Base(path), RawInfix)
}

// Stamped returns path with stamp inserted before its extension, giving the
// timestamped copy of a report (run.full.yaml -> run.full.20190312_162105.yaml)
func Stamped(path, stamp string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + stamp + ext
}

func replaceInfix(rawPath, infix string) string {
	dir, name := filepath.Split(rawPath)
	i := strings.LastIndex(name, RawInfix)
	return dir + name[:i] + infix + name[i+len(RawInfix):]
}
