package dbg

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
)

// Root is a named directory that trace paths are displayed relative to.
type Root struct {
	Name string `koanf:"name" json:"name" yaml:"name"`
	Dir  string `koanf:"dir" json:"dir" yaml:"dir"`
}

func defaultRoots() []Root {
	var roots []Root
	if wd, err := os.Getwd(); err == nil {
		roots = append(roots, Root{Name: "ROOT", Dir: wd})
	}
	if goroot := build.Default.GOROOT; goroot != "" {
		roots = append(roots, Root{Name: "GOROOT", Dir: goroot})
	}
	return roots
}

// TrimPath shortens path for display. Placeholders and paths outside every
// root are returned unchanged.
func (d *Debugger) TrimPath(path string) string {
	if path == "" || path == InternalFile {
		return path
	}
	if d.trimmer != nil {
		return d.trimmer(path)
	}
	return trimPath(d.roots, path)
}

// trimPath replaces the longest matching root prefix with the root's name.
func trimPath(roots []Root, path string) string {
	p := filepath.ToSlash(path)
	best, bestLen := "", -1
	for _, r := range roots {
		if r.Dir == "" {
			continue
		}
		dir := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(r.Dir)), "/")
		switch {
		case p == dir:
			if len(dir) > bestLen {
				best, bestLen = r.Name, len(dir)
			}
		case strings.HasPrefix(p, dir+"/"):
			if len(dir) > bestLen {
				best, bestLen = r.Name+"/"+p[len(dir)+1:], len(dir)
			}
		}
	}
	if bestLen < 0 {
		return path
	}
	return best
}
