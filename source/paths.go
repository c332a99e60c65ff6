/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPaths resolves include patterns into a sorted, deduplicated list of
// directories. A pattern without glob characters must name a directory.
// Patterns use doublestar syntax, so "internal/**" matches every directory
// below internal. Directories matching an exclude pattern are dropped.
func ExpandPaths(include, exclude []string) ([]string, error) {
	seen := map[string]bool{}
	var dirs []string
	for _, pattern := range include {
		matches, err := expandPattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if seen[m] || excluded(m, exclude) {
				continue
			}
			seen[m] = true
			dirs = append(dirs, m)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func expandPattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		abs, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("path is not a directory: %s", abs)
		}
		return []string{abs}, nil
	}

	absPattern, err := filepath.Abs(pattern)
	if err != nil {
		return nil, err
	}
	// Use doublestar for ** support
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var dirs []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue // Skip paths that can't be stat'd
		}
		if info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no directories match pattern: %s", pattern)
	}
	return dirs, nil
}

// excluded matches dir against exclude patterns, both as an absolute path
// and relative to the working directory.
func excluded(dir string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	abs := filepath.ToSlash(dir)
	candidates := []string{abs, strings.TrimPrefix(abs, "/")}
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, dir); err == nil {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	for _, pattern := range exclude {
		pattern = filepath.ToSlash(pattern)
		for _, c := range candidates {
			if ok, _ := doublestar.Match(pattern, c); ok {
				return true
			}
		}
	}
	return false
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
