//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package pathutil holds the small, syscall-free helpers that operate on
// path strings as opaque byte sequences with '/' as the sole reserved
// separator -- no locale handling, no Unicode normalization, no lexical
// cleaning beyond picking out the trailing component.
package pathutil

import (
	"errors"
	"strings"
)

// ErrNoTrailingComponent is returned by Split when the path has no final
// component to operate on (bare "/" or the empty string).
var ErrNoTrailingComponent = errors.New("path has no trailing component")

// ErrEmbeddedSeparator is returned by Split when the trailing component it
// extracted still contains a '/'. This should be unreachable through normal
// splitting, but the check stands regardless: callers may hand Split a name
// that was itself built from untrusted input (e.g. a symlink target), and
// this is the chokepoint that forbids smuggling extra components into what
// is supposed to be a single, final path element.
var ErrEmbeddedSeparator = errors.New("trailing component contains '/'")

// Split breaks path into (parent, name), where name is guaranteed free of
// '/' on success. When path has no parent directory portion, parent is "/".
func Split(path string) (parent, name string, err error) {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "", "", ErrNoTrailingComponent
	}

	if idx := strings.LastIndexByte(trimmed, '/'); idx < 0 {
		parent = "/"
		name = trimmed
	} else if idx == 0 {
		parent = "/"
		name = trimmed[1:]
	} else {
		parent = trimmed[:idx]
		name = trimmed[idx+1:]
	}

	if strings.IndexByte(name, '/') != -1 {
		return "", "", ErrEmbeddedSeparator
	}
	return parent, name, nil
}

// IsAbsolute reports whether path is rooted ('/'-prefixed). No other
// classification (drive letters, UNC, etc.) applies on this platform.
func IsAbsolute(path string) bool {
	return strings.HasPrefix(path, "/")
}

// Components splits path on '/' into its non-empty components, discarding
// "" segments produced by a leading '/' or repeated separators. A leading
// '/' carries no extra meaning here beyond that filtering: every walk in
// this module begins at the root descriptor regardless, so an absolute or
// relative path is resolved identically.
func Components(path string) []string {
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if c == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
