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

// Package resolve implements the two interchangeable path-resolution
// backends (kernel-delegated and emulated) anchored at a root directory
// descriptor. Neither backend knows anything about the public Root/Handle
// API; they hand back a resolved *os.File or one of the sentinel error
// types below, and the caller (the root package) is the one that folds
// these into the public error taxonomy.
package resolve

import "fmt"

// NotSupportedError means the requested backend is unavailable on this
// kernel. The caller decides whether that is fatal or a cue to fall back.
type NotSupportedError struct {
	Feature string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("resolve: %s not supported by running kernel", e.Feature)
}

// MountCrossingError is raised by the emulated backend when a walk step
// lands on a descriptor whose device differs from the root's.
type MountCrossingError struct {
	Path           string
	RootDev        uint64
	EncounteredDev uint64
}

func (e *MountCrossingError) Error() string {
	return fmt.Sprintf("resolve: mount crossing at %q (root dev=%#x, encountered dev=%#x)", e.Path, e.RootDev, e.EncounteredDev)
}

// LoopDetectedError means the symlink-expansion counter exceeded its bound.
type LoopDetectedError struct {
	Expansions int
}

func (e *LoopDetectedError) Error() string {
	return fmt.Sprintf("resolve: symlink loop suspected after %d expansions", e.Expansions)
}

// TooBigError means the cumulative expanded symlink byte budget was exceeded.
type TooBigError struct {
	Bytes int
}

func (e *TooBigError) Error() string {
	return fmt.Sprintf("resolve: expanded symlink bytes (%d) exceed budget", e.Bytes)
}

// ReadbackMismatchError means the /proc/self/fd readback of a resolved
// descriptor did not start with the root's cached path.
type ReadbackMismatchError struct {
	Got  string
	Want string
}

func (e *ReadbackMismatchError) Error() string {
	return fmt.Sprintf("resolve: readback %q does not begin with root path %q", e.Got, e.Want)
}
