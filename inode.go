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

package rootpath

// InodeType tags the kind of inode Create should make. Exactly one of the
// constructor functions below should be used to build a value; the zero
// value is not a valid InodeType.
type InodeType struct {
	kind byte

	mode   uint32
	target string // Symlink
	existing string // Hardlink: root-relative path of the source
	dev    uint64 // CharacterDevice, BlockDevice
}

const (
	kindFile byte = iota + 1
	kindDirectory
	kindSymlink
	kindHardlink
	kindFifo
	kindCharDevice
	kindBlockDevice
)

// File describes a regular file to be created with the given permission
// bits (the S_IFMT bits of mode, if any, are stripped before use).
func File(mode uint32) InodeType {
	return InodeType{kind: kindFile, mode: mode}
}

// Directory describes a directory to be created with the given permission
// bits.
func Directory(mode uint32) InodeType {
	return InodeType{kind: kindDirectory, mode: mode}
}

// Symlink describes a symbolic link whose target is the given opaque byte
// string -- never validated or interpreted as a path by this package.
func Symlink(target string) InodeType {
	return InodeType{kind: kindSymlink, target: target}
}

// Hardlink describes a hard link to an existing inode named by a path
// rooted at the same Root; cross-root hardlinks are not supported.
func Hardlink(existingRootPath string) InodeType {
	return InodeType{kind: kindHardlink, existing: existingRootPath}
}

// Fifo describes a named pipe to be created with the given permission bits.
func Fifo(mode uint32) InodeType {
	return InodeType{kind: kindFifo, mode: mode}
}

// CharacterDevice describes a character device with the given permission
// bits and device number.
func CharacterDevice(mode uint32, dev uint64) InodeType {
	return InodeType{kind: kindCharDevice, mode: mode, dev: dev}
}

// BlockDevice describes a block device with the given permission bits and
// device number.
func BlockDevice(mode uint32, dev uint64) InodeType {
	return InodeType{kind: kindBlockDevice, mode: mode, dev: dev}
}
