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

package sysx

import (
	"io/ioutil"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func openDir(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := Openat(unix.AT_FDCWD, path, unix.O_PATH|unix.O_DIRECTORY, 0)
	if err != nil {
		t.Fatalf("Openat(%q) failed: %v", path, err)
	}
	return f
}

func TestMkdiratSymlinkatReadlinkat(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestSysx")
	if err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dir := openDir(t, tmpDir)
	defer dir.Close()

	if err := Mkdirat(int(dir.Fd()), "sub", 0755); err != nil {
		t.Fatalf("Mkdirat failed: %v", err)
	}

	if err := Symlinkat("sub", int(dir.Fd()), "link"); err != nil {
		t.Fatalf("Symlinkat failed: %v", err)
	}

	target, err := Readlinkat(int(dir.Fd()), "link")
	if err != nil {
		t.Fatalf("Readlinkat failed: %v", err)
	}
	if target != "sub" {
		t.Fatalf("Readlinkat = %q, want %q", target, "sub")
	}
}

func TestFstatatAndUnlinkat(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestSysx")
	if err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dir := openDir(t, tmpDir)
	defer dir.Close()

	f, err := Openat(int(dir.Fd()), "file", unix.O_CREAT|unix.O_EXCL, 0644)
	if err != nil {
		t.Fatalf("Openat(O_CREAT|O_EXCL) failed: %v", err)
	}
	f.Close()

	st, err := Fstatat(int(dir.Fd()), "file", 0)
	if err != nil {
		t.Fatalf("Fstatat failed: %v", err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		t.Fatalf("Fstatat mode = %#o, want regular file", st.Mode)
	}

	if err := Unlinkat(int(dir.Fd()), "file", 0); err != nil {
		t.Fatalf("Unlinkat failed: %v", err)
	}

	if _, err := Fstatat(int(dir.Fd()), "file", 0); err == nil {
		t.Fatal("expected Fstatat to fail after Unlinkat")
	}
}

func TestReadProcSelfFd(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestSysx")
	if err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dir := openDir(t, tmpDir)
	defer dir.Close()

	got, err := ReadProcSelfFd(int(dir.Fd()))
	if err != nil {
		t.Fatalf("ReadProcSelfFd failed: %v", err)
	}
	if got != tmpDir {
		t.Fatalf("ReadProcSelfFd = %q, want %q", got, tmpDir)
	}
}

func TestDup(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestSysx")
	if err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dir := openDir(t, tmpDir)
	defer dir.Close()

	dup, err := Dup(dir)
	if err != nil {
		t.Fatalf("Dup failed: %v", err)
	}
	defer dup.Close()

	if dup.Fd() == dir.Fd() {
		t.Fatal("Dup returned the same descriptor")
	}
}

func TestRenameat2ZeroFlagsFallback(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestSysx")
	if err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dir := openDir(t, tmpDir)
	defer dir.Close()

	f, err := Openat(int(dir.Fd()), "old", unix.O_CREAT|unix.O_EXCL, 0644)
	if err != nil {
		t.Fatalf("Openat failed: %v", err)
	}
	f.Close()

	if err := Renameat2(int(dir.Fd()), "old", int(dir.Fd()), "new", 0); err != nil {
		t.Fatalf("Renameat2 failed: %v", err)
	}

	if _, err := Fstatat(int(dir.Fd()), "new", 0); err != nil {
		t.Fatalf("expected renamed file to exist: %v", err)
	}
}
