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

package rootpath_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	rootpath "github.com/nestybox/rootpath"
)

func TestRemoveFile(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestRemove")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	r, err := rootpath.Open(tmpDir)
	require.NoError(t, err)
	defer r.Close()

	h, err := r.CreateFile("/f", 0644)
	require.NoError(t, err)
	h.Close()

	require.NoError(t, r.Remove("/f"))

	_, err = os.Stat(filepath.Join(tmpDir, "f"))
	require.True(t, os.IsNotExist(err))
}

func TestRemoveDirectory(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestRemove")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	r, err := rootpath.Open(tmpDir)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Create("/d", rootpath.Directory(0755)))
	require.NoError(t, r.Remove("/d"))

	_, err = os.Stat(filepath.Join(tmpDir, "d"))
	require.True(t, os.IsNotExist(err))
}

func TestRemoveNonexistentFails(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestRemove")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	r, err := rootpath.Open(tmpDir)
	require.NoError(t, err)
	defer r.Close()

	err = r.Remove("/nope")
	require.Error(t, err)
}

func TestRemoveInodeTypeRace(t *testing.T) {
	// Exercises the retry loop's type-refetch: start with a file, replace
	// it with a directory before Remove ever looks at it, and confirm a
	// single coherent outcome (success or one surfaced error) rather than a
	// stale-type crash.
	tmpDir, err := ioutil.TempDir("", "TestRemove")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	r, err := rootpath.Open(tmpDir)
	require.NoError(t, err)
	defer r.Close()

	h, err := r.CreateFile("/x", 0644)
	require.NoError(t, err)
	h.Close()

	require.NoError(t, os.Remove(filepath.Join(tmpDir, "x")))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "x"), 0755))

	require.NoError(t, r.Remove("/x"))
}
