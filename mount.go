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

import (
	"fmt"

	"github.com/moby/sys/mountinfo"
	"golang.org/x/sys/unix"
)

// mountSnapshot is a one-time, read-only parse of /proc/self/mountinfo
// taken at Open time, used only to enrich SafetyViolation diagnostics when
// the emulated resolver detects a mount-point crossing -- it never gates
// any decision, it only makes the resulting error message readable.
// Grounded on the teacher's mount/infoParser.go, which parses the same
// file into structured records for the same "explain the mount, don't act
// on it at this layer" purpose.
type mountSnapshot struct {
	entries []*mountinfo.Info
}

func newMountSnapshot() *mountSnapshot {
	entries, err := mountinfo.GetMounts(nil)
	if err != nil {
		// Best-effort: the snapshot only improves error text, so a failure
		// here (e.g. /proc not mounted) degrades to undecorated messages
		// rather than failing Open.
		return &mountSnapshot{}
	}
	return &mountSnapshot{entries: entries}
}

// describe returns a short human-readable description of the mount whose
// device number matches dev, or "" if the snapshot has no such entry.
func (m *mountSnapshot) describe(dev uint64) string {
	if m == nil {
		return ""
	}
	major, minor := int(unix.Major(dev)), int(unix.Minor(dev))
	for _, e := range m.entries {
		if e.Major == major && e.Minor == minor {
			return fmt.Sprintf("%s (%s) mounted at %s", e.Source, e.FSType, e.Mountpoint)
		}
	}
	return ""
}
