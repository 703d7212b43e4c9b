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
	"fmt"
	"os"
)

// ReadProcSelfFd resolves the current pathname of an open descriptor by
// reading the /proc/self/fd/<n> symlink the kernel maintains for it. This is
// the attack-detection primitive the whole resolver leans on: a descriptor's
// "real" path can only be learned this way, never by remembering the string
// that was used to open it.
func ReadProcSelfFd(fd int) (string, error) {
	link := fmt.Sprintf("/proc/self/fd/%d", fd)
	target, err := os.Readlink(link)
	if err != nil {
		return "", newError("readlink", fmt.Sprintf("path=%q", link), toErrno(err))
	}
	return target, nil
}
