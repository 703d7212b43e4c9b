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

package pathutil

import (
	"errors"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantParent string
		wantName   string
		wantErr    error
	}{
		{name: "simple", path: "/a/b", wantParent: "/a", wantName: "b"},
		{name: "single component", path: "/a", wantParent: "/", wantName: "a"},
		{name: "relative simple", path: "a/b", wantParent: "a", wantName: "b"},
		{name: "relative single", path: "a", wantParent: "/", wantName: "a"},
		{name: "trailing slash", path: "/a/b/", wantParent: "/a", wantName: "b"},
		{name: "repeated trailing slash", path: "/a/b//", wantParent: "/a", wantName: "b"},
		{name: "bare root", path: "/", wantErr: ErrNoTrailingComponent},
		{name: "empty", path: "", wantErr: ErrNoTrailingComponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, name, err := Split(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Split(%q) err = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split(%q) unexpected error: %v", tt.path, err)
			}
			if parent != tt.wantParent || name != tt.wantName {
				t.Fatalf("Split(%q) = (%q, %q), want (%q, %q)", tt.path, parent, name, tt.wantParent, tt.wantName)
			}
		})
	}
}

func TestSplitIdempotence(t *testing.T) {
	cases := []struct{ parent, name string }{
		{"/a", "b"}, {"/", "a"}, {"a", "b"},
	}
	for _, c := range cases {
		joined := c.parent
		if joined != "/" {
			joined += "/"
		} else {
			joined = "/"
		}
		joined += c.name

		parent, name, err := Split(joined)
		if err != nil {
			t.Fatalf("Split(%q) unexpected error: %v", joined, err)
		}
		if parent != c.parent || name != c.name {
			t.Fatalf("Split(join(%q,%q)) = (%q,%q), want original", c.parent, c.name, parent, name)
		}
	}
}

func TestComponents(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/a/b/c", []string{"a", "b", "c"}},
		{"a/b", []string{"a", "b"}},
		{"/", nil},
		{"", nil},
		{"//a//b//", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := Components(tt.path)
		if len(got) != len(tt.want) {
			t.Fatalf("Components(%q) = %v, want %v", tt.path, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("Components(%q) = %v, want %v", tt.path, got, tt.want)
			}
		}
	}
}

func TestIsAbsolute(t *testing.T) {
	if !IsAbsolute("/a") {
		t.Fatal("expected /a to be absolute")
	}
	if IsAbsolute("a") {
		t.Fatal("expected a to be relative")
	}
}
