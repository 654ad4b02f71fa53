package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteLineDiff(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		want    string
		differs bool
	}{
		{
			name: "equal",
			a:    "{\n  \"a\": 1\n}\n",
			b:    "{\n  \"a\": 1\n}\n",
			want: " {\n   \"a\": 1\n }\n",
		},
		{
			name:    "changed line",
			a:       "{\n  \"a\": 1,\n  \"b\": 2\n}\n",
			b:       "{\n  \"a\": 1,\n  \"b\": 3\n}\n",
			want:    " {\n   \"a\": 1,\n-  \"b\": 2\n+  \"b\": 3\n }\n",
			differs: true,
		},
		{
			name:    "added line",
			a:       "a\nc\n",
			b:       "a\nb\nc\n",
			want:    " a\n+b\n c\n",
			differs: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			differs, err := writeLineDiff(buf, tc.a, tc.b, false)
			if err != nil {
				t.Fatal(err)
			}
			if differs != tc.differs {
				t.Errorf("differs: got %t want %t", differs, tc.differs)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
