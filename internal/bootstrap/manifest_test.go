package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     []FileEntry
		wantErr  bool
	}{
		{
			name:     "empty",
			manifest: "",
			want:     nil,
		},
		{
			name:     "entries sorted by path",
			manifest: "/etc/planner/b.txt: beta\n/etc/planner/a.txt: alpha\n",
			want: []FileEntry{
				{Path: "/etc/planner/a.txt", Content: "alpha"},
				{Path: "/etc/planner/b.txt", Content: "beta"},
			},
		},
		{
			name:     "relative path rejected",
			manifest: "planner/a.txt: alpha\n",
			wantErr:  true,
		},
		{
			name:     "not a map",
			manifest: "- just\n- a list\n",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest(tt.manifest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
