package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darrenhoch/DualogOutlook/core/store"
)

func TestTypedErrors_WrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("backend busy")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "AccessError",
			err:  &store.AccessError{Op: "children", Path: "Inbox", Err: cause},
			want: "access children at Inbox",
		},
		{
			name: "CopyError",
			err:  &store.CopyError{Kind: "item", Path: "Inbox", Attempts: 3, Err: cause},
			want: "failed after 3 attempts",
		},
		{
			name: "IndexBuildError",
			err:  &store.IndexBuildError{Path: "Inbox", Err: cause},
			want: "build signature index for Inbox",
		},
		{
			name: "FatalConnectError",
			err:  &store.FatalConnectError{Store: "Mailbox", Err: cause},
			want: "connect to store Mailbox",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.err.Error(), tt.want)
			assert.True(t, errors.Is(tt.err, cause))
		})
	}
}

func TestFolder_FullPath(t *testing.T) {
	assert.Equal(t, "/", store.Folder{}.FullPath())

	f := store.Folder{}.Child("Inbox", nil).Child("Projects", nil)
	assert.Equal(t, "Inbox/Projects", f.FullPath())
	assert.Equal(t, "Projects", f.Name)
}
