package store

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input   string
		want    Backend
		wantErr bool
	}{
		{"", BackendFile, false},
		{"file", BackendFile, false},
		{"sqlite", BackendSQLite, false},
		{"memory", BackendMemory, false},
		{"postgres", "", true},
		{"FILE", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBackend(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownBackend))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStorageError(t *testing.T) {
	err := &StorageError{Op: "read", Path: "data/cards.json", Err: fs.ErrNotExist}

	assert.Equal(t, "storage read data/cards.json: file does not exist", err.Error())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, IsStorageError(err))

	wrapped := errors.Join(errors.New("context"), err)
	assert.True(t, IsStorageError(wrapped))
	assert.False(t, IsStorageError(ErrNotFound))

	noPath := &StorageError{Op: "query", Err: errors.New("database is locked")}
	assert.Equal(t, "storage query: database is locked", noPath.Error())
}
