package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not exist", fs.ErrNotExist, KindMissing},
		{"wrapped not exist", fmt.Errorf("open: %w", fs.ErrNotExist), KindMissing},
		{"permission", fs.ErrPermission, KindPermission},
		{"json syntax", &json.SyntaxError{}, KindCorrupt},
		{"plain", errors.New("disk on fire"), KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestOpErrorChain(t *testing.T) {
	cause := fs.ErrNotExist
	err := &OpError{Op: "read", Path: "a.txt", Kind: KindMissing, Err: cause}

	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, KindMissing, KindOf(err))
	assert.Equal(t, KindMissing, KindOf(fmt.Errorf("outer: %w", err)))
	assert.Contains(t, err.Error(), "read a.txt")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "missing", KindMissing.String())
	assert.Equal(t, "permission", KindPermission.String())
	assert.Equal(t, "corrupt", KindCorrupt.String())
	assert.Equal(t, "invalid", KindInvalid.String())
	assert.Equal(t, "io", KindIO.String())
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindIO, KindOf(errors.New("unrelated")))
}
