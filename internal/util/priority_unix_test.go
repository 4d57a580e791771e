//go:build unix

package util_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"

	"github.com/Alia5/keygrab/internal/log"
	"github.com/Alia5/keygrab/internal/util"
)

func TestRaisePriority(t *testing.T) {
	err := util.RaisePriority(log.Discard())
	if err == nil {
		return
	}
	assert.True(t, errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM), "unexpected error: %v", err)
}
