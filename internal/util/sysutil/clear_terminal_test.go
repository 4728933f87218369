package sysutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClearCommand(t *testing.T) {
	assert.Equal(t, []string{"cmd", "/c", "cls"}, clearCommand("windows"))
	assert.Equal(t, []string{"clear"}, clearCommand("linux"))
	assert.Equal(t, []string{"clear"}, clearCommand("darwin"))
	assert.Nil(t, clearCommand("plan9"))
}
