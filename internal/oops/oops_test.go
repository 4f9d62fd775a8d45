package oops

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	base := errors.New("disk on fire")

	err := New(base, "failed to load %s", "content.yaml")
	assert.Equal(t, "failed to load content.yaml: disk on fire", err.Error())
	assert.ErrorIs(t, err, base)

	var oopsErr *Error
	if assert.ErrorAs(t, err, &oopsErr) {
		assert.NotEmpty(t, oopsErr.Stack)
	}
}

func TestNewWithoutWrapped(t *testing.T) {
	err := New(nil, "template not found: %s", "index.html")
	assert.Equal(t, "template not found: index.html", err.Error())
}

func TestZerologStackMarshaler(t *testing.T) {
	assert.Nil(t, ZerologStackMarshaler(errors.New("plain")))
	assert.NotNil(t, ZerologStackMarshaler(New(nil, "wrapped")))
}
