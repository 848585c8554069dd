package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elC0mpa/vm-doctor/model"
)

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), model.Flags{Provider: "azure"}, nil)
	assert.ErrorContains(t, err, `unsupported provider "azure"`)
}

func TestBundleCloseJoinsErrors(t *testing.T) {
	closed := 0
	b := &Bundle{closers: []func() error{
		func() error { closed++; return nil },
		func() error { closed++; return errors.New("connection reset") },
	}}

	err := b.Close()
	assert.Equal(t, 2, closed)
	assert.ErrorContains(t, err, "connection reset")
}
