package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/relay/errors"
)

func TestLocator_BeforeSetContainer(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	_, err := Locate("anything")
	assert.True(t, errors.Is(err, errors.ErrLocatorNotInitialized()))
	assert.False(t, Contains("anything"))
}

func TestLocator_ProxiesToContainer(t *testing.T) {
	t.Cleanup(Reset)

	c := New()
	c.RegisterSingleton("greeting", "hello")
	SetContainer(c)

	got, err := Locate("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.True(t, Contains("greeting"))
	assert.False(t, Contains("missing"))
}
