//go:build e2e && unix

package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeExitsWithoutChoice(t *testing.T) {
	t.Parallel()
	tf := startPalette(t)

	require.NoError(t, tf.SendKeys(KeyEsc))

	code, out, err := tf.WaitExit(3 * time.Second)
	if err != nil {
		// A lone ESC can be read as the start of a sequence; Ctrl+C always quits
		require.NoError(t, tf.SendKeys(KeyCtrlC))
		code, out, err = tf.WaitExit(2 * time.Second)
	}
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestCtrlCExits(t *testing.T) {
	t.Parallel()
	tf := startPalette(t)

	require.NoError(t, tf.SendKeys(KeyCtrlC))

	code, out, err := tf.WaitExit(3 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}
