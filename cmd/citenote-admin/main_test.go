package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(strings.NewReader("s3cret\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)

	pw, err = readPassword(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	_, err = readPassword(strings.NewReader("\n"))
	assert.Error(t, err)
}

func TestInitDBRequiresConfirmation(t *testing.T) {
	forceReset, confirm = true, ""
	t.Cleanup(func() { forceReset, confirm = false, "" })

	err := runInitDB(initDBCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), confirmToken)
}
