package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleResolve_NoArgs(t *testing.T) {
	assert.Error(t, HandleResolve([]string{}))
}

func TestHandleResolve_Help(t *testing.T) {
	assert.NoError(t, HandleResolve([]string{"--help"}))
}

func TestHandleResolve_PathAndAnchorConflict(t *testing.T) {
	err := HandleResolve([]string{"--path", "server", "--anchor", "server", "test.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestHandleResolve_InvalidFormat(t *testing.T) {
	assert.Error(t, HandleResolve([]string{"--format", "text", "test.yaml"}))
}

func TestHandleResolve_BadPath(t *testing.T) {
	path := writeFixture(t)
	err := HandleResolve([]string{"--path", "no.such.node", "-q", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema node")
}

func TestHandleResolve_ByPath(t *testing.T) {
	path := writeFixture(t)
	assert.NoError(t, HandleResolve([]string{"-q", "--path", "logging", path}))
}

func TestHandleResolve_ByAnchor(t *testing.T) {
	path := writeFixture(t)
	assert.NoError(t, HandleResolve([]string{"-q", "--anchor", "server-host", "--format", "json", path}))
}

func TestHandleResolve_Root(t *testing.T) {
	path := writeFixture(t)
	assert.NoError(t, HandleResolve([]string{"-q", path}))
}

func TestHandleResolve_BranchPath(t *testing.T) {
	path := writeFixture(t)
	assert.NoError(t, HandleResolve([]string{"-q", "--path", "logging.sink.oneOf.1.target", path}))
}
