package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtl/types"
)

func TestSessionKeepsGlobals(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, 0)

	_, err := s.Exec("x = 1; A = eye(2);")
	require.NoError(t, err)
	_, err = s.Exec("x += 1; print x;")
	require.NoError(t, err)

	assert.Equal(t, "2\n", out.String())
	assert.Equal(t, []string{"A", "x"}, s.Names())

	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.NewInt(2), v)
}

func TestSessionSurvivesErrors(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, 0)

	_, err := s.Exec("x = 1; if (1) { y = x / 0; }")
	require.Error(t, err)

	_, err = s.Exec("print x")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out.String())

	_, err = s.Exec("print (")
	require.Error(t, err)
}

func TestSessionReturnValue(t *testing.T) {
	s := NewSession(&bytes.Buffer{}, 0)
	v, err := s.Exec("return 6 / 4;")
	require.NoError(t, err)
	assert.Equal(t, types.NewFloat(1.5), v)
}

func TestSessionTickBudgetPerInput(t *testing.T) {
	s := NewSession(&bytes.Buffer{}, 200)

	_, err := s.Exec("while (1) { }")
	code, ok := ErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, types.E_MAXTICKS, code)

	// a fresh budget for the next input
	_, err = s.Exec("x = 1;")
	assert.NoError(t, err)
}
