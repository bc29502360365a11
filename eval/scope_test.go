package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtl/types"
)

func TestScopeStackStartsWithGlobal(t *testing.T) {
	s := NewScopeStack()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, TagGlobal, s.Top())
}

func TestScopeGetSearchesInnermostFirst(t *testing.T) {
	s := NewScopeStack()
	s.Set("x", types.NewInt(1))
	s.Push(TagIf)
	s.Insert("x", types.NewInt(2))

	v, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, types.NewInt(2), v)

	s.Pop()
	v, ok = s.Get("x")
	require.True(t, ok)
	assert.Equal(t, types.NewInt(1), v)
}

func TestScopeSetRebindsOwningFrame(t *testing.T) {
	s := NewScopeStack()
	s.Set("x", types.NewInt(1))
	s.Push(TagWhile)
	s.Set("x", types.NewInt(5))
	s.Pop()

	v, _ := s.Get("x")
	assert.Equal(t, types.NewInt(5), v)
}

func TestScopeSetDeclaresInTopFrame(t *testing.T) {
	s := NewScopeStack()
	s.Push(TagFor)
	s.Set("fresh", types.NewStr("v"))
	_, ok := s.Get("fresh")
	assert.True(t, ok)

	s.Pop()
	_, ok = s.Get("fresh")
	assert.False(t, ok, "binding must die with its frame")
}

func TestScopeInsertShadows(t *testing.T) {
	s := NewScopeStack()
	s.Set("i", types.NewInt(100))
	s.Push(TagFor)
	s.Insert("i", types.NewInt(0))
	s.Set("i", types.NewInt(1))
	s.Pop()

	v, _ := s.Get("i")
	assert.Equal(t, types.NewInt(100), v)
}

func TestScopeGetMissing(t *testing.T) {
	s := NewScopeStack()
	v, ok := s.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestScopePopGlobalPanics(t *testing.T) {
	s := NewScopeStack()
	assert.Panics(t, func() { s.Pop() })
}

func TestScopeDepthAndTop(t *testing.T) {
	s := NewScopeStack()
	s.Push(TagWhile)
	s.Push(TagIf)
	assert.Equal(t, 3, s.Depth())
	assert.Equal(t, TagIf, s.Top())
	s.Pop()
	assert.Equal(t, TagWhile, s.Top())
}

func TestScopeNames(t *testing.T) {
	s := NewScopeStack()
	s.Set("b", types.NewInt(1))
	s.Set("a", types.NewInt(1))
	s.Push(TagElse)
	s.Insert("b", types.NewInt(2))
	s.Insert("c", types.NewInt(3))

	assert.Equal(t, []string{"a", "b", "c"}, s.Names())
}
