package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"go.trai.ch/weft/internal/core/domain"
)

func TestLog_UndoRedoSetValue(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")

	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))
	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(2)))

	require.NoError(t, g.Log().Undo())
	assert.True(t, n.Plug("a").EffectiveValue().RawEquals(cty.NumberIntVal(1)))

	require.NoError(t, g.Log().Undo())
	assert.True(t, n.Plug("a").IsSetToDefault())

	require.NoError(t, g.Log().Redo())
	require.NoError(t, g.Log().Redo())
	assert.True(t, n.Plug("a").EffectiveValue().RawEquals(cty.NumberIntVal(2)))
}

func TestLog_UndoRestoresConnections(t *testing.T) {
	g := domain.New("root")
	n1 := newSumNode(t, g, "n1")
	n2 := newSumNode(t, g, "n2")

	require.NoError(t, g.SetInput(n2.Plug("a"), n1.Plug("out")))
	require.NoError(t, g.Log().Undo())
	assert.Nil(t, n2.Plug("a").Input())

	require.NoError(t, g.Log().Redo())
	assert.Same(t, n1.Plug("out"), n2.Plug("a").Input())
}

func TestLog_UndoRemoveNodeRestoresEverything(t *testing.T) {
	g := domain.New("root")
	n1 := newSumNode(t, g, "n1")
	n2 := newSumNode(t, g, "n2")
	require.NoError(t, g.SetInput(n2.Plug("a"), n1.Plug("out")))

	require.NoError(t, g.RemoveNode(n1))
	assert.Nil(t, n2.Plug("a").Input())

	require.NoError(t, g.Log().Undo())
	found, err := g.FindNode("n1")
	require.NoError(t, err)
	assert.Same(t, n1, found)
	assert.Same(t, n1.Plug("out"), n2.Plug("a").Input(), "severed connection restored")
}

func TestLog_FrameGroupsCommands(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")

	g.Log().Begin("edit")
	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))
	require.NoError(t, g.SetValue(n.Plug("b"), cty.NumberIntVal(2)))
	require.NoError(t, g.Log().End())

	require.NoError(t, g.Log().Undo())
	assert.True(t, n.Plug("a").IsSetToDefault())
	assert.True(t, n.Plug("b").IsSetToDefault())

	require.NoError(t, g.Log().Redo())
	assert.True(t, n.Plug("a").EffectiveValue().RawEquals(cty.NumberIntVal(1)))
	assert.True(t, n.Plug("b").EffectiveValue().RawEquals(cty.NumberIntVal(2)))
}

func TestLog_NestedFramesMergeIntoParent(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")

	g.Log().Begin("outer")
	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))
	g.Log().Begin("inner")
	require.NoError(t, g.SetValue(n.Plug("b"), cty.NumberIntVal(2)))
	require.NoError(t, g.Log().End())
	require.NoError(t, g.Log().End())

	frames := g.Log().UndoFrames()
	require.Len(t, frames, 1)
	assert.Len(t, frames[0].Commands, 2)
}

func TestLog_EmptyFramesAreDropped(t *testing.T) {
	g := domain.New("root")
	g.Log().Begin("nothing")
	require.NoError(t, g.Log().End())
	assert.False(t, g.Log().CanUndo())
}

func TestLog_DisabledFrameRecordsNothing(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")

	g.Log().BeginDisabled()
	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(9)))
	require.NoError(t, g.Log().End())

	assert.False(t, g.Log().CanUndo())
	assert.True(t, n.Plug("a").EffectiveValue().RawEquals(cty.NumberIntVal(9)), "the edit itself still applies")
}

func TestLog_FailedCommandRecordsNothing(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")

	err := g.SetValue(n.Plug("a"), cty.StringVal("wrong type"))
	require.ErrorIs(t, err, domain.ErrTypeMismatch)
	assert.False(t, g.Log().CanUndo())
	assert.ErrorIs(t, g.Log().Undo(), domain.ErrNothingToUndo)
}

func TestLog_NewEditClearsRedo(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")

	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))
	require.NoError(t, g.Log().Undo())
	assert.True(t, g.Log().CanRedo())

	require.NoError(t, g.SetValue(n.Plug("b"), cty.NumberIntVal(2)))
	assert.False(t, g.Log().CanRedo())
	assert.ErrorIs(t, g.Log().Redo(), domain.ErrNothingToRedo)
}

func TestLog_UndoWhileFrameOpenFails(t *testing.T) {
	g := domain.New("root")
	n := newSumNode(t, g, "n1")

	require.NoError(t, g.SetValue(n.Plug("a"), cty.NumberIntVal(1)))
	g.Log().Begin("open")
	assert.ErrorIs(t, g.Log().Undo(), domain.ErrOpenFrame)
	require.NoError(t, g.Log().End())
	assert.ErrorIs(t, g.Log().End(), domain.ErrNoOpenFrame)
}

func TestLog_RoundTripManyEdits(t *testing.T) {
	g := domain.New("root")
	n1 := newSumNode(t, g, "n1")
	n2 := newSumNode(t, g, "n2")

	require.NoError(t, g.SetValue(n1.Plug("a"), cty.NumberIntVal(1)))
	require.NoError(t, g.SetInput(n2.Plug("a"), n1.Plug("out")))
	require.NoError(t, g.SetValue(n2.Plug("b"), cty.NumberIntVal(3)))
	require.NoError(t, g.RenamePlug(n2.Plug("b"), "beta"))
	require.NoError(t, g.RemoveNode(n1))

	for g.Log().CanUndo() {
		require.NoError(t, g.Log().Undo())
	}

	assert.True(t, n1.Plug("a").IsSetToDefault())
	assert.Nil(t, n2.Plug("a").Input())
	assert.NotNil(t, n2.Plug("b"))
	assert.Nil(t, n2.Plug("beta"))
	found, err := g.FindNode("n1")
	require.NoError(t, err)
	assert.Same(t, n1, found)
}
