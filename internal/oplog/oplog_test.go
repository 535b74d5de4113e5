package oplog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommitIsSyntheticCreate(t *testing.T) {
	log := New()
	require.Equal(t, 1, log.Length())
	root, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, KindCreate, root.Operation.Kind)
	assert.Equal(t, "Hello World", root.Operation.Nonce)
	assert.Equal(t, SHA(""), root.Parent)
}

func TestContentHashIsDeterministic(t *testing.T) {
	op := Operation{Kind: KindSetProjectName, ProjectID: "abc", Name: "widget"}
	assert.Equal(t, ContentHash(op), ContentHash(op))

	other := Operation{Kind: KindSetProjectName, ProjectID: "abc", Name: "gadget"}
	assert.NotEqual(t, ContentHash(op), ContentHash(other))
}

func TestCommitIDDependsOnContentParentAndNonce(t *testing.T) {
	op := Operation{Kind: KindCreateWorkbench, Nonce: "n1"}
	hash := ContentHash(op)
	a := CommitID(hash, "parentA", "0")
	b := CommitID(hash, "parentB", "0")
	c := CommitID(hash, "parentA", "1")
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestAppendAssignsIncreasingPositionNonces(t *testing.T) {
	log := New()
	root, _ := log.Last()

	c1 := log.Append(root.ID, Operation{Kind: KindCreateProject, Nonce: "p1"})
	c2 := log.Append(c1.ID, Operation{Kind: KindCreateWorkbench, Nonce: "w1"})

	assert.Equal(t, 3, log.Length())
	assert.Equal(t, root.ID, c1.Parent)
	assert.Equal(t, c1.ID, c2.Parent)
	assert.Equal(t, CommitID(c1.ContentHash, root.ID, "1"), c1.ID)
	assert.Equal(t, CommitID(c2.ContentHash, c1.ID, "2"), c2.ID)

	got, ok := log.ByID(c2.ID)
	require.True(t, ok)
	assert.Equal(t, c2, got)
}

func TestCheckoutRejectsUnknownSHA(t *testing.T) {
	e := NewEvolutionLog(nil)
	err := e.Checkout("does-not-exist")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCheckoutMovesCursorWithoutTrimming(t *testing.T) {
	e := NewEvolutionLog(nil)
	root := e.Cursor

	a := e.Append(Operation{Kind: KindCreateProject, Nonce: "p1"})
	_ = e.Append(Operation{Kind: KindCreateWorkbench, Nonce: "w1"})

	require.NoError(t, e.Checkout(a))
	assert.Equal(t, a, e.Cursor)
	assert.Equal(t, 3, e.Log.Length(), "checkout must not trim commits appended past the new cursor")

	require.NoError(t, e.Checkout(root))
	assert.Equal(t, root, e.Cursor)
}

func TestCherryPickOfCreateOperationEmitsAlias(t *testing.T) {
	e := NewEvolutionLog(nil)
	wbSHA := e.Append(Operation{Kind: KindCreateWorkbench, Nonce: "w1"})
	sketchSHA := e.Append(Operation{Kind: KindCreateSketch, Nonce: "s1", WorkbenchID: wbSHA})

	require.NoError(t, e.Checkout(wbSHA))
	lengthBefore := e.Log.Length()

	newSHA, err := e.CherryPick(sketchSHA)
	require.NoError(t, err)
	assert.NotEqual(t, sketchSHA, newSHA)
	assert.Equal(t, lengthBefore+2, e.Log.Length(), "cherry-pick of a create op appends the op plus an Alias")

	aliasCommit, ok := e.Log.Last()
	require.True(t, ok)
	assert.Equal(t, KindAlias, aliasCommit.Operation.Kind)
	assert.Equal(t, sketchSHA, aliasCommit.Operation.Original)
	assert.Equal(t, newSHA, aliasCommit.Operation.New)
}

func TestCherryPickOfNonCreateOperationHasNoAlias(t *testing.T) {
	e := NewEvolutionLog(nil)
	wbSHA := e.Append(Operation{Kind: KindCreateWorkbench, Nonce: "w1"})
	renameSHA := e.Append(Operation{Kind: KindSetWorkbenchName, WorkbenchID: wbSHA, Name: "first"})

	lengthBefore := e.Log.Length()
	newSHA, err := e.CherryPick(renameSHA)
	require.NoError(t, err)
	assert.Equal(t, lengthBefore+1, e.Log.Length())

	last, _ := e.Log.Last()
	assert.Equal(t, newSHA, last.ID)
	assert.Equal(t, KindSetWorkbenchName, last.Operation.Kind)
}

func TestIsCreate(t *testing.T) {
	assert.True(t, Operation{Kind: KindCreatePlane}.IsCreate())
	assert.True(t, Operation{Kind: KindCreateSketch}.IsCreate())
	assert.True(t, Operation{Kind: KindCreateExtrusion}.IsCreate())
	assert.False(t, Operation{Kind: KindCreateProject}.IsCreate())
	assert.False(t, Operation{Kind: KindCreateWorkbench}.IsCreate())
	assert.False(t, Operation{Kind: KindSetSketchName}.IsCreate())
}

func TestToTreeReflectsParentChildEdges(t *testing.T) {
	e := NewEvolutionLog(nil)
	root := e.Cursor
	a := e.Append(Operation{Kind: KindCreateProject, Nonce: "p1"})
	require.NoError(t, e.Checkout(root))
	b := e.Append(Operation{Kind: KindCreateProject, Nonce: "p2"})

	nodes := e.ToTree()
	byID := map[SHA]CommitNode{}
	for _, n := range nodes {
		byID[n.SHA] = n
	}

	rootNode := byID[root]
	assert.ElementsMatch(t, []SHA{a, b}, rootNode.Children, "root has two branches after the second append")
}
