// Package oplog implements the content-addressed, hash-chained commit
// log: Commit identity derives from operation content, parent, and a
// monotonic nonce, so replaying the chain deterministically reconstructs
// project state. EvolutionLog layers a cursor, checkout and cherry-pick
// with alias companions on top of the append-only OpLog.
package oplog

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sketchkit/core/internal/corelog"
	"github.com/sketchkit/core/internal/toposort"
)

// SHA is the hex encoding of a SHA-256 digest used as commit identity.
type SHA string

const hashPrefix = "cadmium"

// ContentHash computes SHA-256("cadmium" ++ canonical-text(op)).
func ContentHash(op Operation) SHA {
	sum := sha256.Sum256([]byte(hashPrefix + op.CanonicalText()))
	return SHA(hex.EncodeToString(sum[:]))
}

// CommitID computes SHA-256(content_hash ++ "-" ++ parent ++ "-" ++ nonce).
func CommitID(contentHash, parent SHA, nonce string) SHA {
	sum := sha256.Sum256([]byte(string(contentHash) + "-" + string(parent) + "-" + nonce))
	return SHA(hex.EncodeToString(sum[:]))
}

// Commit is one immutable, hash-identified record.
type Commit struct {
	ID          SHA
	Operation   Operation
	ContentHash SHA
	Parent      SHA
}

// OpLog is the append-only, ordered sequence of commits, plus an index
// by id. The first commit is always the synthetic root Create{"Hello
// World"} with an empty parent.
type OpLog struct {
	commits []Commit
	byID    map[SHA]int
}

// New returns an OpLog seeded with the root commit.
func New() *OpLog {
	o := &OpLog{byID: map[SHA]int{}}
	root := Operation{Kind: KindCreate, Nonce: "Hello World"}
	o.Append("", root)
	return o
}

// Append computes a new commit's id from its content, parent and current
// log length (the nonce), and pushes it.
func (o *OpLog) Append(parent SHA, op Operation) Commit {
	contentHash := ContentHash(op)
	nonce := strconv.Itoa(len(o.commits))
	id := CommitID(contentHash, parent, nonce)

	c := Commit{ID: id, Operation: op, ContentHash: contentHash, Parent: parent}
	o.commits = append(o.commits, c)
	o.byID[id] = len(o.commits) - 1
	return c
}

// Last returns the most recently appended commit, if any.
func (o *OpLog) Last() (Commit, bool) {
	if len(o.commits) == 0 {
		return Commit{}, false
	}
	return o.commits[len(o.commits)-1], true
}

// Length returns the number of commits in the log.
func (o *OpLog) Length() int { return len(o.commits) }

// ByID looks up a commit by id.
func (o *OpLog) ByID(sha SHA) (Commit, bool) {
	i, ok := o.byID[sha]
	if !ok {
		return Commit{}, false
	}
	return o.commits[i], true
}

// All returns every commit in append order. The slice is owned by the
// caller; it is a copy of the internal order, not the internal storage.
func (o *OpLog) All() []Commit {
	out := make([]Commit, len(o.commits))
	copy(out, o.commits)
	return out
}

// LoadOpLog rebuilds an OpLog from a previously serialized commit list
// verbatim, without recomputing ids. Used when round-tripping a project
// from its opaque JSON form.
func LoadOpLog(commits []Commit) *OpLog {
	o := &OpLog{byID: make(map[SHA]int, len(commits))}
	o.commits = append(o.commits, commits...)
	for i, c := range o.commits {
		o.byID[c.ID] = i
	}
	return o
}

// LoadEvolutionLog rebuilds an EvolutionLog from a serialized commit list
// and cursor. logger may be nil.
func LoadEvolutionLog(commits []Commit, cursor SHA, logger corelog.Logger) *EvolutionLog {
	return &EvolutionLog{Log: LoadOpLog(commits), Cursor: cursor, logger: logger}
}

// CommitNode is a transient view of the commit DAG's adjacency, used to
// render history graphs.
type CommitNode struct {
	SHA      SHA
	Children []SHA
}

// EvolutionLog wraps an OpLog with a cursor naming the tip of the
// currently active branch.
type EvolutionLog struct {
	Log    *OpLog
	Cursor SHA

	logger corelog.Logger
}

// NewEvolutionLog returns an EvolutionLog over a freshly initialized
// OpLog, with the cursor at the root commit. logger may be nil.
func NewEvolutionLog(logger corelog.Logger) *EvolutionLog {
	log := New()
	root, _ := log.Last()
	return &EvolutionLog{Log: log, Cursor: root.ID, logger: logger}
}

// scoped returns logger tagged with sha/kind when logger is a *corelog.StdLogger,
// and logger unchanged otherwise (e.g. nil, or a caller-supplied Logger that
// doesn't implement WithCommit).
func scoped(logger corelog.Logger, sha SHA, kind Kind) corelog.Logger {
	std, ok := logger.(*corelog.StdLogger)
	if !ok || std == nil {
		return logger
	}
	return std.WithCommit(sha, kind)
}

// Append records op at the cursor and advances the cursor to it.
func (e *EvolutionLog) Append(op Operation) SHA {
	c := e.Log.Append(e.Cursor, op)
	e.Cursor = c.ID
	if e.logger != nil {
		scoped(e.logger, c.ID, op.Kind).Infof("appended, parent %s", c.Parent)
	}
	return c.ID
}

// Checkout moves the cursor to sha if it names an existing commit.
func (e *EvolutionLog) Checkout(sha SHA) error {
	c, ok := e.Log.ByID(sha)
	if !ok {
		return errors.Errorf("SHA %s not found", sha)
	}
	e.Cursor = sha
	if e.logger != nil {
		scoped(e.logger, sha, c.Operation.Kind).Info("checked out")
	}
	return nil
}

// CherryPick copies the named commit's operation onto the cursor. If the
// copied operation is a create-operation, an Alias companion is appended
// immediately after so later operations addressing the original by SHA
// can be retargeted during replay.
func (e *EvolutionLog) CherryPick(sha SHA) (SHA, error) {
	src, ok := e.Log.ByID(sha)
	if !ok {
		return "", errors.Errorf("SHA %s not found", sha)
	}

	newSHA := e.Append(src.Operation)

	if src.Operation.IsCreate() {
		aliasSHA := e.Append(Operation{Kind: KindAlias, Original: sha, New: newSHA})
		if e.logger != nil {
			scoped(e.logger, aliasSHA, KindAlias).Infof("cherry-pick of %s aliased create to %s", sha, newSHA)
		}
	}

	return newSHA, nil
}

// commitGraph builds a toposort.Graph over the commit DAG: one node per
// commit SHA, one edge per parent-child relationship, in commit-append
// order so ties sort stably instead of falling back to lexical SHA order.
func commitGraph(commits []Commit) *toposort.Graph {
	graph := toposort.NewGraphWithInsertionOrder()
	for _, c := range commits {
		graph.AddNode(string(c.ID))
	}
	for _, c := range commits {
		if c.Parent != "" {
			graph.AddEdge(string(c.Parent), string(c.ID))
		}
	}
	return graph
}

// ToTree builds the commit DAG's child adjacency via toposort.Graph.
func (e *EvolutionLog) ToTree() []CommitNode {
	commits := e.Log.All()
	graph := commitGraph(commits)

	nodes := make([]CommitNode, 0, len(commits))
	for _, c := range commits {
		children := graph.FindChildren(string(c.ID))
		node := CommitNode{SHA: c.ID}
		for _, ch := range children {
			node.Children = append(node.Children, SHA(ch))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// Roots returns every commit with no parent in the log, via
// toposort.Graph.Roots. Ordinarily this is just the log's synthetic
// Create{"Hello World"} seed, but a log reconstructed by LoadOpLog from
// an arbitrary commit list isn't guaranteed to have only one.
func (e *EvolutionLog) Roots() []SHA {
	graph := commitGraph(e.Log.All())
	roots := graph.Roots()
	out := make([]SHA, len(roots))
	for i, r := range roots {
		out[i] = SHA(r)
	}
	return out
}

// Dot renders the commit DAG in Graphviz's DOT format via
// toposort.Graph.Serialize, labeled with name.
func (e *EvolutionLog) Dot(name string) string {
	commits := e.Log.All()
	graph := commitGraph(commits)
	sorted, _ := graph.Toposort()
	return graph.Serialize(sorted, name)
}
