package placement

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/brimdata/splc/compiler/diag"
	"github.com/brimdata/splc/compiler/srcfiles"
	"go.uber.org/zap"
)

var (
	ErrInfeasible = errors.New("placement constraints cannot be satisfied")
	ErrInternal   = errors.New("internal placement error")
)

const (
	DefaultIterationBound   = 5
	DefaultMessageNodeBound = 5
)

type Options struct {
	// IterationBound limits the randomized host assignment attempts.
	IterationBound int
	// MessageNodeBound limits the operators named in one message.
	MessageNodeBound int
	// FusionOptimize requires a sized default pool for operators
	// without a host placement.
	FusionOptimize bool
	// RelaxRestartable disables the restartability and relocatability
	// agreement checks.
	RelaxRestartable bool
	// Seed seeds host assignment.  Zero seeds from the clock.
	Seed uint64
}

// InternalError is raised with panic when the solver's own state is
// inconsistent.  Run recovers it and returns ErrInternal.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "placement: " + e.Msg }

func internalf(format string, args ...any) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}

type nodeInfo struct {
	pe        int
	pool      int
	implicit  bool
	exclusive bool
	placement HostPlacement
	hosts     *roaring.Bitmap
}

// deferred reports whether the node is in a shared implicit pool,
// whose hosts are unknown until submission.
func (n *nodeInfo) deferred() bool { return n.implicit && !n.exclusive }

// Solver holds the state of one placement run.
type Solver struct {
	reporter *diag.Reporter
	logger   *zap.Logger
	graph    *Graph
	opts     Options
	seed     uint64
	rng      *rand.Rand

	nodes     []nodeInfo
	labels    [numConstraintKinds]map[string]*roaring.Bitmap
	order     [numConstraintKinds][]string
	hosts     []string
	hostIndex map[string]int

	numPEs      int
	bucketOf    []int
	numBuckets  int
	bucketHosts []*roaring.Bitmap
	bucketHost  []int
	iterations  int
}

func NewSolver(reporter *diag.Reporter, logger *zap.Logger, g *Graph, opts Options) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.IterationBound <= 0 {
		opts.IterationBound = DefaultIterationBound
	}
	if opts.MessageNodeBound <= 0 {
		opts.MessageNodeBound = DefaultMessageNodeBound
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Solver{
		reporter:  reporter,
		logger:    logger,
		graph:     g,
		opts:      opts,
		seed:      seed,
		rng:       rand.New(rand.NewPCG(seed, seed>>32|seed<<32)),
		hostIndex: make(map[string]int),
	}
}

// Solve places the operators of g.
func Solve(reporter *diag.Reporter, logger *zap.Logger, g *Graph, opts Options) (*Plan, error) {
	return NewSolver(reporter, logger, g, opts).Run()
}

// Run executes the five phases.  If any error was reported it returns
// ErrInfeasible.  Otherwise the final assignment is checked against
// every constraint and a failure there is an internal error.
func (s *Solver) Run() (plan *Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			plan, err = nil, fmt.Errorf("%w: %s", ErrInternal, ie.Msg)
		}
	}()
	nerrors := s.reporter.NumErrors()
	s.populate()
	s.partition()
	if err := s.bucketize(); err != nil {
		return nil, err
	}
	s.intersect()
	s.assign()
	if s.reporter.NumErrors() > nerrors {
		return nil, ErrInfeasible
	}
	if err := s.sanityCheck(true); err != nil {
		internalf("sanity check failed: %s", err)
	}
	s.logger.Debug("placement done",
		zap.Int("partitions", s.numPEs),
		zap.Int("buckets", s.numBuckets),
		zap.Int("iterations", s.iterations),
		zap.Uint64("seed", s.seed))
	return s.plan(), nil
}

func (s *Solver) Seed() uint64 { return s.seed }

// Iterations is the number of host assignment attempts made so far.
func (s *Solver) Iterations() int { return s.iterations }

func (s *Solver) name(i int) string           { return s.graph.Nodes[i].Name }
func (s *Solver) loc(i int) srcfiles.Location { return s.graph.Nodes[i].Loc }
func (s *Solver) bucket(i int) int            { return s.bucketOf[s.nodes[i].pe] }

func (s *Solver) pool(k int) *Pool {
	if k < 0 || k >= len(s.graph.Pools) {
		internalf("pool index %d out of range", k)
	}
	return s.graph.Pools[k]
}

func (s *Solver) hostID(name string) uint32 {
	id, ok := s.hostIndex[name]
	if !ok {
		internalf("host %q is not indexed", name)
	}
	return uint32(id)
}

// members returns the nodes sharing a label in node order.
func (s *Solver) members(kind ConstraintKind, label string) []int {
	return toInts(s.labels[kind][label])
}

// pairs calls fn for each pair of nodes sharing label, lower index
// first.
func (s *Solver) pairs(kind ConstraintKind, label string, fn func(a, b int)) {
	m := s.members(kind, label)
	for x, a := range m {
		for _, b := range m[x+1:] {
			fn(a, b)
		}
	}
}

// partitionMembers lists the nodes of each partition in node order.
func (s *Solver) partitionMembers() [][]int {
	out := make([][]int, s.numPEs)
	for i := range s.nodes {
		out[s.nodes[i].pe] = append(out[s.nodes[i].pe], i)
	}
	return out
}

// bucketMembers lists the nodes of each bucket in node order.
func (s *Solver) bucketMembers() [][]int {
	out := make([][]int, s.numBuckets)
	for i := range s.nodes {
		b := s.bucket(i)
		out[b] = append(out[b], i)
	}
	return out
}

// nameList quotes the names of nodes, eliding those past the message
// bound.
func (s *Solver) nameList(nodes []int) string {
	var b strings.Builder
	for k, i := range nodes {
		if k == s.opts.MessageNodeBound {
			b.WriteString(", ...")
			break
		}
		if k > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s'", s.name(i))
	}
	return b.String()
}

func differ(a, b *bool) bool {
	return a != nil && b != nil && *a != *b
}

func toInts(bm *roaring.Bitmap) []int {
	if bm == nil {
		return nil
	}
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
