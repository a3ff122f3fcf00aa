package algorithms

import (
	"fmt"
	"math"
	"sort"

	"github.com/dd0wney/transit-resilience/pkg/graph"
	"github.com/dd0wney/transit-resilience/pkg/parallel"
)

// tieTolerance is the relative score difference below which two nodes are
// ranked as equal. Partial sums are reduced in different orders for
// different worker counts, so exact float comparison would make the ranking
// depend on the pool size.
const tieTolerance = 1e-9

// RankedNode holds a node with its centrality score.
type RankedNode struct {
	NodeID graph.NodeID `json:"node_id"`
	Score  float64      `json:"score"`
}

// CentralityOptions configures betweenness computation.
type CentralityOptions struct {
	// Workers is the number of goroutines sharing the per-source passes.
	// Zero selects parallel.DefaultWorkers.
	Workers int
}

// DefaultCentralityOptions returns the default betweenness options.
func DefaultCentralityOptions() CentralityOptions {
	return CentralityOptions{Workers: 0}
}

// brandesWorkspace is the per-worker scratch state of one Brandes pass.
// Each worker owns one, so passes never share memory.
type brandesWorkspace struct {
	dist         []int32
	queue        []int32
	sigma        []float64
	delta        []float64
	predecessors [][]int32
}

func newBrandesWorkspace(n int) *brandesWorkspace {
	return &brandesWorkspace{
		dist:         make([]int32, n),
		queue:        make([]int32, 0, n),
		sigma:        make([]float64, n),
		delta:        make([]float64, n),
		predecessors: make([][]int32, n),
	}
}

// accumulate runs a single-source BFS from source, counting shortest paths,
// then back-propagates dependencies from the farthest node inwards and adds
// them onto scores.
func (ws *brandesWorkspace) accumulate(ig *indexedGraph, source int32, scores []float64) {
	for i := range ws.dist {
		ws.dist[i] = unreachable
		ws.sigma[i] = 0
		ws.delta[i] = 0
		ws.predecessors[i] = ws.predecessors[i][:0]
	}

	ws.dist[source] = 0
	ws.sigma[source] = 1

	// The BFS queue doubles as the visit stack: popping it from the back
	// yields nodes in non-increasing distance.
	queue := append(ws.queue[:0], source)
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		for _, w := range ig.adjacency[v] {
			if ws.dist[w] == unreachable {
				ws.dist[w] = ws.dist[v] + 1
				queue = append(queue, w)
			}
			if ws.dist[w] == ws.dist[v]+1 {
				ws.sigma[w] += ws.sigma[v]
				ws.predecessors[w] = append(ws.predecessors[w], v)
			}
		}
	}
	ws.queue = queue

	for i := len(queue) - 1; i >= 0; i-- {
		w := queue[i]
		coefficient := (1.0 + ws.delta[w]) / ws.sigma[w]
		for _, v := range ws.predecessors[w] {
			ws.delta[v] += ws.sigma[v] * coefficient
		}
		if w != source {
			scores[w] += ws.delta[w]
		}
	}
}

// brandesCentrality returns raw betweenness per indexed node, summed over
// ordered source/target pairs. Sources are split into contiguous chunks, one
// per worker; every chunk accumulates into its own slice and the partials
// are reduced in chunk order.
func brandesCentrality(ig *indexedGraph, opts CentralityOptions) ([]float64, error) {
	n := ig.size()
	scores := make([]float64, n)
	if n < 3 {
		return scores, nil
	}

	pool, err := parallel.NewWorkerPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to start centrality workers: %w", err)
	}

	chunks := parallel.Partition(n, pool.Workers())
	partials := make([][]float64, len(chunks))
	for c, chunk := range chunks {
		partial := make([]float64, n)
		partials[c] = partial
		start, end := chunk[0], chunk[1]
		pool.Submit(func() {
			ws := newBrandesWorkspace(n)
			for source := start; source < end; source++ {
				ws.accumulate(ig, int32(source), partial)
			}
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, fmt.Errorf("betweenness computation failed: %w", err)
	}

	for _, partial := range partials {
		for v, score := range partial {
			scores[v] += score
		}
	}
	return scores, nil
}

// BetweennessCentrality computes unnormalised betweenness centrality for all
// nodes: for each node v, the sum over ordered pairs (s, t) with s != v != t
// of the fraction of shortest s-t paths passing through v. Pairs in
// different components contribute nothing.
func BetweennessCentrality(g *graph.Graph) (map[graph.NodeID]float64, error) {
	return BetweennessCentralityWithOptions(g, DefaultCentralityOptions())
}

// BetweennessCentralityWithOptions is BetweennessCentrality with an explicit
// worker count.
func BetweennessCentralityWithOptions(g *graph.Graph, opts CentralityOptions) (map[graph.NodeID]float64, error) {
	ig := indexGraph(g)
	scores, err := brandesCentrality(ig, opts)
	if err != nil {
		return nil, err
	}

	result := make(map[graph.NodeID]float64, len(scores))
	for v, score := range scores {
		result[ig.ids[v]] = score
	}
	return result, nil
}

// TopByBetweenness returns the count nodes with the highest betweenness,
// highest first. Equal scores are ordered by node ID. A graph with fewer than
// count nodes yields all of them.
func TopByBetweenness(g *graph.Graph, count int) ([]RankedNode, error) {
	return TopByBetweennessWithOptions(g, count, DefaultCentralityOptions())
}

// TopByBetweennessWithOptions is TopByBetweenness with an explicit worker count.
func TopByBetweennessWithOptions(g *graph.Graph, count int, opts CentralityOptions) ([]RankedNode, error) {
	if count <= 0 {
		return []RankedNode{}, nil
	}

	ig := indexGraph(g)
	scores, err := brandesCentrality(ig, opts)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedNode, len(scores))
	for v, score := range scores {
		ranked[v] = RankedNode{NodeID: ig.ids[v], Score: score}
	}
	return topRanked(ranked, count), nil
}

// RankNodes orders scores highest first, breaking ties by node ID, and keeps
// at most count entries.
func RankNodes(scores map[graph.NodeID]float64, count int) []RankedNode {
	if count <= 0 {
		return []RankedNode{}
	}

	ranked := make([]RankedNode, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, RankedNode{NodeID: id, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].NodeID < ranked[j].NodeID })
	return topRanked(ranked, count)
}

// topRanked sorts ranked (already in node ID order) by descending score and
// truncates it to count entries. The stable sort keeps ID order within ties.
func topRanked(ranked []RankedNode, count int) []RankedNode {
	sort.SliceStable(ranked, func(i, j int) bool {
		return scoreGreater(ranked[i].Score, ranked[j].Score)
	})
	if count < len(ranked) {
		ranked = ranked[:count]
	}
	return ranked
}

// scoreGreater reports whether a exceeds b by more than the tie tolerance.
func scoreGreater(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return a-b > tieTolerance*scale
}
