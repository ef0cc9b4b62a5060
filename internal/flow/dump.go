package flow

import "encoding/json"

// dumpEdge is one adjacency-list row of the debug flow-graph serialization
// produced by the `-fg` flag.
type dumpEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Dump renders every edge in g as JSON, in insertion order, for the `--fg`
// debugging output.
func Dump(g *Graph) ([]byte, error) {
	var edges []dumpEdge
	for i, v := range g.vertices {
		for _, j := range g.adj[i] {
			edges = append(edges, dumpEdge{From: v.String(), To: g.vertices[j].String()})
		}
	}
	return json.Marshal(edges)
}
