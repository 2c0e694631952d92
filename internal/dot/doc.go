// Package dot assembles a Bayesian network into a Graphviz graph and hands
// it to a Renderer.
//
// Variables become gray ovals joined by their structure edges. Each
// variable also gets a plaintext `cpd_<name>` node whose HTML-like label is
// the variable's probability table, tied to the variable by an invisible
// edge that only steers the layout engine.
//
// DOTRenderer writes DOT text and needs nothing else. GraphvizRenderer
// pipes that text through the `dot` executable to produce images, and is
// only constructed when the executable can be found.
package dot
