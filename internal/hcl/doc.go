// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for file discovery, decoding `network`, `variable` and `edge`
// blocks, and translating legend and CPD object expressions into ordered
// cpd trees.
//
// CPD and legend attributes are read as syntax trees rather than evaluated
// values: cty objects sort their attributes by name, while the order in
// which outcomes and parent assignments are written decides where each
// probability lands in the rendered table.
package hcl
