// Package config defines the format-agnostic description of a Bayesian
// network (variables, legends, CPDs and structure) along with the Loader
// interface that format-specific packages implement.
//
// The `config.Network` is the single source of truth for the `dot` and
// `bayes` packages. Concrete loaders for HCL and YAML live in separate
// packages.
package config
