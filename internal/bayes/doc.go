// Package bayes assembles a discrete Bayesian network model out of a loaded
// network description: tabular CPDs attached to a variable DAG, checked for
// consistency the way pgmpy's BayesianNetwork.check_model does.
package bayes
