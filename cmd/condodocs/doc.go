// Package main hosts the condodocs CLI entrypoint and command graph.
//
// Each organizing command resolves its folders from configuration and flags,
// runs the directory preflight, takes the run lock on its destination root,
// and prints a summary table once the placements finish. The grouping and
// file handling live in the internal packages; this package only wires them
// to flags and terminal output.
package main
