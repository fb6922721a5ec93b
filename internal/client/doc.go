// Package client implements the interactive terminal client runtime.
//
// It wires the accountgate HTTP API and the terminal UI flows into a single
// process lifecycle.
package client
