// Package process runs finder pipelines through the platform shell.
//
// Each pipeline runs in its own process group on Unix so that interrupting
// or killing it reaches every stage, not just the shell.
package process
