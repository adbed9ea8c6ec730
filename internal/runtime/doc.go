// Package runtime wires the engine, logging and repository discovery
// into a single context handed to every command.
package runtime
