// Package app contains the core application logic. It wires the registry,
// the handler table, the built-in modules and the manifests together and
// implements the operations the CLI exposes, decoupled from any specific
// entrypoint.
package app
