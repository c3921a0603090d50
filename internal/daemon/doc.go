// Package daemon hosts the long-running siro process: it owns the watch
// loop, the state store, and the instance lock, and exposes the control
// operations the IPC surface forwards to.
package daemon
