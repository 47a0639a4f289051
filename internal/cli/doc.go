// Package cli maps the reflectgo command line onto an app.App.
//
// Usage errors (unknown flags, wrong argument counts, invalid option values)
// are returned as *ExitError with code 2; everything else is returned as is.
package cli
