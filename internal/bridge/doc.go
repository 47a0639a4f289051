// Package bridge connects reflected types to go-cty and HCL.
//
// Values coming from an HCL expression are described as Arguments so the
// regular overload resolution can pick a target, decoded into the Go types
// the chosen function expects, and the result is encoded back into a
// cty.Value. Go values cty has no type for travel as capsules, so an object
// returned by one call can be passed to the next one unchanged.
package bridge
