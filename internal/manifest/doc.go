// Package manifest declares reflected types in HCL.
//
// A manifest file holds `type` blocks. Each block becomes a registry loader
// that binds the declared constructors and functions to Go handlers by name:
//
//	type "geometry.Circle" {
//	  aliases = ["Circle"]
//	  parents = ["geometry.Shape"]
//	  traits  = { doc = "A circle" }
//
//	  field "Radius" { type = float64 }
//
//	  constructor {
//	    handler = "geometry.NewCircle"
//	    params  = [geometry.Point, float64]
//	  }
//
//	  function "Area" {
//	    handler = "geometry.CircleArea"
//	    params  = [geometry.Circle]
//	    return  = float64
//	  }
//	}
//
// Type expressions are the keywords void, int, int64, float64, string, bool
// and any, the constructors list(T), map(T) and ptr(T), and the names of Go
// types registered in the handler table. Loaders check that every declared
// signature is exactly the signature of its handler.
package manifest
