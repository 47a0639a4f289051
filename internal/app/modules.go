package app

import (
	"github.com/specialistvlad/reflectgo/internal/registry"
	"github.com/specialistvlad/reflectgo/modules/geometry"
	"github.com/specialistvlad/reflectgo/modules/text"
)

// coreModules is the definitive list of all modules that are compiled into
// the reflectgo binary.
var coreModules = []registry.Module{
	&geometry.Module{},
	&text.Module{},
}
