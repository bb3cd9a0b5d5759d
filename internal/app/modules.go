package app

import (
	"github.com/vk/arbenchgo/internal/registry"
	"github.com/vk/arbenchgo/modules/coding"
	"github.com/vk/arbenchgo/modules/fairness"
	"github.com/vk/arbenchgo/modules/priority"
	"github.com/vk/arbenchgo/modules/roundrobin"
)

// coreModules is the definitive list of component modules compiled into the
// arbenchgo binary.
var coreModules = []registry.Module{
	&roundrobin.Module{},
	&priority.Module{},
	&fairness.Module{},
	&coding.Module{},
}
