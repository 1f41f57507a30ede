package gandalf

import (
	"sort"
	"strings"
)

const (
	defaultRegion  = "wilds"
	defaultPersona = "man"

	artifactRing    = "ring"
	artifactMithril = "mithril"
	artifactPhial   = "phial"

	// The region in which bearing the Ring revokes invoke entirely.
	chargedRegion = "mordor"
)

// An ArtifactVerb is one of the four artifact actions.
type ArtifactVerb int

const (
	VerbClaim ArtifactVerb = iota
	VerbBear
	VerbUnbear
	VerbDestroy
)

var verbNames = [...]string{"claim", "bear", "unbear", "destroy"}

func (v ArtifactVerb) String() string {
	if v < VerbClaim || v > VerbDestroy {
		return "unknown"
	}
	return verbNames[v]
}

// CurrentRegion returns the active region, the top of the region stack.
func (vm *VM) CurrentRegion() string {
	return vm.regions[len(vm.regions)-1]
}

// CurrentPersona returns the current persona tag.
func (vm *VM) CurrentPersona() string {
	return vm.persona
}

func (vm *VM) pushRegion(region string) {
	vm.regions = append(vm.regions, region)
	vm.syncContextGlobals()
}

func (vm *VM) popRegion() {
	// The stack never empties; the base region cannot be popped.
	if len(vm.regions) > 1 {
		vm.regions = vm.regions[:len(vm.regions)-1]
	}
	vm.syncContextGlobals()
}

// setPersona validates persona against the closed persona set and makes it
// current. The set comes from the lore tables.
func (vm *VM) setPersona(persona string) error {
	p := strings.ToLower(persona)
	for _, allowed := range vm.lore.Personas {
		if p == allowed {
			vm.persona = p
			vm.syncContextGlobals()
			return nil
		}
	}
	sorted := append([]string(nil), vm.lore.Personas...)
	sort.Strings(sorted)
	return runtimeErrorf("Unknown race: %s. Allowed: %s", persona, strings.Join(sorted, ", "))
}

// ringActive reports whether the Ring is actively borne and not destroyed.
func (vm *VM) ringActive() bool {
	return vm.bearingRing && !vm.ringDestroyed
}

// artifactAction applies verb to the named artifact, enforcing the artifact
// state machine: the Ring alone can be borne, bearing requires ownership,
// and destruction of the Ring is terminal.
func (vm *VM) artifactAction(verb ArtifactVerb, artifact string) error {
	name := strings.ToLower(strings.TrimSpace(artifact))
	if _, ok := vm.owned[name]; !ok {
		return runtimeErrorf("Unknown artifact: %s. Allowed: %s, %s, %s", artifact, artifactMithril, artifactPhial, artifactRing)
	}
	switch verb {
	case VerbClaim:
		if name == artifactRing && vm.ringDestroyed {
			return runtimeErrorf("The Ring is destroyed. It cannot be claimed again.")
		}
		vm.owned[name] = true
	case VerbBear:
		if name != artifactRing {
			return runtimeErrorf("Only the Ring can be borne (bear ring).")
		}
		if !vm.owned[artifactRing] {
			return runtimeErrorf("You do not possess the Ring. (claim ring first)")
		}
		if vm.ringDestroyed {
			return runtimeErrorf("The Ring is destroyed. It cannot be borne.")
		}
		vm.bearingRing = true
	case VerbUnbear:
		if name != artifactRing {
			return runtimeErrorf("Only the Ring can be unborne (unbear ring).")
		}
		vm.bearingRing = false
	case VerbDestroy:
		if name == artifactRing {
			vm.owned[artifactRing] = false
			vm.bearingRing = false
			vm.ringDestroyed = true
		} else {
			vm.owned[name] = false
		}
	}
	vm.syncContextGlobals()
	return nil
}

// syncContextGlobals mirrors the context state into root-scope bindings so
// programs can read it directly.
func (vm *VM) syncContextGlobals() {
	vm.Global.Declare("REGION", vm.CurrentRegion())
	vm.Global.Declare("RACE", vm.persona)
	vm.Global.Declare("HAS_RING", vm.owned[artifactRing])
	vm.Global.Declare("BEARING_RING", vm.bearingRing)
	vm.Global.Declare("RING_DESTROYED", vm.ringDestroyed)
}
