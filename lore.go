package gandalf

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	yaml "gopkg.in/yaml.v2"
)

// The lore tables drive everything thematic: which personas exist, how each
// region wraps printed output, the message variants of the flavor builtins,
// and the power/corruption weights. They are data, not code, and live in an
// embedded YAML document.

//go:embed lore.yaml
var loreYAML []byte

type loreTable struct {
	Personas []string               `yaml:"personas"`
	Regions  map[string]regionStyle `yaml:"regions"`
	Palantir messageTable           `yaml:"palantir"`
	Vision   messageTable           `yaml:"vision"`
	Stamina  messageTable           `yaml:"stamina"`
	Craft    messageTable           `yaml:"craft"`

	Spellcraft struct {
		Denied  string `yaml:"denied"`
		Ring    string `yaml:"ring"`
		Granted string `yaml:"granted"`
	} `yaml:"spellcraft"`

	Power struct {
		Base      int               `yaml:"base"`
		Personas  map[string]int    `yaml:"personas"`
		Artifacts map[string]int    `yaml:"artifacts"`
		Ring      int               `yaml:"ring"`
		Regions   map[string]string `yaml:"regions"`
		Eye       string            `yaml:"eye"`
	} `yaml:"power"`

	Corruption struct {
		OwnedRing int            `yaml:"owned-ring"`
		BorneRing int            `yaml:"borne-ring"`
		Personas  map[string]int `yaml:"personas"`
		Artifacts map[string]int `yaml:"artifacts"`
		Regions   map[string]int `yaml:"regions"`
	} `yaml:"corruption"`
}

// regionStyle is the print wrapping for one region: the lines emitted per
// value normally and while the Ring is borne. %v stands for the rendered
// value.
type regionStyle struct {
	Plain []string `yaml:"plain"`
	Ring  []string `yaml:"ring"`
}

// messageTable selects a message by persona or decorates it by region.
type messageTable struct {
	Default  string            `yaml:"default"`
	Personas map[string]string `yaml:"personas"`
	Regions  map[string]string `yaml:"regions"`
	Ring     string            `yaml:"ring"`
}

var (
	loreOnce   sync.Once
	loreTables *loreTable
)

// lore returns the shared, immutable lore tables. Malformed embedded data is
// a build defect and panics at first use.
func lore() *loreTable {
	loreOnce.Do(func() {
		t := &loreTable{}
		if err := yaml.UnmarshalStrict(loreYAML, t); err != nil {
			panic(fmt.Sprintf("gandalf: bad lore tables: %v", err))
		}
		loreTables = t
	})
	return loreTables
}

// regionPrint emits v through the active region's wrapping. Regions outside
// the table print the bare rendered value. One region's style changes while
// the Ring is actively borne.
func (vm *VM) regionPrint(v Value) {
	rendered := FormatValue(v)
	style, ok := vm.lore.Regions[vm.CurrentRegion()]
	if !ok {
		vm.print(rendered)
		return
	}
	lines := style.Plain
	if vm.ringActive() && len(style.Ring) > 0 {
		lines = style.Ring
	}
	for _, tmpl := range lines {
		vm.print(strings.ReplaceAll(tmpl, "%v", rendered))
	}
}

func (t messageTable) forPersona(persona string) string {
	if msg, ok := t.Personas[persona]; ok {
		return msg
	}
	return t.Default
}

// palantir shows x, colored by the active region.
func (vm *VM) palantir(x Value) string {
	tmpl, ok := vm.lore.Palantir.Regions[vm.CurrentRegion()]
	if !ok {
		tmpl = vm.lore.Palantir.Default
	}
	return strings.ReplaceAll(tmpl, "%v", FormatValue(x))
}

// vision describes x through the current persona's sight, decorated by
// region and by the Ring.
func (vm *VM) vision(x Value) string {
	t := vm.lore.Vision
	msg := strings.ReplaceAll(t.forPersona(vm.persona), "%v", FormatValue(x))
	if suffix, ok := t.Regions[vm.CurrentRegion()]; ok {
		msg += suffix
	}
	if vm.ringActive() {
		msg += t.Ring
	}
	return msg
}

// stamina reports endurance for x in the current persona's idiom.
func (vm *VM) stamina(x Value) string {
	return strings.ReplaceAll(vm.lore.Stamina.forPersona(vm.persona), "%v", FormatValue(x))
}

// craft reports what the current persona's craft makes of x.
func (vm *VM) craft(x Value) string {
	return strings.ReplaceAll(vm.lore.Craft.forPersona(vm.persona), "%v", FormatValue(x))
}

// spellcraft is granted to wizards only, and the Ring twists it.
func (vm *VM) spellcraft() string {
	if vm.persona != "wizard" {
		return vm.lore.Spellcraft.Denied
	}
	if vm.ringActive() {
		return vm.lore.Spellcraft.Ring
	}
	return vm.lore.Spellcraft.Granted
}

// inventory lists owned artifacts, noting when the Ring is borne.
func (vm *VM) inventory() string {
	var items []string
	for name, owned := range vm.owned {
		if owned {
			items = append(items, name)
		}
	}
	if len(items) == 0 {
		return "Inventory: (empty)"
	}
	if vm.bearingRing && vm.owned[artifactRing] && !vm.ringDestroyed {
		items = append(items, "ring (borne)")
	}
	sort.Strings(items)
	return "Inventory: " + strings.Join(items, ", ")
}

// power computes a small score from persona, owned artifacts, the Ring, and
// the region, with a region-flavored annotation.
func (vm *VM) power() string {
	w := vm.lore.Power
	base := w.Base + w.Personas[vm.persona]
	for name, bonus := range w.Artifacts {
		if vm.owned[name] {
			base += bonus
		}
	}
	if vm.ringActive() {
		base += w.Ring
	}
	region := vm.CurrentRegion()
	if region == chargedRegion && vm.ringActive() {
		return fmt.Sprintf("Power: %d%s", base, w.Eye)
	}
	return fmt.Sprintf("Power: %d%s", base, w.Regions[region])
}

// corruption sums the weighted contributions of the Ring, region, persona,
// and artifacts, clamped at zero.
func (vm *VM) corruption() string {
	w := vm.lore.Corruption
	c := 0
	if vm.owned[artifactRing] && !vm.ringDestroyed {
		c += w.OwnedRing
	}
	if vm.ringActive() {
		c += w.BorneRing
	}
	c += w.Regions[vm.CurrentRegion()]
	c += w.Personas[vm.persona]
	for name, weight := range w.Artifacts {
		if vm.owned[name] {
			c += weight
		}
	}
	if c < 0 {
		c = 0
	}
	return fmt.Sprintf("Corruption: %d", c)
}
