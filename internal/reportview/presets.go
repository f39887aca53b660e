package reportview

import (
	"strings"

	"github.com/mwiater/primeview/internal/filtergroup"
	"github.com/mwiater/primeview/internal/presets"
)

// Presets returns the stored presets in order.
func (p *Page) Presets() []presets.Preset { return p.presets.List() }

// PresetStore exposes the underlying preset collection.
func (p *Page) PresetStore() *presets.Store { return p.presets }

// CurrentPreset captures the current filters under name.
func (p *Page) CurrentPreset(name string) presets.Preset {
	return presets.Preset{
		Name:               name,
		AlgorithmText:      p.FilterText(filtergroup.Algorithm),
		BitsText:           p.FilterText(filtergroup.Bits),
		FaithfulText:       p.FilterText(filtergroup.Faithful),
		ImplementationText: p.ImplementationText,
		ParallelismText:    p.FilterText(filtergroup.Parallelism),
	}
}

// AddPreset stores the current filters under PresetName and clears the name.
// A blank name does nothing.
func (p *Page) AddPreset() error {
	if strings.TrimSpace(p.PresetName) == "" {
		return nil
	}
	if _, err := p.presets.Add(p.CurrentPreset(p.PresetName)); err != nil {
		return err
	}
	p.PresetName = ""
	return nil
}

// ApplyPreset loads the filters of the preset at index and reports whether
// one was found.
func (p *Page) ApplyPreset(index int) bool {
	preset, ok := p.presets.At(index)
	if !ok {
		return false
	}

	p.SetFilterText(filtergroup.Algorithm, preset.AlgorithmText)
	p.SetFilterText(filtergroup.Bits, preset.BitsText)
	p.SetFilterText(filtergroup.Faithful, preset.FaithfulText)
	p.ImplementationText = preset.ImplementationText
	p.SetFilterText(filtergroup.Parallelism, preset.ParallelismText)

	if impls := p.FilterImplementations(); len(impls) > 0 {
		p.sel.SetValues(impls)
	} else {
		p.sel.Clear()
	}

	p.PresetName = preset.Name
	return true
}

// RemovePreset deletes the preset at index. A stale index is ignored.
func (p *Page) RemovePreset(index int) error {
	return p.presets.RemoveAt(index)
}
