package catalog

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-timetable/core"
)

// View is the serialized form of a Catalog, with the time axis sorted.
type View struct {
	Days  []string `json:"days"`
	Slots []string `json:"slots"`
}

func (c Catalog) View() View {
	v := View{Days: c.Days(), Slots: c.Slots()}
	if v.Days == nil {
		v.Days = []string{}
	}
	if v.Slots == nil {
		v.Slots = []string{}
	}
	return v
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.View())
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = New(v.Days, v.Slots)
	return nil
}

// NewLabel contains the label of a day or slot to add to the catalog.
type NewLabel struct {
	Label string `json:"label" validate:"required,notblank"`
}

func (nl *NewLabel) Validate(validate *validator.Validate) error {
	nl.Label = core.CleanString(nl.Label)
	return validate.Struct(nl)
}

// NewSlot contains the bounds of a time slot to add to the catalog.
// Missing bounds are reported by SynthesizeSlot.
type NewSlot struct {
	StartTime string `json:"start_time" validate:"omitempty,clock"`
	EndTime   string `json:"end_time" validate:"omitempty,clock"`
}

func (ns *NewSlot) Validate(validate *validator.Validate) error {
	ns.StartTime = core.CleanString(ns.StartTime)
	ns.EndTime = core.CleanString(ns.EndTime)
	return validate.Struct(ns)
}
