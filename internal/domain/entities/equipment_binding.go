package entities

import (
	"errors"

	"github.com/google/uuid"
)

// ErrUnknownEquipment means a checklist references an equipment id that no
// longer resolves. Presentation layers render "unknown equipment" for it;
// it is never a hard failure.
var ErrUnknownEquipment = errors.New("checklist references unknown equipment")

// NewEquipment creates a blank equipment entry with its stable identifier
// already assigned. Checklists bind to that identifier, not to the entry's
// position, so removals and reorders cannot silently repoint a checklist at
// the wrong device.
func NewEquipment() Equipment {
	return Equipment{ID: uuid.NewString()}
}

// RebindChecklists recomputes every checklist's derived positional index from
// its stable equipment id and drops checklists whose equipment no longer
// exists. Must be called after any mutation of the Equipments collection.
func (o *ServiceOrder) RebindChecklists() {
	pos := make(map[string]int, len(o.Equipments))
	for i, eq := range o.Equipments {
		pos[eq.ID] = i
	}

	kept := o.Checklists[:0]
	for _, c := range o.Checklists {
		i, ok := pos[c.EquipmentID]
		if !ok {
			continue
		}
		c.EquipmentIndex = i
		kept = append(kept, c)
	}
	o.Checklists = kept
}

// ChecklistEquipment resolves the equipment entry a checklist belongs to.
func (o ServiceOrder) ChecklistEquipment(c Checklist) (Equipment, error) {
	for _, eq := range o.Equipments {
		if eq.ID == c.EquipmentID {
			return eq, nil
		}
	}
	return Equipment{}, ErrUnknownEquipment
}

// ReplaceEquipments swaps the whole equipment collection (callers always
// supply full replacement arrays, never partial merges) and rebinds.
// Entries arriving without an id get one assigned here.
func (o *ServiceOrder) ReplaceEquipments(equipments []Equipment) {
	for i := range equipments {
		if equipments[i].ID == "" {
			equipments[i].ID = uuid.NewString()
		}
	}
	o.Equipments = equipments
	o.RebindChecklists()
}

// ReplaceChecklists swaps the checklist collection, rebinding so derived
// indexes are consistent and orphans are discarded immediately.
func (o *ServiceOrder) ReplaceChecklists(checklists []Checklist) {
	o.Checklists = checklists
	o.RebindChecklists()
}

// RemoveEquipment deletes the entry at index, preserving the relative order
// of the remaining entries, and invalidates checklists bound to it.
func (o *ServiceOrder) RemoveEquipment(index int) bool {
	if index < 0 || index >= len(o.Equipments) {
		return false
	}
	o.Equipments = append(o.Equipments[:index], o.Equipments[index+1:]...)
	o.RebindChecklists()
	return true
}
