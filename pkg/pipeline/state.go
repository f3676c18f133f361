package pipeline

import (
	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/link"
)

// Classify returns the state for a selection.
func Classify(sel []*document.Layer) State {
	switch len(sel) {
	case 0:
		return NoSelection
	case 1:
	default:
		return MultiSelection
	}

	switch link.Decode(sel[0].Name).Role {
	case link.RoleMaster:
		return SingleLinkedMaster
	case link.RoleSlave:
		return SingleLinkedSlave
	default:
		return SingleUnlinked
	}
}
