package link

import (
	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/errors"
)

// Finder looks layers up by ID.
type Finder interface {
	LayerByID(id string) (*document.Layer, bool)
}

// Pair is a resolved master/slave association.
type Pair struct {
	Master *document.Layer
	Slave  *document.Layer
	Config chart.Config
}

// Resolve follows master's link to its slave and decodes the stored chart
// configuration.
//
// It returns LINK_BROKEN when master is not linked, when the referenced slave
// no longer exists, or when the referenced layer does not carry a
// configuration; PARSE_ERROR when the stored configuration is unreadable.
func Resolve(f Finder, master *document.Layer) (Pair, error) {
	m := Decode(master.Name)
	if m.Role != RoleMaster {
		return Pair{}, errors.New(errors.ErrCodeLinkBroken, "Layer %q is not linked to a chart.", m.DisplayName)
	}

	slave, ok := f.LayerByID(m.Payload)
	if !ok {
		return Pair{}, errors.New(errors.ErrCodeLinkBroken, "Chart layer of %q got lost.", m.DisplayName)
	}

	s := Decode(slave.Name)
	if s.Role != RoleSlave {
		return Pair{}, errors.New(errors.ErrCodeLinkBroken, "Chart layer of %q was renamed and lost its configuration.", m.DisplayName)
	}

	cfg, err := DecodeConfig(s.Payload)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Master: master, Slave: slave, Config: cfg}, nil
}

// FindMaster returns the layer whose name links to slaveID.
func FindMaster(layers []*document.Layer, slaveID string) (*document.Layer, bool) {
	for _, l := range layers {
		if d := Decode(l.Name); d.Role == RoleMaster && d.Payload == slaveID {
			return l, true
		}
	}
	return nil, false
}
