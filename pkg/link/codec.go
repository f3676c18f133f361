package link

import (
	"strings"

	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/errors"
)

// Markers separating the display name from the link payload.
const (
	Delimiter    = "|||||"
	MasterMarker = Delimiter + "MASTERLAYER" + Delimiter
	SlaveMarker  = Delimiter + "SLAVEGROUP" + Delimiter
)

// slaveSuffix is appended to the display name of generated artwork.
const slaveSuffix = "'s SVG Layer"

// Role tells what a decoded name links to.
type Role int

const (
	RoleNone   Role = iota // plain, unlinked layer
	RoleMaster             // placeholder referencing its artwork
	RoleSlave              // artwork carrying the chart configuration
)

func (r Role) String() string {
	switch r {
	case RoleMaster:
		return "master"
	case RoleSlave:
		return "slave"
	default:
		return "none"
	}
}

// Link is a decoded layer name.
type Link struct {
	Role        Role
	DisplayName string
	// Payload is the slave ID for masters and the raw JSON configuration
	// for slaves. It is empty for RoleNone.
	Payload string
}

// IsMaster reports whether the name references a slave.
func (l Link) IsMaster() bool { return l.Role == RoleMaster }

// EncodeMaster builds a master name pointing at slaveID.
func EncodeMaster(displayName, slaveID string) string {
	return sanitize(displayName) + " " + MasterMarker + " " + slaveID
}

// EncodeSlave builds a slave name carrying cfg.
func EncodeSlave(displayName string, cfg chart.Config) (string, error) {
	raw, err := cfg.Marshal()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode chart configuration")
	}
	// "|" only occurs inside JSON strings, where \u007c decodes back to it.
	// This keeps markers in cell text from splitting the name.
	raw = strings.ReplaceAll(raw, "|", `\u007c`)
	return sanitize(displayName) + slaveSuffix + " " + SlaveMarker + " " + raw, nil
}

// Decode splits a layer name into its display name and link payload.
//
// A name is linked only if splitting on a marker yields exactly two segments
// and the payload is not blank; anything else decodes as RoleNone with the
// whole name as display name.
func Decode(name string) Link {
	// Display names never contain the delimiter, so the first marker in the
	// name is the real one; a later one belongs to the payload.
	mi := strings.Index(name, MasterMarker)
	si := strings.Index(name, SlaveMarker)
	var (
		l  Link
		ok bool
	)
	switch {
	case mi >= 0 && (si < 0 || mi < si):
		l, ok = split(name, MasterMarker, RoleMaster)
	case si >= 0:
		l, ok = split(name, SlaveMarker, RoleSlave)
	}
	if ok {
		return l
	}
	return Link{Role: RoleNone, DisplayName: strings.TrimSpace(name)}
}

func split(name, marker string, role Role) (Link, bool) {
	parts := strings.Split(name, marker)
	if len(parts) != 2 {
		return Link{}, false
	}
	payload := strings.TrimSpace(parts[1])
	if payload == "" {
		return Link{}, false
	}
	display := strings.TrimSpace(parts[0])
	if role == RoleSlave {
		display = strings.TrimSuffix(display, slaveSuffix)
	}
	return Link{Role: role, DisplayName: display, Payload: payload}, true
}

// DecodeConfig parses a slave payload. A payload that is not valid JSON, or
// that carries no chart type or data, is reported as a PARSE_ERROR
// ("configuration lost").
func DecodeConfig(raw string) (chart.Config, error) {
	cfg, err := chart.Unmarshal(raw)
	if err != nil {
		return chart.Config{}, errors.Wrap(errors.ErrCodeParse, err, "Chart configuration got lost.")
	}
	if !cfg.ChartType.Valid() || len(cfg.Data) == 0 {
		return chart.Config{}, errors.New(errors.ErrCodeParse, "Chart configuration got lost.")
	}
	return cfg, nil
}

// DisplayName returns the user-facing part of any layer name.
func DisplayName(name string) string {
	return Decode(name).DisplayName
}

// Unlink returns name with any link payload removed.
func Unlink(name string) string {
	return DisplayName(name)
}

// sanitize strips delimiters so a display name can never be mistaken for a
// link marker.
func sanitize(name string) string {
	name = DisplayName(name)
	for strings.Contains(name, Delimiter) {
		name = strings.ReplaceAll(name, Delimiter, "")
	}
	return strings.TrimSpace(name)
}
