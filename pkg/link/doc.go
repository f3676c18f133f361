// Package link encodes the association between a placeholder layer and its
// chart artwork in the layers' names.
//
// # Name Encoding
//
// A converted placeholder (the master) and its imported artwork (the slave)
// point at each other purely through their names:
//
//	Revenue |||||MASTERLAYER||||| 0F4C...-slave-id
//	Revenue's SVG Layer |||||SLAVEGROUP||||| {"chartType":"line",...}
//
// The master carries the slave's layer ID; the slave carries the complete
// chart configuration. Because nothing is stored outside the document, a pair
// survives saving, reloading and copying between documents.
//
// # Decoding
//
// [Decode] never fails: names without a well-formed link decode as
// [RoleNone]. [Resolve] follows a master to its slave and reports
// LINK_BROKEN when the slave has been deleted or renamed, so callers can
// show a message instead of crashing.
package link
