// Package compliance loads control-to-evidence mapping files and renders
// them as human-readable reports.
//
// A mapping is a YAML document associating framework controls (SOC 2,
// ISO 27001) with requirement text and evidence references. Rendering is a
// pure function of the mapping: no external calls, no filesystem access.
// Entries missing required fields are reported as validation issues while
// rendering continues for the valid remainder.
package compliance
