// Package exporter serializes canonical employee tables to CSV for the
// presentation layer's download passthrough, with optional UTF-8 BOM
// for Excel compatibility.
package exporter
