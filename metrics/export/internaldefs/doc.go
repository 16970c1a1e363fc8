// Package internaldefs holds the shared metric name/help definitions consumed
// by the Prometheus and OTel exporters, so both render identical series.
package internaldefs
