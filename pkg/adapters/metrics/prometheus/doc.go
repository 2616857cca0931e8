// Package prometheus implements the request metrics recorder on top of
// client_golang.
//
// Each Collector owns a private registry, so several collectors can coexist
// in one process (tests do this) without clashing on the default registerer.
package prometheus
