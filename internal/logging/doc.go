// Package logging builds the service's zap logger.
//
// Verbosity is controlled by a filter string made of comma-separated
// directives, each either a bare level or target=level:
//
//	metricsvc=debug
//	info,metricsvc.http=warn
//
// Targets are matched against logger names segment by segment and the
// longest match wins. Names that no directive matches use the bare level,
// or error when none is given.
package logging
