package metrics

import (
	"strconv"
	"time"
)

// UnmatchedRoute is the route label used for requests that matched no route.
const UnmatchedRoute = "unmatched"

// Sample is the outcome of a single handled request
type Sample struct {
	Method   string
	Route    string
	Status   int
	Duration time.Duration
}

// StatusLabel returns the status code as a label value
func (s Sample) StatusLabel() string {
	return strconv.Itoa(s.Status)
}

// RouteLabel returns the route label, falling back to UnmatchedRoute
func (s Sample) RouteLabel() string {
	return RouteLabel(s.Route)
}

// RouteLabel normalizes a matched route pattern into a label value.
func RouteLabel(route string) string {
	if route == "" {
		return UnmatchedRoute
	}
	return route
}

// Recorder aggregates request samples and renders them in a text exposition format.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Record(sample Sample)
	Render() ([]byte, error)
}
