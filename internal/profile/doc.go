// Package profile defines the fixed encode profile and the arithmetic
// derived from it: the bounded aspect-preserving output resolution, the
// keyframe interval, and the rate-control envelope.
package profile
