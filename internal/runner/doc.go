// Package runner drives a conversion run: it scans the library, decides
// per file whether a converted variant is needed, probes qualifying
// sources, and invokes the transcoder strictly one file at a time.
package runner
