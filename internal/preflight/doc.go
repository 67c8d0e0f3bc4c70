// Package preflight verifies the environment before a conversion run:
// library access permissions and availability of the external tools.
package preflight
