// Package mediainfo wraps the mediainfo command-line tool, invoked in JSON
// output mode, and extracts the scalar video metadata squeeze needs: frame
// rate, bitrate, width, and height of the first video track.
package mediainfo
