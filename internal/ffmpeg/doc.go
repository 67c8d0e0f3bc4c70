// Package ffmpeg wraps the ffmpeg command-line transcoder. Jobs carry the
// fully computed encode parameters; the argument template itself is fixed.
package ffmpeg
