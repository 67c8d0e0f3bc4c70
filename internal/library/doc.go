// Package library walks a media library laid out as one folder per title
// and discovers transcoding candidates, honoring the versions-folder
// convention: outputs live in "<title>/Custom Versions/<label>/" and are
// never themselves revisited as candidates.
package library
