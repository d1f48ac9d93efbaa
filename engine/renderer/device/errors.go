package device

import "errors"

// ErrSurfaceOutdated reports that the surface no longer matches the window,
// typically mid-resize. Frames that hit it should be skipped, not treated as
// fatal; the next reconfigure heals the surface.
var ErrSurfaceOutdated = errors.New("surface outdated")

// ErrSurfaceNotConfigured reports that a frame was requested before the
// surface was given a size.
var ErrSurfaceNotConfigured = errors.New("surface not configured")
