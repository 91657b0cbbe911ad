//go:build plume_release

package comments

const debugTracking = false
