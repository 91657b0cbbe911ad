//go:build !plume_release

package comments

// debugTracking enables per-comment bookkeeping and the exhaustiveness
// check. Release builds (-tags plume_release) compile both out.
const debugTracking = true
