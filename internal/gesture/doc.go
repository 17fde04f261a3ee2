// Package gesture is the boundary between hand tracking and the render loop.
//
// The render loop only ever reads a [HandMetrics] value from a [Cell] and
// drains cycle events from a [Tracker]. Landmark detection itself is behind
// the [Detector] interface; this module ships a YAML replay detector and a
// [Pointer] that lets a mouse stand in for a hand.
//
// The cell has one writer and one reader and is not locked beyond an atomic
// pointer swap. A reader may see a value one poll old; metrics only drive
// smoothed visual nudges, so that is acceptable.
package gesture
