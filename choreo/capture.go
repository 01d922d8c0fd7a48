package choreo

// CapturedGeometry is one element's rendered geometry at capture time: the
// position it appeared at (slot plus any in-flight offset) and the offset
// itself.
type CapturedGeometry struct {
	Position Position
	Offset   Position
}

// Snapshot maps old index (the element's index before the pending mutation)
// to its captured geometry. One snapshot exists per reorder request and is
// discarded once re-anchoring completes.
type Snapshot map[int]CapturedGeometry

// Prepare reads the rendered geometry of every element on the stage, keyed
// by old index. It must run before the caller mutates the underlying order.
// Indices in exclude are left out entirely: an element exempt from animation
// never moves, so no FLIP work is needed for it.
func Prepare(stage Stage, exclude map[int]bool) Snapshot {
	elems := stage.Elements()
	snap := make(Snapshot, len(elems))
	for i, e := range elems {
		if exclude[i] {
			continue
		}
		snap[i] = CapturedGeometry{Position: RenderedPosition(e), Offset: e.Offset()}
	}
	return snap
}

// Reanchor runs after the mutation has re-laid elements out at the new grid:
// for each new index it looks up the old index through perm and sets the
// element's offset so it still appears at its captured position. This must
// happen synchronously, before the next frame renders, or the user sees a
// one-frame flash at the new position.
//
// Elements missing from the snapshot (newly added mid-flight, or excluded)
// are skipped; the count of genuinely missing captures is returned so the
// caller can log it. Skipped elements simply animate from wherever the new
// layout put them.
func Reanchor(stage Stage, snap Snapshot, grid Grid, perm []int, exclude map[int]bool) (missing int) {
	elems := stage.Elements()
	for newIdx, e := range elems {
		if newIdx >= len(perm) || newIdx >= len(grid.Positions) {
			break
		}
		if exclude[newIdx] {
			continue
		}
		old := perm[newIdx]
		geo, ok := snap[old]
		if !ok {
			missing++
			continue
		}
		e.SetOffset(geo.Position.Sub(e.Slot()))
	}
	return missing
}
