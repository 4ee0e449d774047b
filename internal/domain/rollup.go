package domain

// Rollup propagates child schedule dates into their summary parents,
// children first. Every *Start field of a parent becomes the minimum, and
// every *Finish field the maximum, of its own value and its children's.
// ActualFinish is only rolled up when every child has finished.
//
// Rollup is idempotent.
func (p *Project) Rollup() {
	for _, id := range p.Roots {
		p.rollup(id)
	}
}

func (p *Project) rollup(id TaskID) {
	if !p.Tasks[id].HasChildren() {
		return
	}

	// Roll children up first; p.Tasks is not resized below, so the pointer
	// taken afterwards stays valid.
	for _, c := range p.Tasks[id].Children {
		p.rollup(c)
	}

	parent := &p.Tasks[id]
	start := parent.Start
	finish := parent.Finish
	actualStart := parent.ActualStart
	actualFinish := parent.ActualFinish
	earlyStart := parent.EarlyStart
	earlyFinish := parent.EarlyFinish
	lateStart := parent.LateStart
	lateFinish := parent.LateFinish

	finished := 0
	for _, c := range parent.Children {
		child := &p.Tasks[c]
		start = MinTime(start, child.Start)
		finish = MaxTime(finish, child.Finish)
		actualStart = MinTime(actualStart, child.ActualStart)
		actualFinish = MaxTime(actualFinish, child.ActualFinish)
		earlyStart = MinTime(earlyStart, child.EarlyStart)
		earlyFinish = MaxTime(earlyFinish, child.EarlyFinish)
		lateStart = MinTime(lateStart, child.LateStart)
		lateFinish = MaxTime(lateFinish, child.LateFinish)
		if child.ActualFinish != nil {
			finished++
		}
	}

	parent.Start = start
	parent.Finish = finish
	parent.ActualStart = actualStart
	parent.EarlyStart = earlyStart
	parent.EarlyFinish = earlyFinish
	parent.LateStart = lateStart
	parent.LateFinish = lateFinish

	if finished == len(parent.Children) {
		parent.ActualFinish = actualFinish
	}
}
