package pagination

// Window is the vertical slice of the shared flow one page displays.
//
// Every page shows the same unsplit content shifted up by Offset and
// clipped to Height. Manual breaks do not pad the flow to the next band
// boundary, so content after a break can sit at a different offset than
// the break implies; the windows are a preview approximation, not true
// fragmentation.
type Window struct {
	Index  int `json:"index"`
	Offset int `json:"offset"` // pixels the flow is shifted upward
	Height int `json:"height"` // visible band height; overflow is clipped
}

// WindowFor returns the window of the 1-based page index
func WindowFor(index int, layout Layout) Window {
	if index < 1 {
		index = 1
	}
	band := layout.ContentHeight()
	return Window{
		Index:  index,
		Offset: (index - 1) * band,
		Height: band,
	}
}

// Windows returns the windows of pages 1..count. Consecutive windows meet
// exactly, so together they cover [0, count*band) with no gap or overlap.
func Windows(count int, layout Layout) []Window {
	if count < 0 {
		count = 0
	}
	windows := make([]Window, 0, count)
	for i := 1; i <= count; i++ {
		windows = append(windows, WindowFor(i, layout))
	}
	return windows
}
