package pagination

// Estimate returns how many pages a flow of contentHeight pixels needs when
// each page holds bandHeight pixels and the flow contains manualBreaks
// page-break markers.
//
// Natural overflow and manual breaks are independent lower bounds; the
// result is the larger of the two and never less than one page. The
// estimator does not know where breaks fall relative to the overflow
// boundaries, so a page holding both a break and heavy content may be
// under- or over-counted.
func Estimate(contentHeight, bandHeight, manualBreaks int) (int, error) {
	if bandHeight <= 0 {
		return 0, &ConfigurationError{Field: "contentBandHeight", Value: bandHeight, Reason: "must be positive"}
	}
	if contentHeight < 0 {
		contentHeight = 0
	}
	if manualBreaks < 0 {
		manualBreaks = 0
	}

	natural := (contentHeight + bandHeight - 1) / bandHeight
	needed := max(natural, manualBreaks+1)
	return max(1, needed), nil
}

// EstimateFor runs Estimate against a layout's content band
func EstimateFor(m Measurement, layout Layout) (int, error) {
	return Estimate(m.Height, layout.ContentHeight(), m.Breaks)
}
