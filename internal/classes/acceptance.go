package classes

// MinStatisticalSampleSize is the smallest sample for which a characteristic
// value is computed.
const MinStatisticalSampleSize = 3

// DefaultAcceptanceConstant applies to any sample larger than the last breakpoint.
const DefaultAcceptanceConstant = 1.64

type breakpoint struct {
	n  int
	kA float64
}

// acceptanceTable is ascending in n and non-increasing in kA.
var acceptanceTable = []breakpoint{
	{3, 1.89},
	{4, 1.83},
	{5, 1.80},
	{6, 1.77},
	{7, 1.75},
	{8, 1.74},
	{9, 1.73},
	{10, 1.72},
	{15, 1.69},
	{20, 1.67},
	{30, 1.66},
	{50, 1.65},
	{1000, DefaultAcceptanceConstant},
}

// AcceptanceConstant returns kA for a sample of size n.
//
// The constant is taken from the smallest tabulated breakpoint >= n; sizes
// beyond the last breakpoint get DefaultAcceptanceConstant. ok is false when
// n is below MinStatisticalSampleSize.
func AcceptanceConstant(n int) (kA float64, ok bool) {
	if n < MinStatisticalSampleSize {
		return 0, false
	}
	for _, bp := range acceptanceTable {
		if bp.n >= n {
			return bp.kA, true
		}
	}
	return DefaultAcceptanceConstant, true
}

// AcceptanceBreakpoints returns the tabulated sample sizes in ascending order.
func AcceptanceBreakpoints() []int {
	out := make([]int, len(acceptanceTable))
	for i, bp := range acceptanceTable {
		out[i] = bp.n
	}
	return out
}
