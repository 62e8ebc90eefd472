package spreadsheet

import (
	"rosterctl/internal/errors"
)

// maxSumArguments caps the number of references one aggregation formula
// may carry.
const maxSumArguments = 12

// firstBucketReserve keeps two slots free in the first bucket for the
// deadline-missed and bonus-points cells of the total formula.
const firstBucketReserve = 2

// maxCriterionRows bounds the total number of criterion references;
// commercial spreadsheet formula-length limits are assumed beyond it.
const maxCriterionRows = 120

// packReferences distributes ordered row references over buckets so that
// no bucket exceeds the argument cap. The first bucket keeps
// firstBucketReserve slots free. An over-capacity bucket evicts its last
// reference to the front of the following bucket (created if absent), and
// placement restarts from the first bucket. Reference order is preserved
// across the returned buckets.
func packReferences(refs []int) ([][]int, error) {
	if len(refs) >= maxCriterionRows {
		return nil, errors.NewWithDetails(errors.KindInternal, "FORMULA_TOO_LARGE",
			"too many criterion rows for spreadsheet formulas", len(refs))
	}

	buckets := [][]int{append([]int(nil), refs...)}
	i := 0
	for i < len(buckets) {
		reserve := 0
		if i == 0 {
			reserve = firstBucketReserve
		}
		if len(buckets[i])+reserve > maxSumArguments {
			last := buckets[i][len(buckets[i])-1]
			buckets[i] = buckets[i][:len(buckets[i])-1]
			if i+1 >= len(buckets) {
				buckets = append(buckets, nil)
			}
			buckets[i+1] = append([]int{last}, buckets[i+1]...)
			i = 0
		} else {
			i++
		}
	}
	return buckets, nil
}
