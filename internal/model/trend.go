package model

// Trend is the directional change of average blood pressure versus the
// prior chronological record.
type Trend int

const (
	TrendFirstRecord Trend = iota
	TrendStable
	TrendIncreased
	TrendDecreased
)

// String returns the display name for the trend.
func (t Trend) String() string {
	switch t {
	case TrendIncreased:
		return "Increased"
	case TrendDecreased:
		return "Decreased"
	case TrendStable:
		return "Stable"
	case TrendFirstRecord:
		return "First Record"
	default:
		return "First Record"
	}
}

// trendThreshold is the dead band around the previous average; changes of
// at most this magnitude count as stable.
const trendThreshold = 2.0

// TrendBetween compares a record against its chronological predecessor.
// previous is the next-older record in a list sorted descending by
// timestamp; the caller supplies the pairing. A nil previous means current
// is the oldest record.
func TrendBetween(current Record, previous *Record) Trend {
	if previous == nil {
		return TrendFirstRecord
	}

	currentAvg := current.Average()
	previousAvg := previous.Average()

	switch {
	case currentAvg > previousAvg+trendThreshold:
		return TrendIncreased
	case currentAvg < previousAvg-trendThreshold:
		return TrendDecreased
	default:
		return TrendStable
	}
}
