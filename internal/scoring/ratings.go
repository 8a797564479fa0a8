package scoring

import "strconv"

// Ratings is the canonical criterion-id -> star-score shape. All loose input
// forms are normalized into it exactly once, at ingestion.
type Ratings map[string]float64

// ParseRatings normalizes a decoded JSON ratings map. The form UI posts
// either a bare number per criterion or an object carrying a "score" field
// alongside label metadata; older exports used strings. Non-numeric garbage
// becomes 0 rather than an error so one bad entry cannot sink a submission.
func ParseRatings(raw map[string]interface{}) Ratings {
	out := make(Ratings, len(raw))
	for id, v := range raw {
		out[id] = StarValue(v)
	}
	return out
}

// StarValue extracts a single star score from any of the accepted shapes and
// clamps it to [0,5].
func StarValue(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return clampStar(t)
	case int:
		return clampStar(float64(t))
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return clampStar(f)
	case map[string]interface{}:
		if s, ok := t["score"]; ok {
			return StarValue(s)
		}
		return 0
	default:
		return 0
	}
}

func clampStar(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 5 {
		return 5
	}
	return f
}
