package services

// Verdict is the outcome of an ownership check. Absence and lack of
// permission are deliberately distinct outcomes; collapsing the two hides
// real 404s behind 403s.
type Verdict int

const (
	VerdictAllow Verdict = iota
	VerdictNotFound
	VerdictForbidden
)

func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictNotFound:
		return "not_found"
	case VerdictForbidden:
		return "forbidden"
	}
	return "unknown"
}
