package leave

import "time"

// EntitlementDays maps tenure to the statutory annual paid-leave grant:
// 10 days after six months of service, one more per year from the second
// anniversary, capped at 15 from the sixth year on.
func EntitlementDays(hireDate, asOf time.Time) int {
	switch {
	case asOf.Before(hireDate.AddDate(0, 6, 0)):
		return 0
	case asOf.Before(hireDate.AddDate(2, 0, 0)):
		return 10
	case asOf.Before(hireDate.AddDate(3, 0, 0)):
		return 11
	case asOf.Before(hireDate.AddDate(4, 0, 0)):
		return 12
	case asOf.Before(hireDate.AddDate(5, 0, 0)):
		return 13
	case asOf.Before(hireDate.AddDate(6, 0, 0)):
		return 14
	default:
		return 15
	}
}
