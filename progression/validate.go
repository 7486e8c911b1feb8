package progression

import (
	"strings"
	"time"
)

// ViolationCode names one reason a submitted result is illegal. Validation
// never stops at the first problem; every violation found is reported.
type ViolationCode string

const (
	ViolationMatchNotStarted       ViolationCode = "MATCH_NOT_STARTED"
	ViolationGoalNegative          ViolationCode = "GOAL_VALUE_NEGATIVE"
	ViolationNormalGoalsIncomplete ViolationCode = "NORMAL_GOALS_INCOMPLETE"
	ViolationGroupMatchOvertime    ViolationCode = "GROUP_MATCH_WITH_OVERTIME"
	ViolationOvertimeNotAllowed    ViolationCode = "OVERTIME_NOT_ALLOWED"
	ViolationFinishedAfter90       ViolationCode = "MATCH_FINISHED_AFTER_90_MIN"
	ViolationFinishedAfter120      ViolationCode = "MATCH_FINISHED_AFTER_120_MIN"
	ViolationExtraGoalsRequired    ViolationCode = "EXTRA_GOALS_REQUIRED"
	ViolationPenaltyGoalsRequired  ViolationCode = "PENALTY_GOALS_REQUIRED"
	ViolationPenaltyResultDrawn    ViolationCode = "PENALTY_RESULT_DRAWN"
	ViolationMatchNotFound         ViolationCode = "MATCH_NOT_FOUND"
)

// ValidationError carries the accumulated violation codes of one save
// attempt.
type ValidationError struct {
	Violations []ViolationCode
}

func (e *ValidationError) Error() string {
	codes := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		codes[i] = string(v)
	}
	return "result validation failed: " + strings.Join(codes, ", ")
}

// Has reports whether a specific violation was recorded.
func (e *ValidationError) Has(code ViolationCode) bool {
	for _, v := range e.Violations {
		if v == code {
			return true
		}
	}
	return false
}

// ResultInput is one submitted match result together with the match facts
// the rules depend on.
type ResultInput struct {
	IsGroupMatch      bool
	IsOvertimeAllowed bool
	StartTime         time.Time

	GoalNormal1  *int
	GoalNormal2  *int
	GoalExtra1   *int
	GoalExtra2   *int
	GoalPenalty1 *int
	GoalPenalty2 *int
}

// ValidateResult checks a submitted result against the stage rules and
// returns every violation found, in rule order. An empty slice means the
// result may be stored.
func ValidateResult(in ResultInput, now time.Time) []ViolationCode {
	violations := make([]ViolationCode, 0)
	add := func(code ViolationCode) {
		violations = append(violations, code)
	}

	if !in.StartTime.Before(now) {
		add(ViolationMatchNotStarted)
	}

	if anyNegative(in.GoalNormal1, in.GoalNormal2, in.GoalExtra1, in.GoalExtra2, in.GoalPenalty1, in.GoalPenalty2) {
		add(ViolationGoalNegative)
	}

	normalComplete := in.GoalNormal1 != nil && in.GoalNormal2 != nil
	extraComplete := in.GoalExtra1 != nil && in.GoalExtra2 != nil
	penaltyComplete := in.GoalPenalty1 != nil && in.GoalPenalty2 != nil
	overtimePresent := anyPresent(in.GoalExtra1, in.GoalExtra2, in.GoalPenalty1, in.GoalPenalty2)

	if !normalComplete {
		add(ViolationNormalGoalsIncomplete)
	}

	if in.IsGroupMatch {
		if overtimePresent {
			add(ViolationGroupMatchOvertime)
		}
	} else if normalComplete {
		if *in.GoalNormal1 == *in.GoalNormal2 {
			switch {
			case !in.IsOvertimeAllowed:
				if overtimePresent {
					add(ViolationOvertimeNotAllowed)
				}
			case !extraComplete:
				add(ViolationExtraGoalsRequired)
			case *in.GoalExtra1 == *in.GoalExtra2:
				if !penaltyComplete {
					add(ViolationPenaltyGoalsRequired)
				}
			default:
				if anyPresent(in.GoalPenalty1, in.GoalPenalty2) {
					add(ViolationFinishedAfter120)
				}
			}
		} else if overtimePresent {
			add(ViolationFinishedAfter90)
		}
	}

	// Checked regardless of how the penalties came to be present, so that a
	// drawn shootout surfaces alongside any structural violations above.
	if penaltyComplete && *in.GoalPenalty1 == *in.GoalPenalty2 {
		add(ViolationPenaltyResultDrawn)
	}

	return violations
}

func anyNegative(goals ...*int) bool {
	for _, g := range goals {
		if g != nil && *g < 0 {
			return true
		}
	}
	return false
}

func anyPresent(goals ...*int) bool {
	for _, g := range goals {
		if g != nil {
			return true
		}
	}
	return false
}
