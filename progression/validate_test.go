package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var validateNow = time.Date(2026, 6, 14, 21, 0, 0, 0, time.UTC)

func startedAt(offset time.Duration) time.Time {
	return validateNow.Add(offset)
}

func TestValidateResultAcceptsLegalResults(t *testing.T) {
	tests := []struct {
		name string
		in   ResultInput
	}{
		{
			name: "group match in normal time",
			in: ResultInput{
				IsGroupMatch: true,
				StartTime:    startedAt(-2 * time.Hour),
				GoalNormal1:  intPtr(2), GoalNormal2: intPtr(2),
			},
		},
		{
			name: "knockout decided in normal time",
			in: ResultInput{
				IsOvertimeAllowed: true,
				StartTime:         startedAt(-2 * time.Hour),
				GoalNormal1:       intPtr(1), GoalNormal2: intPtr(0),
			},
		},
		{
			name: "knockout decided in extra time",
			in: ResultInput{
				IsOvertimeAllowed: true,
				StartTime:         startedAt(-3 * time.Hour),
				GoalNormal1:       intPtr(1), GoalNormal2: intPtr(1),
				GoalExtra1: intPtr(2), GoalExtra2: intPtr(1),
			},
		},
		{
			name: "knockout decided on penalties",
			in: ResultInput{
				IsOvertimeAllowed: true,
				StartTime:         startedAt(-3 * time.Hour),
				GoalNormal1:       intPtr(0), GoalNormal2: intPtr(0),
				GoalExtra1: intPtr(0), GoalExtra2: intPtr(0),
				GoalPenalty1: intPtr(4), GoalPenalty2: intPtr(3),
			},
		},
		{
			name: "drawn first leg of a round without overtime",
			in: ResultInput{
				StartTime:   startedAt(-2 * time.Hour),
				GoalNormal1: intPtr(1), GoalNormal2: intPtr(1),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, ValidateResult(tc.in, validateNow))
		})
	}
}

func TestValidateResultViolations(t *testing.T) {
	tests := []struct {
		name string
		in   ResultInput
		want []ViolationCode
	}{
		{
			name: "match not started yet",
			in: ResultInput{
				IsGroupMatch: true,
				StartTime:    startedAt(time.Hour),
				GoalNormal1:  intPtr(1), GoalNormal2: intPtr(0),
			},
			want: []ViolationCode{ViolationMatchNotStarted},
		},
		{
			name: "negative goal value",
			in: ResultInput{
				IsGroupMatch: true,
				StartTime:    startedAt(-2 * time.Hour),
				GoalNormal1:  intPtr(-1), GoalNormal2: intPtr(0),
			},
			want: []ViolationCode{ViolationGoalNegative},
		},
		{
			name: "half-entered normal time",
			in: ResultInput{
				IsGroupMatch: true,
				StartTime:    startedAt(-2 * time.Hour),
				GoalNormal1:  intPtr(1),
			},
			want: []ViolationCode{ViolationNormalGoalsIncomplete},
		},
		{
			name: "group match with overtime goals",
			in: ResultInput{
				IsGroupMatch: true,
				StartTime:    startedAt(-2 * time.Hour),
				GoalNormal1:  intPtr(1), GoalNormal2: intPtr(1),
				GoalExtra1: intPtr(2), GoalExtra2: intPtr(1),
			},
			want: []ViolationCode{ViolationGroupMatchOvertime},
		},
		{
			name: "knockout drawn without extra time goals",
			in: ResultInput{
				IsOvertimeAllowed: true,
				StartTime:         startedAt(-2 * time.Hour),
				GoalNormal1:       intPtr(1), GoalNormal2: intPtr(1),
			},
			want: []ViolationCode{ViolationExtraGoalsRequired},
		},
		{
			name: "drawn extra time without a shootout",
			in: ResultInput{
				IsOvertimeAllowed: true,
				StartTime:         startedAt(-3 * time.Hour),
				GoalNormal1:       intPtr(1), GoalNormal2: intPtr(1),
				GoalExtra1: intPtr(1), GoalExtra2: intPtr(1),
			},
			want: []ViolationCode{ViolationPenaltyGoalsRequired},
		},
		{
			name: "penalties after a decisive extra time",
			in: ResultInput{
				IsOvertimeAllowed: true,
				StartTime:         startedAt(-3 * time.Hour),
				GoalNormal1:       intPtr(1), GoalNormal2: intPtr(1),
				GoalExtra1: intPtr(2), GoalExtra2: intPtr(1),
				GoalPenalty1: intPtr(4), GoalPenalty2: intPtr(3),
			},
			want: []ViolationCode{ViolationFinishedAfter120},
		},
		{
			name: "overtime goals after a decisive normal time",
			in: ResultInput{
				IsOvertimeAllowed: true,
				StartTime:         startedAt(-2 * time.Hour),
				GoalNormal1:       intPtr(2), GoalNormal2: intPtr(0),
				GoalExtra1: intPtr(1), GoalExtra2: intPtr(0),
			},
			want: []ViolationCode{ViolationFinishedAfter90},
		},
		{
			name: "drawn shootout",
			in: ResultInput{
				IsOvertimeAllowed: true,
				StartTime:         startedAt(-3 * time.Hour),
				GoalNormal1:       intPtr(0), GoalNormal2: intPtr(0),
				GoalExtra1: intPtr(0), GoalExtra2: intPtr(0),
				GoalPenalty1: intPtr(4), GoalPenalty2: intPtr(4),
			},
			want: []ViolationCode{ViolationPenaltyResultDrawn},
		},
		{
			name: "overtime entered in a round that has none",
			in: ResultInput{
				StartTime:   startedAt(-2 * time.Hour),
				GoalNormal1: intPtr(1), GoalNormal2: intPtr(1),
				GoalExtra1: intPtr(0), GoalExtra2: intPtr(0),
				GoalPenalty1: intPtr(3), GoalPenalty2: intPtr(3),
			},
			want: []ViolationCode{ViolationOvertimeNotAllowed, ViolationPenaltyResultDrawn},
		},
		{
			name: "unstarted match with negative and incomplete goals",
			in: ResultInput{
				IsGroupMatch: true,
				StartTime:    startedAt(time.Hour),
				GoalNormal1:  intPtr(-2),
			},
			want: []ViolationCode{
				ViolationMatchNotStarted,
				ViolationGoalNegative,
				ViolationNormalGoalsIncomplete,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateResult(tc.in, validateNow)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidationErrorReportsAllCodes(t *testing.T) {
	err := &ValidationError{Violations: []ViolationCode{
		ViolationMatchNotStarted,
		ViolationGoalNegative,
	}}

	assert.True(t, err.Has(ViolationMatchNotStarted))
	assert.True(t, err.Has(ViolationGoalNegative))
	assert.False(t, err.Has(ViolationMatchNotFound))
	assert.Equal(t, "result validation failed: MATCH_NOT_STARTED, GOAL_VALUE_NEGATIVE", err.Error())
}
