package progression

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidParticipantRule flags a malformed bracket-slot expression.
var ErrInvalidParticipantRule = errors.New("invalid participant rule")

// SlotRef is one side of a participant rule: either a group position
// ("A1", "ACD3") or a reference to another match's outcome ("W37", "L49").
type SlotRef struct {
	Group  *GroupPosition
	MatchN int
	Winner bool
}

// IsGroupRef reports whether the reference addresses a group position.
func (r SlotRef) IsGroupRef() bool {
	return r.Group != nil
}

func (r SlotRef) String() string {
	if r.Group != nil {
		return fmt.Sprintf("%s%d", r.Group.Label, r.Group.Position)
	}
	marker := "L"
	if r.Winner {
		marker = "W"
	}
	return fmt.Sprintf("%s%d", marker, r.MatchN)
}

// RulePair is the ordered pair of slot references for a match's two teams.
type RulePair struct {
	Slot1 SlotRef
	Slot2 SlotRef
}

func (p RulePair) String() string {
	return p.Slot1.String() + "-" + p.Slot2.String()
}

// ParseRule parses a full participant rule, e.g. "A1-B2", "ACD3-BEF3",
// "W37-L49". No team lookup happens here; the output only describes how the
// two slots should eventually be filled.
func ParseRule(rule string) (*RulePair, error) {
	parts := strings.Split(rule, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q must contain exactly two slot references", ErrInvalidParticipantRule, rule)
	}
	slot1, err := parseSlotRef(parts[0])
	if err != nil {
		return nil, err
	}
	slot2, err := parseSlotRef(parts[1])
	if err != nil {
		return nil, err
	}
	return &RulePair{Slot1: slot1, Slot2: slot2}, nil
}

// parseSlotRef parses one slot reference. A leading W or L followed by
// digits only is a match-outcome reference; otherwise the token must be
// letters followed by digits and names a group position.
func parseSlotRef(token string) (SlotRef, error) {
	if token == "" {
		return SlotRef{}, fmt.Errorf("%w: empty slot reference", ErrInvalidParticipantRule)
	}

	if token[0] == 'W' || token[0] == 'L' {
		digits := token[1:]
		if digits != "" && allDigits(digits) {
			matchN, err := strconv.Atoi(digits)
			if err != nil || matchN < 1 {
				return SlotRef{}, fmt.Errorf("%w: bad match number in %q", ErrInvalidParticipantRule, token)
			}
			return SlotRef{MatchN: matchN, Winner: token[0] == 'W'}, nil
		}
		if digits == "" {
			return SlotRef{}, fmt.Errorf("%w: %q has a winner/loser marker without a match number", ErrInvalidParticipantRule, token)
		}
	}

	split := 0
	for split < len(token) && unicode.IsUpper(rune(token[split])) {
		split++
	}
	label, digits := token[:split], token[split:]
	if label == "" || digits == "" || !allDigits(digits) {
		return SlotRef{}, fmt.Errorf("%w: %q is neither a group position nor a match reference", ErrInvalidParticipantRule, token)
	}
	position, err := strconv.Atoi(digits)
	if err != nil || position < 1 {
		return SlotRef{}, fmt.Errorf("%w: bad position in %q", ErrInvalidParticipantRule, token)
	}
	return SlotRef{Group: &GroupPosition{Label: label, Position: position}}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
