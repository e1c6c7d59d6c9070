package entity

import (
	"time"

	"github.com/google/uuid"
)

// ElementID is the opaque reference a driver hands out for a DOM node.
type ElementID string

type Condition string

const (
	ConditionPresent    Condition = "present"
	ConditionVisible    Condition = "visible"
	ConditionClickable  Condition = "clickable"
	ConditionInvisible  Condition = "invisible"
	ConditionStale      Condition = "stale"
	ConditionAnyVisible Condition = "any visible"
	ConditionAllVisible Condition = "all visible"
)

// Key names understood by the driver's keyboard.
const (
	KeyEnter     = "Enter"
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
	KeyPageUp    = "PageUp"
	KeyPageDown  = "PageDown"
	KeyControl   = "Control"
	KeyBackspace = "Backspace"
)

type ClickOptions struct {
	Modifiers []string
	Count     int
}

type ScenarioStatus string

const (
	ScenarioStatusPassed  ScenarioStatus = "passed"
	ScenarioStatusFailed  ScenarioStatus = "failed"
	ScenarioStatusSkipped ScenarioStatus = "skipped"
)

type ScenarioResult struct {
	ID          uuid.UUID
	Name        string
	Status      ScenarioStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Steps       []StepResult
	Error       string
}

type StepResult struct {
	ID         uuid.UUID
	Keyword    string
	Text       string
	Status     ScenarioStatus
	Duration   time.Duration
	Error      string
	Screenshot string
}
