// Package assessment maps self-assessment answers to a wellbeing category.
//
// The questionnaire has twelve questions, each answered on a 1..4 scale
// where 4 is the healthiest answer. The average of all twelve answers picks
// one of four bands:
//
//	avg >= 3.5  Healthy
//	avg >= 3.0  Mild Concerns
//	avg >= 2.5  Moderate Concerns
//	otherwise   Severe Concerns
//
// Nothing here touches storage; the same mapping runs in the browser.
package assessment

import (
	"errors"
	"fmt"
)

const (
	Questions = 12
	MinAnswer = 1
	MaxAnswer = 4
)

var (
	// ErrIncomplete means at least one question is unanswered. No category
	// is produced; the form shows a warning instead.
	ErrIncomplete    = errors.New("please answer all questions")
	ErrInvalidAnswer = errors.New("answer out of range")
)

const (
	Healthy  = "Healthy"
	Mild     = "Mild Concerns"
	Moderate = "Moderate Concerns"
	Severe   = "Severe Concerns"
)

type Result struct {
	Average  float64 `json:"average"`
	Category string  `json:"category"`
	Advice   string  `json:"advice"`
	Color    string  `json:"color"`
}

type band struct {
	min      float64
	category string
	advice   string
	color    string
}

// bands is ordered from the highest threshold down; the first match wins.
var bands = []band{
	{3.5, Healthy, "You seem to be doing well. Keep up the habits that support your wellbeing.", "#2e7d32"},
	{3.0, Mild, "Some areas may need attention. Consider talking to someone you trust and taking time for self-care.", "#f9a825"},
	{2.5, Moderate, "You may be going through a difficult time. Reaching out to a counsellor or health professional could help.", "#ef6c00"},
	{0, Severe, "Please consider seeking professional support soon. If you are in crisis, contact your local emergency services.", "#c62828"},
}

// Categorize maps an average answer value to its band.
func Categorize(avg float64) Result {
	for _, b := range bands {
		if avg >= b.min {
			return Result{Average: avg, Category: b.category, Advice: b.advice, Color: b.color}
		}
	}
	last := bands[len(bands)-1]
	return Result{Average: avg, Category: last.category, Advice: last.advice, Color: last.color}
}

// Evaluate averages the answers and categorizes the result. A zero answer
// stands for an unanswered question.
func Evaluate(answers []int) (Result, error) {
	if len(answers) > Questions {
		return Result{}, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidAnswer, Questions, len(answers))
	}
	if len(answers) < Questions {
		return Result{}, ErrIncomplete
	}

	sum := 0
	for i, a := range answers {
		if a == 0 {
			return Result{}, ErrIncomplete
		}
		if a < MinAnswer || a > MaxAnswer {
			return Result{}, fmt.Errorf("%w: question %d has %d", ErrInvalidAnswer, i+1, a)
		}
		sum += a
	}

	return Categorize(float64(sum) / float64(Questions)), nil
}
