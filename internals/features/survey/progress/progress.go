// Package progress computes the wizard progress bar percentage. Calculate is
// pure: same inputs always give the same output, so callers may memoize.
package progress

import (
	"errors"
	"fmt"
	"log"
	"strconv"
)

const (
	DefaultTotalSteps = 6
	MinSteps          = 2
	MaxProgress       = 100
	MinProgress       = 0
)

var ErrTooFewSteps = errors.New("total steps must be at least 2")

// ParseStep coerces a string step value ("3", "3.5") to an integer.
func ParseStep(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("step is not numeric: %q", raw)
	}
	return int(f), nil
}

// Calculate returns the progress percentage for a 1-based step.
// currentStep <= 0 is corrected to 0%, currentStep > totalSteps is capped at
// 100%; neither is an error. A totalSteps below MinSteps is: a 1-step wizard
// has no progress denominator.
func Calculate(currentStep, totalSteps int) (int, error) {
	if totalSteps < MinSteps {
		log.Printf("[ERROR] invalid total_steps=%d (minimum %d)", totalSteps, MinSteps)
		return MinProgress, ErrTooFewSteps
	}
	if currentStep <= 0 {
		log.Printf("[WARN] invalid current_step=%d: returning %d%%", currentStep, MinProgress)
		return MinProgress, nil
	}
	if currentStep > totalSteps {
		log.Printf("[INFO] current_step=%d exceeds total_steps=%d, capping at %d%%", currentStep, totalSteps, MaxProgress)
		return MaxProgress, nil
	}

	// Integer division on purpose: no fractional-percent drift.
	pct := ((currentStep - 1) * 100) / (totalSteps - 1)
	if pct < MinProgress {
		pct = MinProgress
	}
	if pct > MaxProgress {
		pct = MaxProgress
	}
	return pct, nil
}

// Context is the standardized progress payload sent to the client with every
// wizard step.
type Context struct {
	CurrentStep        int    `json:"current_step"`
	ProgressWidth      string `json:"progress_width"`
	ProgressPercentage int    `json:"progress_percentage"`
	TotalSteps         int    `json:"total_steps"`
}

// BuildContext clamps currentStep into [1, totalSteps] and never fails: any
// internal problem degrades to the safe fallback.
func BuildContext(currentStep, totalSteps int) Context {
	if totalSteps < MinSteps {
		return Fallback(totalSteps)
	}
	if currentStep < 1 || currentStep > totalSteps {
		adjusted := currentStep
		if adjusted < 1 {
			adjusted = 1
		}
		if adjusted > totalSteps {
			adjusted = totalSteps
		}
		log.Printf("[WARN] adjusted current_step from %d to %d (valid range 1-%d)", currentStep, adjusted, totalSteps)
		currentStep = adjusted
	}

	pct, err := Calculate(currentStep, totalSteps)
	if err != nil {
		return Fallback(totalSteps)
	}
	return Context{
		CurrentStep:        currentStep,
		ProgressWidth:      fmt.Sprintf("%d%%", pct),
		ProgressPercentage: pct,
		TotalSteps:         totalSteps,
	}
}

// Fallback is the safe context used when inputs are unusable.
func Fallback(totalSteps int) Context {
	if totalSteps < MinSteps {
		log.Printf("[ERROR] invalid total_steps=%d in fallback, using %d", totalSteps, DefaultTotalSteps)
		totalSteps = DefaultTotalSteps
	}
	return Context{
		CurrentStep:        1,
		ProgressWidth:      fmt.Sprintf("%d%%", MinProgress),
		ProgressPercentage: MinProgress,
		TotalSteps:         totalSteps,
	}
}

// StepMapping precomputes step -> percentage for a whole wizard.
func StepMapping(totalSteps int) map[int]int {
	if totalSteps < MinSteps {
		return map[int]int{1: MinProgress}
	}
	out := make(map[int]int, totalSteps)
	for step := 1; step <= totalSteps; step++ {
		pct, _ := Calculate(step, totalSteps)
		out[step] = pct
	}
	return out
}
