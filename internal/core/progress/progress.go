// Package progress derives a project's completion percentage from its task statuses.
package progress

import "agency-hub/pkg/constants"

// Calculate returns round-half-up(100 * done / total). ok is false when there is
// nothing to derive from, in which case the stored progress must stay as it is.
func Calculate(done, total int64) (progress int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	return int((200*done + total) / (2 * total)), true
}

// FromStatuses counts terminal statuses and delegates to Calculate
func FromStatuses(statuses []string) (int, bool) {
	var done int64
	for _, s := range statuses {
		if IsTerminal(s) {
			done++
		}
	}
	return Calculate(done, int64(len(statuses)))
}

// IsTerminal reports whether a task status counts toward completion
func IsTerminal(status string) bool {
	return status == constants.TaskStatusTerminal
}
