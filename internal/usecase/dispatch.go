package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
)

// DispatchMode selects which contacts a dispatch targets.
type DispatchMode string

const (
	DispatchModeAll    DispatchMode = "all"
	DispatchModeStale  DispatchMode = "stale"
	DispatchModeManual DispatchMode = "manual"
)

// ParseDispatchMode accepts the canonical modes plus the "no-schedule" and
// "selected" aliases.
func ParseDispatchMode(s string) (DispatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DispatchModeAll):
		return DispatchModeAll, nil
	case string(DispatchModeStale), "no-schedule":
		return DispatchModeStale, nil
	case string(DispatchModeManual), "selected":
		return DispatchModeManual, nil
	default:
		return "", fmt.Errorf("%w: unknown dispatch mode %q", apperrors.ErrBadRequest, s)
	}
}

// SubsetSizes reports how many contacts each dispatch mode would target.
type SubsetSizes struct {
	All      int `json:"all"`
	Stale    int `json:"stale"`
	Selected int `json:"selected"`
}

// DispatchPublisher emits an audit event for every accepted dispatch.
type DispatchPublisher interface {
	PublishDispatch(ctx context.Context, event model.DispatchEvent) error
}

// ResolveTargets returns the contacts mode denotes, in roster order.
func ResolveTargets(mode DispatchMode, contacts []model.Contact, selection *SelectionSet, classifier RecencyClassifier, now time.Time) []model.Contact {
	switch mode {
	case DispatchModeAll:
		out := make([]model.Contact, len(contacts))
		copy(out, contacts)
		return out
	case DispatchModeStale:
		return classifier.Stale(contacts, now)
	case DispatchModeManual:
		if selection == nil {
			return []model.Contact{}
		}
		return selection.Filter(contacts)
	default:
		return []model.Contact{}
	}
}

// Sizes computes the subset sizes without materialising any subset.
func Sizes(contacts []model.Contact, selection *SelectionSet, classifier RecencyClassifier, now time.Time) SubsetSizes {
	sizes := SubsetSizes{
		All:   len(contacts),
		Stale: classifier.CountStale(contacts, now),
	}
	if selection != nil {
		sizes.Selected = selection.CountIn(contacts)
	}
	return sizes
}

// ValidateDispatch checks the send preconditions. The message is checked
// first, so a blank message with no targets reports ErrEmptyMessage.
func ValidateDispatch(message string, targets []model.Contact) error {
	if strings.TrimSpace(message) == "" {
		return apperrors.ErrEmptyMessage
	}
	if len(targets) == 0 {
		return apperrors.ErrEmptyTargets
	}
	return nil
}
