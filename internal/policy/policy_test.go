package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholdsBoundaryInclusive(t *testing.T) {
	th := Thresholds{AutoRemove: 0.9, FlagReview: 0.6}

	assert.True(t, th.ShouldAutoRemove(0.9))
	assert.True(t, th.ShouldAutoRemove(0.95))
	assert.False(t, th.ShouldAutoRemove(0.8999))

	assert.True(t, th.ShouldFlag(0.6))
	assert.True(t, th.ShouldFlag(0.9))
	assert.False(t, th.ShouldFlag(0.5999))
}

func TestRoutePrecedence(t *testing.T) {
	th := Thresholds{AutoRemove: 0.9, FlagReview: 0.6}

	assert.Equal(t, OutcomeNone, th.Route(0))
	assert.Equal(t, OutcomeNone, th.Route(0.59))
	assert.Equal(t, OutcomeFlag, th.Route(0.6))
	assert.Equal(t, OutcomeFlag, th.Route(0.7))
	assert.Equal(t, OutcomeFlag, th.Route(0.89))
	assert.Equal(t, OutcomeAutoRemove, th.Route(0.9))
	assert.Equal(t, OutcomeAutoRemove, th.Route(1))
}

func TestRouteMisorderedThresholds(t *testing.T) {
	// Misconfiguration is tolerated: auto-remove still wins.
	th := Thresholds{AutoRemove: 0.5, FlagReview: 0.8}

	assert.Equal(t, OutcomeAutoRemove, th.Route(0.6))
	assert.Equal(t, OutcomeNone, th.Route(0.4))
}
