package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/consolidator/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewAssets, "assets"},
		{ViewUsages, "usages"},
		{ViewGroups, "groups"},
		{ViewPlan, "plan"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestPlanLoaded(t *testing.T) {
	group := domain.DuplicateGroup{Master: "m", Duplicates: []domain.AssetID{"d"}}
	plan := &domain.RewritePlan{Ops: []domain.RewriteOp{
		{Site: domain.ReferenceSite{Consumer: "C1", Property: "_MainTex"}, From: "d", To: "m"},
	}}

	msg := PlanLoaded{Group: group, Plan: plan}

	assert.Equal(t, domain.AssetID("m"), msg.Group.Master)
	require.Equal(t, 1, msg.Plan.Len())
	assert.NoError(t, msg.Err)
}

func TestReplaceCompleted_WithError(t *testing.T) {
	err := errors.New("host unavailable")
	msg := ReplaceCompleted{Err: err}

	assert.Nil(t, msg.Report)
	assert.ErrorIs(t, msg.Err, err)
}

func TestMessagesAsInterface(t *testing.T) {
	msgs := []interface{}{
		ViewChanged{View: ViewPlan},
		ErrorOccurred{Err: errors.New("x")},
		Quit{},
		AssetsLoaded{},
		AssetSelected{},
		UsagesLoaded{},
		GroupsLoaded{},
		GroupSelected{},
		PlanLoaded{},
		ReplaceCompleted{},
		DeleteCompleted{},
	}

	for _, m := range msgs {
		assert.NotNil(t, m)
	}
}
