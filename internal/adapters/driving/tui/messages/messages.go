// Package messages holds the tea.Msg types exchanged between the app and
// its views. Load results carry their error instead of a separate message.
package messages

import "github.com/custodia-labs/consolidator/internal/core/domain"

// ViewType names a screen.
type ViewType int

const (
	ViewAssets ViewType = iota
	ViewUsages
	ViewGroups
	ViewPlan
	ViewHelp
)

func (v ViewType) String() string {
	switch v {
	case ViewAssets:
		return "assets"
	case ViewUsages:
		return "usages"
	case ViewGroups:
		return "groups"
	case ViewPlan:
		return "plan"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// AssetsLoaded carries the asset catalog from the service.
type AssetsLoaded struct {
	Assets []domain.Asset
	Err    error
}

// AssetSelected signals an asset was chosen for the usages view.
type AssetSelected struct {
	Asset domain.Asset
}

// UsagesLoaded carries the reference sites of one asset.
type UsagesLoaded struct {
	Asset domain.AssetID
	Sites []domain.ReferenceSite
	Err   error
}

// GroupsLoaded carries suggested duplicate groups and the catalog
// used to name their members.
type GroupsLoaded struct {
	Groups []domain.DuplicateGroup
	Assets []domain.Asset
	Err    error
}

// GroupSelected signals a group was chosen for planning.
type GroupSelected struct {
	Group domain.DuplicateGroup
}

// PlanLoaded carries the rewrite plan for the selected group.
type PlanLoaded struct {
	Group  domain.DuplicateGroup
	Plan   *domain.RewritePlan
	Assets []domain.Asset
	Err    error
}

// ReplaceCompleted signals the selected group's plan was applied.
type ReplaceCompleted struct {
	Report *domain.RewriteReport
	Err    error
}

// DeleteCompleted signals the group's duplicates were deleted.
type DeleteCompleted struct {
	Report *domain.DeletionReport
	Err    error
}
