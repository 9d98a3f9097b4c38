package domain

// DuplicateGroup declares a set of assets to be replaced by a master.
type DuplicateGroup struct {
	Master     AssetID
	Duplicates []AssetID
}

// RewriteOp is a single planned slot rewrite.
type RewriteOp struct {
	Site ReferenceSite
	From AssetID
	To   AssetID
}

// RewritePlan is the ordered set of rewrites for one run.
// It is consumed once by the executor and then discarded.
type RewritePlan struct {
	Ops []RewriteOp
}

// Len returns the number of operations.
func (p *RewritePlan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Ops)
}

// IsEmpty reports whether the plan has nothing to do.
func (p *RewritePlan) IsEmpty() bool {
	return p.Len() == 0
}
