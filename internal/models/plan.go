package models

import "time"

// Plan describes the assets a destructive action is about to touch
type Plan struct {
	Action    string    `json:"action"`     // delete, restore, empty-trash, delete-duplicates
	Criteria  Criteria  `json:"criteria"`   // How the assets were selected
	Assets    []Asset   `json:"assets"`     // Affected assets
	TotalSize int64     `json:"total_size"` // Bytes affected
	CreatedAt time.Time `json:"created_at"`
}

// Criteria records the selection inputs of a plan
type Criteria struct {
	Pattern   string `json:"pattern,omitempty"`    // Filename regex
	OlderThan string `json:"older_than,omitempty"` // Time delta such as 30d
	Keep      string `json:"keep,omitempty"`       // Duplicate keep strategy
	All       bool   `json:"all,omitempty"`        // Whole trash selected
	Force     bool   `json:"force,omitempty"`      // Bypass trash
}

// NewPlan creates a plan for the given assets
func NewPlan(action string, criteria Criteria, assets []Asset) *Plan {
	set := NewAssetSet(assets)
	return &Plan{
		Action:    action,
		Criteria:  criteria,
		Assets:    set.Assets,
		TotalSize: set.TotalSize(),
		CreatedAt: time.Now(),
	}
}

// Count returns the number of affected assets
func (p *Plan) Count() int {
	return len(p.Assets)
}

// IDs returns the affected asset IDs
func (p *Plan) IDs() []string {
	return NewAssetSet(p.Assets).IDs()
}

// Sample returns at most n assets from the start of the plan
func (p *Plan) Sample(n int) []Asset {
	if n >= len(p.Assets) {
		return p.Assets
	}
	return p.Assets[:n]
}
