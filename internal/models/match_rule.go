package models

import (
	"strings"

	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MatchRule proposes an assignment expression for incoming payments whose
// description matches a glob pattern. Rules are tried in priority order
// (lower number first); the first match wins.
type MatchRule struct {
	DefaultModel
	Priority   uint   `json:"priority"`
	Match      string `json:"match"`      // glob pattern matched against the payment description
	Expression string `json:"expression"` // assignment expression to apply
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	r.Expression = strings.TrimSpace(r.Expression)
	return nil
}

// Matches reports whether the rule applies to the given description.
// Matching is case-insensitive since bank feeds are wildly inconsistent
// about casing.
func (r MatchRule) Matches(description string) bool {
	return glob.Glob(strings.ToLower(r.Match), strings.ToLower(description))
}

// MatchRules returns all rules, ordered by priority.
func MatchRules(db *gorm.DB) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.Order("priority ASC, created_at ASC").Find(&rules).Error
	return rules, err
}
