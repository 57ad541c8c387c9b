//go:build headless

// scope_view_headless.go - scope stub for headless builds

package sidplayfp

import "fmt"

type ScopeView struct {
	player *SIDPlayer
	title  string
}

func NewScopeView(player *SIDPlayer, title string) *ScopeView {
	return &ScopeView{player: player, title: title}
}

func (sv *ScopeView) Run() error {
	return fmt.Errorf("scope view unavailable in headless build")
}
