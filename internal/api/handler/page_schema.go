package handler

import (
	"html/template"

	"github.com/glcplatform/portal/internal/core/ports"
)

// fragmentResponse is the envelope a navigation returns to the shell. The
// shell applies it only when Stale is false and Seq is newer than the last
// fragment it swapped in; anything else is discarded.
type fragmentResponse struct {
	Seq   uint64              `json:"seq"`
	Stale bool                `json:"stale"`
	Page  string              `json:"page"`
	Title string              `json:"title"`
	HTML  string              `json:"html"`
	Menu  []menuEntryResponse `json:"menu"`
}

type menuEntryResponse struct {
	Page   string `json:"page"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// tabResponse is the envelope of an audit tab switch: only the tab content
// region is replaced.
type tabResponse struct {
	Tab  string `json:"tab"`
	HTML string `json:"html"`
}

// overlayResponse carries a modal fragment for the shell's overlay host.
type overlayResponse struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// actionResponse carries the result fragment of a form action; the shell
// swaps it into the content region.
type actionResponse struct {
	HTML string `json:"html"`
}

// shellData feeds the shell document template.
type shellData struct {
	Name        string
	Role        string
	Menu        []ports.MenuEntry
	InitialPage string
	Loading     template.HTML
}

func toFragmentResponse(r ports.RenderedPage) fragmentResponse {
	resp := fragmentResponse{
		Seq:   r.Seq,
		Stale: r.Stale,
		Page:  string(r.Page),
		Title: r.Title,
		HTML:  string(r.HTML),
		Menu:  make([]menuEntryResponse, 0, len(r.Menu)),
	}
	for _, entry := range r.Menu {
		resp.Menu = append(resp.Menu, menuEntryResponse{
			Page:   string(entry.Item.Page),
			Label:  entry.Item.Label,
			Icon:   entry.Item.Icon,
			Active: entry.Active,
		})
	}
	return resp
}
