package view

import (
	"github.com/soocke/polygon-annotator-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the engine state and a busy indicator.
type StatusBar interface {
	SetStatus(text string)
	SetBusy(busy bool)
}

type statusBar struct {
	statusLbl *TLabelWidget
	busyLbl   *LabelWidget
}

// NewStatusBar creates the status and busy labels at (row, startCol) and
// (row, startCol+1). If parent is nil, labels are positioned relative to the App root.
func NewStatusBar(parent *FrameWidget, row, startCol int) StatusBar {
	s := &statusBar{statusLbl: TLabel(Anchor("w"), Style(theme.StyleStatusLabel)), busyLbl: Label(Width(12))}
	if parent != nil {
		Grid(s.statusLbl, In(parent), Row(row), Column(startCol), Sticky("we"), Padx("0.2m"))
		Grid(s.busyLbl, In(parent), Row(row), Column(startCol+1), Sticky("e"), Padx("0.2m"))
	} else {
		Grid(s.statusLbl, Row(row), Column(startCol), Sticky("we"), Padx("0.2m"))
		Grid(s.busyLbl, Row(row), Column(startCol+1), Sticky("e"), Padx("0.2m"))
	}
	s.statusLbl.Configure(Txt("State: empty"))
	return s
}

func (s *statusBar) SetStatus(text string) {
	if s == nil || s.statusLbl == nil {
		return
	}
	s.statusLbl.Configure(Txt(text))
}

func (s *statusBar) SetBusy(busy bool) {
	if s == nil || s.busyLbl == nil {
		return
	}
	text := ""
	if busy {
		text = "Loading..."
	}
	s.busyLbl.Configure(Txt(text))
}
