package view

import (
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/soocke/polygon-annotator-go/config"
	"github.com/soocke/polygon-annotator-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are invoked on user actions. Nil handlers are ignored.
type Handlers struct {
	Pointer         func(x, y int)
	Undo            func()
	Done            func()
	Clear           func()
	LoadSource      func(source string)
	Screenshot      func()
	ScreenRegion    func(area image.Rectangle)
	Import          func(path string)
	Export          func(path string)
	SettingsApplied func(*config.Config)
	Exit            func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Canvas      AnnotationCanvas
	Status      StatusBar
	ConfigPanel ConfigPanel
	Region      RegionOverlay

	// Widgets
	SourceEntry *TextWidget
	undoBtn     *TButtonWidget
	doneBtn     *TButtonWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	ShowCanvas(img image.Image)
	SetBusy(busy bool)
	Notify(title, message string)
	SetStatus(text string)
	SetUndoEnabled(enabled bool)
	SetDoneEnabled(enabled bool)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout: toolbar on row 0, settings on the left,
// the annotation canvas on the right and the status bar at the bottom.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(3), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	addButton := func(text, style string, fn func()) *TButtonWidget {
		b := TButton(Txt(text), Style(style), Command(func() {
			if fn != nil {
				fn()
			}
		}))
		Grid(b, In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
		return b
	}
	addButton("Open Image", theme.StyleToolButton, func() {
		if path := rv.askOpenImage(); path != "" && h.LoadSource != nil {
			h.LoadSource(path)
		}
	})
	addButton("Screenshot", theme.StyleToolButton, h.Screenshot)
	rv.Region = NewRegionOverlay(rv.logger, h.ScreenRegion)
	addButton("Screenshot Region", theme.StyleToolButton, rv.Region.OpenOrFocus)
	rv.undoBtn = addButton("Undo", theme.StyleToolButton, h.Undo)
	rv.doneBtn = addButton("Done", theme.StylePrimaryButton, h.Done)
	addButton("Clear", theme.StyleDangerButton, h.Clear)
	addButton("Import", theme.StyleToolButton, func() {
		if path := rv.askImportFile(); path != "" && h.Import != nil {
			h.Import(path)
		}
	})
	addButton("Export", theme.StylePrimaryButton, func() { rv.export(h.Export) })
	addButton("Exit", theme.StyleToolButton, h.Exit)

	rv.SourceEntry = Text(Height(1), Width(40))
	Grid(rv.SourceEntry, In(bar), Row(1), Column(0), Columnspan(col-1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Grid(TButton(Txt("Load"), Style(theme.StyleToolButton), Command(func() {
		src := strings.TrimSpace(strings.Join(rv.SourceEntry.Get("1.0", END), ""))
		if src != "" && h.LoadSource != nil {
			h.LoadSource(src)
		}
	})), In(bar), Row(1), Column(col-1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.SettingsApplied)
	endRow := rv.ConfigPanel.Build(1)

	rv.Canvas = NewAnnotationCanvas(1, 2, endRow-1, h.Pointer)

	statusFrame := Frame()
	Grid(statusFrame, Row(endRow), Column(0), Columnspan(3), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.Status = NewStatusBar(statusFrame, 0, 0)

	Bind(App, "<Control-z>", Command(func() {
		if h.Undo != nil {
			h.Undo()
		}
	}))
	Bind(App, "<Return>", Command(func() {
		if h.Done != nil {
			h.Done()
		}
	}))
	Bind(App, "<Control-s>", Command(func() { rv.export(h.Export) }))
}

func (rv *RootView) export(fn func(string)) {
	if fn == nil {
		return
	}
	if path := rv.askExportFile(); path != "" {
		fn(path)
	}
}

func (rv *RootView) askOpenImage() string {
	files := GetOpenFile(Title("Open image"), Filetypes([]FileType{
		{TypeName: "Images", Extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}},
		{TypeName: "All files", Extensions: []string{"*"}},
	}))
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

func (rv *RootView) askImportFile() string {
	files := GetOpenFile(Title("Import polygons"), Filetypes([]FileType{
		{TypeName: "JSON", Extensions: []string{".json"}},
	}))
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

func (rv *RootView) askExportFile() string {
	def := "coordinates.json"
	if rv.cfg != nil && rv.cfg.ExportPath != "" {
		def = rv.cfg.ExportPath
	}
	return GetSaveFile(Title("Export polygons"), Initialdir(filepath.Dir(def)), Initialfile(filepath.Base(def)), Defaultextension(".json"))
}

// ShowCanvas displays a rendered frame.
func (rv *RootView) ShowCanvas(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.Show(img)
	}
}

// SetBusy shows the loading indicator and locks settings while an image loads.
func (rv *RootView) SetBusy(busy bool) {
	if rv == nil {
		return
	}
	if rv.Status != nil {
		rv.Status.SetBusy(busy)
	}
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(!busy)
	}
}

// Notify reports a non-fatal failure in a message box.
func (rv *RootView) Notify(title, message string) {
	if rv == nil {
		return
	}
	MessageBox(Title(title), Msg(message), Icon("error"))
}

// SetStatus updates the status bar text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(text)
	}
}

// SetUndoEnabled toggles the Undo button.
func (rv *RootView) SetUndoEnabled(enabled bool) {
	if rv != nil {
		setEnabled(rv.undoBtn, enabled)
	}
}

// SetDoneEnabled toggles the Done button.
func (rv *RootView) SetDoneEnabled(enabled bool) {
	if rv != nil {
		setEnabled(rv.doneBtn, enabled)
	}
}

func setEnabled(b *TButtonWidget, enabled bool) {
	if b == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	b.Configure(State(state))
}
