package ui

import (
	"bytes"
	"image/color"
	"log"
	"net"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ConnectUI asks for a table server address. Practice starts a local table
// with no server.
type ConnectUI struct {
	UI *ebitenui.UI

	OnConnect  func(address string)
	OnPractice func()

	defaultHost string
	defaultPort string

	hostInput   *widget.TextInput
	portInput   *widget.TextInput
	statusLabel *widget.Label
	connectBtn  *widget.Button

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewConnectUI builds the screen with address prefilled as the placeholder.
func NewConnectUI(address string, onConnect func(address string), onPractice func()) *ConnectUI {
	ui := &ConnectUI{
		OnConnect:  onConnect,
		OnPractice: onPractice,
	}
	ui.defaultHost, ui.defaultPort = splitAddress(address)
	ui.loadFonts()
	ui.buildUI()
	return ui
}

func splitAddress(address string) (string, string) {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" || port == "" {
		return "localhost", "7373"
	}
	return host, port
}

func (ui *ConnectUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 28}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 14}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 11}
}

func (ui *ConnectUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{16, 18, 24, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(16)),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	contentContainer.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("AIR HOCKEY", &ui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 255, 255},
		}),
	))

	contentContainer.AddChild(ui.buildAddressPanel())

	ui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{250, 190, 40, 255},
		}),
	)
	contentContainer.AddChild(ui.statusLabel)

	contentContainer.AddChild(ui.buildButtons())

	rootContainer.AddChild(contentContainer)
	ui.UI = &ebitenui.UI{Container: rootContainer}
}

func (ui *ConnectUI) newInput(minWidth int, placeholder string) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(minWidth, 24)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{50, 55, 70, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&ui.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
}

func (ui *ConnectUI) labelledRow(label string, input *widget.TextInput) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(label, &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))
	row.AddChild(input)
	return row
}

func (ui *ConnectUI) buildAddressPanel() *widget.Container {
	padding := widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{30, 34, 46, 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&padding),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	ui.hostInput = ui.newInput(180, ui.defaultHost)
	panel.AddChild(ui.labelledRow("Server:", ui.hostInput))
	ui.portInput = ui.newInput(80, ui.defaultPort)
	panel.AddChild(ui.labelledRow("Port:    ", ui.portInput))

	ui.connectBtn = widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(140, 28)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(color.RGBA{40, 100, 40, 255}),
			Hover:    image.NewNineSliceColor(color.RGBA{60, 140, 60, 255}),
			Pressed:  image.NewNineSliceColor(color.RGBA{30, 80, 30, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 50, 40, 255}),
		}),
		widget.ButtonOpts.Text("Join table", &ui.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{200, 255, 200, 255},
			Pressed:  color.RGBA{150, 200, 150, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if ui.OnConnect != nil {
				ui.OnConnect(ui.Address())
			}
		}),
	)
	panel.AddChild(ui.connectBtn)

	return panel
}

func (ui *ConnectUI) buildButtons() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
	)

	practiceButton := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(100, 28)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
			Hover:   image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
			Pressed: image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
		}),
		widget.ButtonOpts.Text("Practice", &ui.normalFace, &widget.ButtonTextColor{
			Idle:    color.RGBA{255, 255, 255, 255},
			Hover:   color.RGBA{200, 220, 255, 255},
			Pressed: color.RGBA{150, 170, 200, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if ui.OnPractice != nil {
				ui.OnPractice()
			}
		}),
	)
	container.AddChild(practiceButton)

	return container
}

// Address joins the typed host and port, falling back to the defaults.
func (ui *ConnectUI) Address() string {
	host := ui.hostInput.GetText()
	if host == "" {
		host = ui.defaultHost
	}
	port := ui.portInput.GetText()
	if port == "" {
		port = ui.defaultPort
	}
	return net.JoinHostPort(host, port)
}

func (ui *ConnectUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

func (ui *ConnectUI) SetConnecting(connecting bool) {
	if ui.connectBtn != nil {
		ui.connectBtn.GetWidget().Disabled = connecting
	}
}

func (ui *ConnectUI) Update() {
	ui.UI.Update()
}
