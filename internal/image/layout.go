package imagepkg

import (
	"image/color"

	"github.com/youruser/comunicado/internal/announcement"
)

// Canvas geometry and encoding.
const (
	CanvasWidth  = 1542
	CanvasHeight = 1600

	// Margin is the total horizontal space kept free around fitted text.
	Margin      = 100
	MinFontSize = 30
	FontStep    = 2
	JPEGQuality = 90
)

var (
	Gold       = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	White      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Background = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
)

// Fixed texts printed on every announcement.
const (
	TitleText   = "COMUNICADO"
	FooterLine1 = "COMANDO MUNDIAL"
	FooterLine2 = "COMUNICADO INTERNO"
	FooterLine3 = "PROIBIDA A DIVULGAÇÃO EM QUALQUER REDE SOCIAL"
)

// Weight selects the bold or regular font file.
type Weight int

const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "regular"
}

// FieldSpec places one line of text on the canvas.
// Y is the top of the text box. Static fields carry their own text and are
// drawn at Size without fitting; the rest take their value from the request
// field called Name and shrink from Size toward MinSize until they fit.
type FieldSpec struct {
	Name    string
	Y       int
	Size    int
	MinSize int
	Weight  Weight
	Color   color.NRGBA
	Static  string
}

// Fitted reports whether the field goes through the font-fit search.
func (s FieldSpec) Fitted() bool { return s.Static == "" }

// Text returns what the field prints for req.
func (s FieldSpec) Text(req announcement.Request) string {
	if s.Static != "" {
		return s.Static
	}
	for _, f := range req.Fields() {
		if f.Name == s.Name {
			return f.Value
		}
	}
	return ""
}

// Layout lists every line of the announcement in drawing order.
var Layout = []FieldSpec{
	{Name: "title", Y: 50, Size: 120, Weight: Bold, Color: Gold, Static: TitleText},
	{Name: "source", Y: 200, Size: 90, MinSize: MinFontSize, Weight: Bold, Color: White},
	{Name: "event_type", Y: 350, Size: 100, MinSize: MinFontSize, Weight: Bold, Color: Gold},
	{Name: "subject_label", Y: 550, Size: 70, MinSize: MinFontSize, Weight: Regular, Color: White},
	{Name: "outcome", Y: 700, Size: 90, MinSize: MinFontSize, Weight: Bold, Color: Gold},
	{Name: "location", Y: 850, Size: 80, MinSize: MinFontSize, Weight: Bold, Color: Gold},
	{Name: "tier", Y: 1000, Size: 80, MinSize: MinFontSize, Weight: Bold, Color: Gold},
	{Name: "date", Y: 1150, Size: 70, MinSize: MinFontSize, Weight: Regular, Color: White},
	{Name: "footer1", Y: 1300, Size: 50, Weight: Regular, Color: White, Static: FooterLine1},
	{Name: "footer2", Y: 1370, Size: 50, Weight: Regular, Color: White, Static: FooterLine2},
	{Name: "footer3", Y: 1440, Size: 50, Weight: Regular, Color: White, Static: FooterLine3},
}
