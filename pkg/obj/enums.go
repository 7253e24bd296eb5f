package obj

// enumEntry ties a directive token to its display name.
type enumEntry struct {
	attr string
	ui   string
}

func lookupAttr(table []enumEntry, attr string) (int, bool) {
	for i, e := range table {
		if e.attr == attr {
			return i, true
		}
	}
	return 0, false
}

func lookupUI(table []enumEntry, ui string) (int, bool) {
	for i, e := range table {
		if e.ui == ui {
			return i, true
		}
	}
	return 0, false
}

// Cursor is the mouse cursor shown over a manipulator.
type Cursor uint8

const (
	CursorNone Cursor = iota
	CursorFourArrows
	CursorHand
	CursorButton
	CursorRotateSmall
	CursorRotateSmallLeft
	CursorRotateSmallRight
	CursorRotateMedium
	CursorRotateMediumLeft
	CursorRotateMediumRight
	CursorRotateLarge
	CursorRotateLargeLeft
	CursorRotateLargeRight
	CursorUpDown
	CursorDown
	CursorUp
	CursorLeftRight
	CursorRight
	CursorLeft
	CursorArrow
)

var cursorTable = []enumEntry{
	CursorNone:              {"none", "none"},
	CursorFourArrows:        {"four_arrows", "Four arrows"},
	CursorHand:              {"hand", "Hand"},
	CursorButton:            {"button", "Button"},
	CursorRotateSmall:       {"rotate_small", "Rotate small"},
	CursorRotateSmallLeft:   {"rotate_small_left", "Rotate small left"},
	CursorRotateSmallRight:  {"rotate_small_right", "Rotate small right"},
	CursorRotateMedium:      {"rotate_medium", "Rotate medium"},
	CursorRotateMediumLeft:  {"rotate_medium_left", "Rotate medium left"},
	CursorRotateMediumRight: {"rotate_medium_right", "Rotate medium right"},
	CursorRotateLarge:       {"rotate_large", "Rotate large"},
	CursorRotateLargeLeft:   {"rotate_large_left", "Rotate large left"},
	CursorRotateLargeRight:  {"rotate_large_right", "Rotate large right"},
	CursorUpDown:            {"up_down", "Up-Down"},
	CursorDown:              {"down", "Down"},
	CursorUp:                {"up", "Up"},
	CursorLeftRight:         {"left_right", "Left-Right"},
	CursorRight:             {"right", "Right"},
	CursorLeft:              {"left", "Left"},
	CursorArrow:             {"arrow", "Arrow"},
}

// String returns the directive token of the cursor.
func (c Cursor) String() string {
	if int(c) >= len(cursorTable) {
		return cursorTable[CursorNone].attr
	}
	return cursorTable[c].attr
}

// UIName returns the human readable cursor name.
func (c Cursor) UIName() string {
	if int(c) >= len(cursorTable) {
		return cursorTable[CursorNone].ui
	}
	return cursorTable[c].ui
}

// ParseCursor maps a directive token to a cursor.
func ParseCursor(attr string) (Cursor, bool) {
	i, ok := lookupAttr(cursorTable, attr)
	return Cursor(i), ok
}

// CursorFromUIName maps a display name to a cursor.
func CursorFromUIName(ui string) (Cursor, bool) {
	i, ok := lookupUI(cursorTable, ui)
	return Cursor(i), ok
}

// Cursors lists every cursor in table order.
func Cursors() []Cursor {
	out := make([]Cursor, len(cursorTable))
	for i := range cursorTable {
		out[i] = Cursor(i)
	}
	return out
}

// Surface is the physical surface of hard geometry.
type Surface uint8

const (
	SurfaceNone Surface = iota
	SurfaceWater
	SurfaceConcrete
	SurfaceAsphalt
	SurfaceGrass
	SurfaceDirt
	SurfaceGravel
	SurfaceLakebed
	SurfaceSnow
	SurfaceShoulder
	SurfaceBlastpad
)

var surfaceTable = []enumEntry{
	SurfaceNone:     {"none", "none"},
	SurfaceWater:    {"water", "Water"},
	SurfaceConcrete: {"concrete", "Concrete"},
	SurfaceAsphalt:  {"asphalt", "Asphalt"},
	SurfaceGrass:    {"grass", "Grass"},
	SurfaceDirt:     {"dirt", "Dirt"},
	SurfaceGravel:   {"gravel", "Gravel"},
	SurfaceLakebed:  {"lakebed", "Lakebed"},
	SurfaceSnow:     {"snow", "Snow"},
	SurfaceShoulder: {"shoulder", "Shoulder"},
	SurfaceBlastpad: {"blastpad", "Blastpad"},
}

func (s Surface) String() string {
	if int(s) >= len(surfaceTable) {
		return surfaceTable[SurfaceNone].attr
	}
	return surfaceTable[s].attr
}

// UIName returns the human readable surface name.
func (s Surface) UIName() string {
	if int(s) >= len(surfaceTable) {
		return surfaceTable[SurfaceNone].ui
	}
	return surfaceTable[s].ui
}

// ParseSurface maps a directive token to a surface.
func ParseSurface(attr string) (Surface, bool) {
	i, ok := lookupAttr(surfaceTable, attr)
	return Surface(i), ok
}

// Layer is a draw layer group.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerTerrain
	LayerBeaches
	LayerShoulders
	LayerTaxiways
	LayerRunways
	LayerMarkings
	LayerAirports
	LayerRoads
	LayerObjects
	LayerLightObjects
	LayerCars
)

var layerTable = []enumEntry{
	LayerNone:         {"none", "none"},
	LayerTerrain:      {"terrain", "Terrain"},
	LayerBeaches:      {"beaches", "Beaches"},
	LayerShoulders:    {"shoulders", "Shoulders"},
	LayerTaxiways:     {"taxiways", "Taxiways"},
	LayerRunways:      {"runways", "Runways"},
	LayerMarkings:     {"markings", "Markings"},
	LayerAirports:     {"airports", "Airports"},
	LayerRoads:        {"roads", "Roads"},
	LayerObjects:      {"objects", "Objects"},
	LayerLightObjects: {"light_objects", "Light objects"},
	LayerCars:         {"cars", "Cars"},
}

func (l Layer) String() string {
	if int(l) >= len(layerTable) {
		return layerTable[LayerNone].attr
	}
	return layerTable[l].attr
}

// UIName returns the human readable layer name.
func (l Layer) UIName() string {
	if int(l) >= len(layerTable) {
		return layerTable[LayerNone].ui
	}
	return layerTable[l].ui
}

// ParseLayer maps a directive token to a layer.
func ParseLayer(attr string) (Layer, bool) {
	i, ok := lookupAttr(layerTable, attr)
	return Layer(i), ok
}
