package obj

// ManipKind identifies a manipulator variant.
type ManipKind uint8

const (
	ManipNone ManipKind = iota
	ManipPanel
	ManipAxisKnob
	ManipAxisSwitchLeftRight
	ManipAxisSwitchUpDown
	ManipCommand
	ManipCommandAxis
	ManipCommandKnob
	ManipCommandKnob2
	ManipCommandSwitchLeftRight
	ManipCommandSwitchLeftRight2
	ManipCommandSwitchUpDown
	ManipCommandSwitchUpDown2
	ManipDelta
	ManipDragAxis
	ManipDragAxisPix
	ManipDragRotate
	ManipDragXY
	ManipNoop
	ManipPush
	ManipRadio
	ManipToggle
	ManipWrap
)

// The panel manipulator has no directive of its own; its token only names it.
var manipTable = []enumEntry{
	ManipNone:                    {"ATTR_manip_none", "None"},
	ManipPanel:                   {"manip_panel_click", "Panel-Click"},
	ManipAxisKnob:                {"ATTR_manip_axis_knob", "Axis knob"},
	ManipAxisSwitchLeftRight:     {"ATTR_manip_axis_switch_left_right", "Axis switch left-right"},
	ManipAxisSwitchUpDown:        {"ATTR_manip_axis_switch_up_down", "Axis switch up-down"},
	ManipCommand:                 {"ATTR_manip_command", "Command"},
	ManipCommandAxis:             {"ATTR_manip_command_axis", "Command axis"},
	ManipCommandKnob:             {"ATTR_manip_command_knob", "Command knob"},
	ManipCommandKnob2:            {"ATTR_manip_command_knob2", "Command knob 2"},
	ManipCommandSwitchLeftRight:  {"ATTR_manip_command_switch_left_right", "Command switch left-right"},
	ManipCommandSwitchLeftRight2: {"ATTR_manip_command_switch_left_right2", "Command switch left-right 2"},
	ManipCommandSwitchUpDown:     {"ATTR_manip_command_switch_up_down", "Command switch up-down"},
	ManipCommandSwitchUpDown2:    {"ATTR_manip_command_switch_up_down2", "Command switch up-down 2"},
	ManipDelta:                   {"ATTR_manip_delta", "Delta"},
	ManipDragAxis:                {"ATTR_manip_drag_axis", "Drag axis"},
	ManipDragAxisPix:             {"ATTR_manip_drag_axis_pix", "Drag axis pix"},
	ManipDragRotate:              {"ATTR_manip_drag_rotate", "Drag rotate"},
	ManipDragXY:                  {"ATTR_manip_drag_xy", "Drag xy"},
	ManipNoop:                    {"ATTR_manip_noop", "Noop"},
	ManipPush:                    {"ATTR_manip_push", "Push"},
	ManipRadio:                   {"ATTR_manip_radio", "Radio"},
	ManipToggle:                  {"ATTR_manip_toggle", "Toggle"},
	ManipWrap:                    {"ATTR_manip_wrap", "Wrap"},
}

// String returns the directive keyword of the kind.
func (k ManipKind) String() string {
	if int(k) >= len(manipTable) {
		return manipTable[ManipNone].attr
	}
	return manipTable[k].attr
}

// UIName returns the human readable kind name.
func (k ManipKind) UIName() string {
	if int(k) >= len(manipTable) {
		return manipTable[ManipNone].ui
	}
	return manipTable[k].ui
}

// ParseManipKind maps a directive keyword to a kind.
func ParseManipKind(attr string) (ManipKind, bool) {
	i, ok := lookupAttr(manipTable, attr)
	return ManipKind(i), ok
}

// ManipKindFromUIName maps a display name to a kind.
func ManipKindFromUIName(ui string) (ManipKind, bool) {
	i, ok := lookupUI(manipTable, ui)
	return ManipKind(i), ok
}

// ManipKinds lists every kind in table order.
func ManipKinds() []ManipKind {
	out := make([]ManipKind, len(manipTable))
	for i := range manipTable {
		out[i] = ManipKind(i)
	}
	return out
}

// HasWheel reports whether manipulators of this kind accept ATTR_manip_wheel.
func (k ManipKind) HasWheel() bool {
	switch k {
	case ManipAxisKnob, ManipAxisSwitchLeftRight, ManipAxisSwitchUpDown,
		ManipCommandKnob, ManipCommandSwitchLeftRight, ManipCommandSwitchUpDown,
		ManipDelta, ManipDragAxis, ManipDragAxisPix, ManipPush, ManipRadio,
		ManipToggle, ManipWrap:
		return true
	}
	return false
}

// HasDetents reports whether manipulators of this kind accept ATTR_axis_detent_range.
func (k ManipKind) HasDetents() bool {
	return k == ManipDragAxis || k == ManipDragRotate
}
