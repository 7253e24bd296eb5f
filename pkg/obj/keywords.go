package obj

// Header and geometry directives.
const (
	HeaderApple   = "A"
	HeaderIBM     = "I"
	HeaderVersion = "800"
	HeaderFormat  = "OBJ"

	KeyPointCounts = "POINT_COUNTS"
	KeyVT          = "VT"
	KeyIDX         = "IDX"
	KeyIDX10       = "IDX10"
	KeyTris        = "TRIS"
	KeyLOD         = "ATTR_LOD"
	KeyVLight      = "VLIGHT"
	KeyVLine       = "VLINE"
)

// Light and smoke directives.
const (
	KeyLights           = "LIGHTS"
	KeyLightNamed       = "LIGHT_NAMED"
	KeyLightParam       = "LIGHT_PARAM"
	KeyLightCustom      = "LIGHT_CUSTOM"
	KeyLightSpillCustom = "LIGHT_SPILL_CUSTOM"
	KeySmokeBlack       = "smoke_black"
	KeySmokeWhite       = "smoke_white"
)

// Global (file scoped) directives.
const (
	KeyTexture           = "TEXTURE"
	KeyTextureLit        = "TEXTURE_LIT"
	KeyTextureNormal     = "TEXTURE_NORMAL"
	KeyRequireWet        = "REQUIRE_WET"
	KeyRequireDry        = "REQUIRE_DRY"
	KeyDebug             = "DEBUG"
	KeyGlobalTint        = "GLOBAL_tint"
	KeyGlobalNoBlend     = "GLOBAL_no_blend"
	KeyGlobalShadowBlend = "GLOBAL_shadow_blend"
	KeyGlobalSpecular    = "GLOBAL_specular"
	KeyTilted            = "TILTED"
	KeyGlobalNoShadow    = "GLOBAL_no_shadow"
	KeyGlobalCockpitLit  = "GLOBAL_cockpit_lit"
	KeyBlendGlass        = "BLEND_GLASS"
	KeyNormalMetalness   = "NORMAL_METALNESS"
	KeyLODDraped         = "ATTR_LOD_draped"
	KeyLayerGroup        = "ATTR_layer_group"
	KeyLayerGroupDraped  = "ATTR_layer_group_draped"
	KeySlopeLimit        = "SLOPE_LIMIT"
	KeyCockpitRegionDef  = "COCKPIT_REGION"
	KeySlungLoadWeight   = "slung_load_weight"
)

// Per face-group attribute directives.
const (
	KeyHard            = "ATTR_hard"
	KeyHardDeck        = "ATTR_hard_deck"
	KeyNoHard          = "ATTR_no_hard"
	KeyBlend           = "ATTR_blend"
	KeyNoBlend         = "ATTR_no_blend"
	KeyShadowBlend     = "ATTR_shadow_blend"
	KeyShadow          = "ATTR_shadow"
	KeyNoShadow        = "ATTR_no_shadow"
	KeyDraped          = "ATTR_draped"
	KeyNoDraped        = "ATTR_no_draped"
	KeyDrawEnable      = "ATTR_draw_enable"
	KeyDrawDisable     = "ATTR_draw_disable"
	KeySolidCamera     = "ATTR_solid_camera"
	KeyNoSolidCamera   = "ATTR_no_solid_camera"
	KeyCockpit         = "ATTR_cockpit"
	KeyCockpitRegion   = "ATTR_cockpit_region"
	KeyCockpitDevice   = "ATTR_cockpit_device"
	KeyNoCockpit       = "ATTR_no_cockpit"
	KeyPolyOffset      = "ATTR_poly_os"
	KeyShinyRat        = "ATTR_shiny_rat"
	KeyLightLevel      = "ATTR_light_level"
	KeyLightLevelReset = "ATTR_light_level_reset"
	KeyReset           = "ATTR_reset"
)

// Deprecated attributes. They are recognised on read and never written.
var DeprecatedKeys = []string{
	"ATTR_ambient_rgb",
	"ATTR_specular_rgb",
	"ATTR_emission_rgb",
	"ATTR_shade_flat",
	"ATTR_shade_smooth",
	"ATTR_no_depth",
	"ATTR_depth",
	"ATTR_no_cull",
	"ATTR_cull",
}

// Manipulator sub-directives.
const (
	KeyManipWheel      = "ATTR_manip_wheel"
	KeyAxisDetented    = "ATTR_axis_detented"
	KeyAxisDetentRange = "ATTR_axis_detent_range"
	KeyManipKeyFrame   = "ATTR_manip_keyframe"
)

// Animation directives.
const (
	KeyAnimBegin        = "ANIM_begin"
	KeyAnimEnd          = "ANIM_end"
	KeyAnimTrans        = "ANIM_trans"
	KeyAnimRotate       = "ANIM_rotate"
	KeyAnimHide         = "ANIM_hide"
	KeyAnimShow         = "ANIM_show"
	KeyAnimTransBegin   = "ANIM_trans_begin"
	KeyAnimTransKey     = "ANIM_trans_key"
	KeyAnimTransEnd     = "ANIM_trans_end"
	KeyAnimRotateBegin  = "ANIM_rotate_begin"
	KeyAnimRotateKey    = "ANIM_rotate_key"
	KeyAnimRotateEnd    = "ANIM_rotate_end"
	KeyAnimKeyframeLoop = "ANIM_keyframe_loop"
)

// NoneRef is written in place of an empty dataref or command.
const NoneRef = "none"
