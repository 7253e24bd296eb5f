package writer

import (
	"github.com/xplnobj/codec/pkg/obj"
)

// InstancingIssue names an object that keeps the simulator from drawing the
// document instanced.
type InstancingIssue struct {
	Object string
	Reason string
}

// CheckInstancing lists the objects that break instancing, in drawing order.
// An empty result means the document can be instanced.
func CheckInstancing(doc *obj.Document) []InstancingIssue {
	var issues []InstancingIssue
	add := func(name, reason string) {
		issues = append(issues, InstancingIssue{Object: name, Reason: reason})
	}
	for _, lod := range doc.LODs {
		lod.Root.Nodes(func(n obj.Node) {
			switch v := n.(type) {
			case *obj.Transform:
				if v.Animated() {
					add(v.Name, "the transform is animated")
				}
			case *obj.Smoke:
				add(v.Name, "smoke is not allowed")
			case *obj.Mesh:
				for _, reason := range meshInstancing(&v.Attr) {
					add(v.Name, reason)
				}
			}
		})
	}
	return issues
}

func meshInstancing(a *obj.AttrSet) []string {
	var reasons []string
	if a.Manip != nil {
		reasons = append(reasons, "manipulators are not allowed")
	}
	if a.PolyOffset != nil {
		reasons = append(reasons, obj.KeyPolyOffset+" is not allowed")
	}
	if a.Blend != nil {
		reasons = append(reasons, obj.KeyNoBlend+" and "+obj.KeyShadowBlend+" are not allowed")
	}
	if a.Shiny != nil {
		reasons = append(reasons, obj.KeyShinyRat+" is not allowed")
	}
	if a.Cockpit != nil {
		reasons = append(reasons, "cockpit attributes are not allowed")
	}
	if a.NoDraw {
		reasons = append(reasons, obj.KeyDrawDisable+" is not allowed")
	}
	if a.NoShadow {
		reasons = append(reasons, obj.KeyNoShadow+" is not allowed")
	}
	if a.SolidCamera {
		reasons = append(reasons, obj.KeySolidCamera+" is not allowed")
	}
	return reasons
}
