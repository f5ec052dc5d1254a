package core

import (
	"fmt"
	"strings"

	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/shared"
)

// VNode is a rendered node. There is no diffing or patching; the latest
// tree simply replaces the previous one.
type VNode struct {
	Tag      string
	Text     string
	Data     ir.Object
	Children []*VNode

	// Comment marks the empty placeholder node.
	Comment bool
}

func emptyVNode() *VNode {
	return &VNode{Comment: true}
}

// String renders n as compact markup, e.g. <p>Count: 3</p>.
func (n *VNode) String() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *VNode) write(b *strings.Builder) {
	switch {
	case n.Comment:
		b.WriteString("<!---->")
		return
	case n.Tag == "":
		b.WriteString(n.Text)
		return
	}
	b.WriteString("<" + n.Tag + ">")
	b.WriteString(n.Text)
	for _, child := range n.Children {
		if child != nil {
			child.write(b)
		}
	}
	b.WriteString("</" + n.Tag + ">")
}

// applyRender contributes _render, $nextTick and the render helpers.
func applyRender(c *Constructor) {
	c.mustDefine("_render", renderMethod)
	c.mustDefine("$nextTick", nextTickMethod)
	c.mustDefine("_s", func(_ *Component, args ...any) (any, error) {
		if len(args) == 0 {
			return "", nil
		}
		return shared.ToDisplayString(displayable(args[0])), nil
	})
	c.mustDefine("_n", func(_ *Component, args ...any) (any, error) {
		s, err := argAt[string]("_n", args, 0)
		if err != nil {
			return nil, err
		}
		return shared.ToNumber(s), nil
	})
}

// displayable unwraps ir values so they print like plain Go values.
func displayable(v any) any {
	if val, ok := v.(ir.Value); ok {
		return ir.ToGo(val)
	}
	return v
}

func renderMethod(vm *Component, _ ...any) (any, error) {
	render := vm.options.Render
	if render == nil {
		return emptyVNode(), nil
	}

	vnode, err := safeRender(vm, render)
	if err != nil {
		vm.ctor.handleError(err, vm, "render")
		vnode = vm.vnode
	}
	if vnode == nil {
		vnode = emptyVNode()
	}
	return vnode, nil
}

func safeRender(vm *Component, render RenderFunc) (vnode *VNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			vnode, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return render(vm)
}

func nextTickMethod(vm *Component, args ...any) (any, error) {
	fn, err := argAt[func()]("$nextTick", args, 0)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, badArgument("$nextTick", "nil callback")
	}
	vm.ctor.sched.nextTick(fn)
	return nil, nil
}

// Display renders v through the _s helper.
func (vm *Component) Display(v any) string {
	s, err := callAs[string](vm, "_s", v)
	if err != nil {
		return ""
	}
	return s
}
