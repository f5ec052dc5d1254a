// Package manifest loads component definitions from CUE or YAML and turns
// them into core.Options.
//
// A CUE manifest declares components under the top-level "component" field:
//
//	component: counter: {
//		data: count: 0
//		watch: count: "changed"
//		emit: mounted: "ready"
//		render: {tag: "p", text: "Count: ", bind: "count"}
//		plugins: ["counter"]
//	}
//
// A YAML manifest lists the same fields under "components", one entry per
// component, with an explicit name.
//
// Definitions are declarative: watchers emit events, hooks emit events, and
// the render function is a single text node bound to one data key. Anything
// richer is written in Go against core directly.
package manifest
