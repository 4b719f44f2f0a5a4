// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "log/slog"

// TargetStack is a LIFO stack of render targets, allowing a viewport
// to render into its own texture without disturbing the caller's
// render destination.  Push makes a target the active GL framebuffer
// and remembers the previously active one; Pop restores it.  Usage
// must be strictly nested (balanced push / pop pairs).
//
// The stack mutates the global "current render destination" GL state,
// so only the one render thread owning the context may use it.  Each
// window owns its own stack, injected into the viewports rendering
// into it -- there is no shared default instance.
type TargetStack struct {
	stack []Target
}

// NewTargetStack returns a new stack with the given base target
// (normally the window's ScreenTarget) as its permanent bottom
// element, so the stack is never empty during a Push.
func NewTargetStack(base Target) *TargetStack {
	return &TargetStack{stack: []Target{base}}
}

// Push makes target the active render destination, remembering
// whatever was active before.
func (ts *TargetStack) Push(target Target) {
	ts.stack = append(ts.stack, target)
	target.Activate()
}

// Pop restores the target that was active immediately before the
// matching Push.  The base target is never popped.
func (ts *TargetStack) Pop() {
	if len(ts.stack) <= 1 {
		slog.Error("gpu.TargetStack: Pop without matching Push")
		return
	}
	ts.stack = ts.stack[:len(ts.stack)-1]
	ts.stack[len(ts.stack)-1].Activate()
}

// Current returns the currently active target.
func (ts *TargetStack) Current() Target {
	return ts.stack[len(ts.stack)-1]
}

// Depth returns the number of targets on the stack, including
// the base target.
func (ts *TargetStack) Depth() int {
	return len(ts.stack)
}
