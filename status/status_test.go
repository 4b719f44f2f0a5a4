// Copyright (c) 2025, The Graphics Lab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeOrder(t *testing.T) {
	ch := &Channel{}
	var order []string
	ch.Subscribe(func(s Status) { order = append(order, "first:"+s.Message) })
	ch.Subscribe(func(s Status) { order = append(order, "second:"+s.Message) })

	ch.Update("k", "a")
	ch.Update("k", "b")
	assert.Equal(t, []string{"first:a", "second:a", "first:b", "second:b"}, order)
}

func TestUnsubscribe(t *testing.T) {
	ch := &Channel{}
	var n int
	id := ch.Subscribe(func(Status) { n++ })
	ch.Update("k", "a")
	ch.Unsubscribe(id)
	ch.Update("k", "b")
	assert.Equal(t, 1, n)

	ch.Unsubscribe(99) // unknown id is a no-op
}

func TestFullValueDelivery(t *testing.T) {
	ch := &Channel{}
	var got Status
	ch.Subscribe(func(s Status) { got = s })
	ch.UpdateProgress("Mesh Viewer", "halfway", 0.5)
	assert.Equal(t, Status{Key: "Mesh Viewer", Message: "halfway", Progress: 0.5}, got)

	ch.Finish("Mesh Viewer", "done")
	assert.Equal(t, Status{Key: "Mesh Viewer", Message: "done", Progress: 1, Done: true}, got)
}

func TestCurrent(t *testing.T) {
	ch := &Channel{}
	_, ok := ch.Current("k")
	assert.False(t, ok)

	ch.Update("k", "a")
	ch.Update("other", "x")
	s, ok := ch.Current("k")
	assert.True(t, ok)
	assert.Equal(t, "a", s.Message)
}
