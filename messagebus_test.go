// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import "testing"

func TestBusFanOutOrderAndStopPropagation(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(TopicCommand, func(msg *Message, data any) Propagation {
		order = append(order, "A")
		return Continue
	}, "A")
	bus.Subscribe(TopicCommand, func(msg *Message, data any) Propagation {
		order = append(order, "B")
		return Continue
	}, "B")
	bus.Subscribe(TopicCommand, func(msg *Message, data any) Propagation {
		order = append(order, "C")
		return Continue
	}, "C")

	bus.Send(&Message{Topic: TopicCommand, Command: &Command{}})
	if want := "ABC"; join(order) != want {
		t.Fatalf("order = %v, want %s", order, want)
	}

	order = nil
	bus.Unsubscribe(TopicCommand, "B")
	bus.Subscribe(TopicCommand, func(msg *Message, data any) Propagation {
		order = append(order, "B")
		return StopPropagation
	}, "B")
	// re-subscribing B appended it at the tail; rebuild with original order
	// by unsubscribing and resubscribing all three in A, B, C order again.
	bus.Unsubscribe(TopicCommand, "A")
	bus.Unsubscribe(TopicCommand, "B")
	bus.Unsubscribe(TopicCommand, "C")
	order = nil
	bus.Subscribe(TopicCommand, func(msg *Message, data any) Propagation {
		order = append(order, "A")
		return Continue
	}, "A")
	bus.Subscribe(TopicCommand, func(msg *Message, data any) Propagation {
		order = append(order, "B")
		return StopPropagation
	}, "B")
	bus.Subscribe(TopicCommand, func(msg *Message, data any) Propagation {
		order = append(order, "C")
		return Continue
	}, "C")
	bus.Send(&Message{Topic: TopicCommand, Command: &Command{}})
	if want := "AB"; join(order) != want {
		t.Fatalf("order after stop-propagation = %v, want %s", order, want)
	}
}

// TestUnsubscribeIsScopedToItsOwnTopic covers §4.2's per-(topic,data)
// unsubscribe contract: the same data value subscribed on two different
// topics must be removable independently, without affecting the other
// topic's subscription.
func TestUnsubscribeIsScopedToItsOwnTopic(t *testing.T) {
	bus := NewBus()
	const key = "shared"

	var commandFired, inputFired bool
	bus.Subscribe(TopicCommand, func(msg *Message, data any) Propagation {
		commandFired = true
		return Continue
	}, key)
	bus.Subscribe(TopicInput, func(msg *Message, data any) Propagation {
		inputFired = true
		return Continue
	}, key)

	if err := bus.Unsubscribe(TopicCommand, key); err != nil {
		t.Fatalf("Unsubscribe(TopicCommand): %v", err)
	}

	bus.Send(&Message{Topic: TopicCommand, Command: &Command{}})
	bus.Send(&Message{Topic: TopicInput})
	if commandFired {
		t.Fatalf("TopicCommand subscriber still fired after Unsubscribe")
	}
	if !inputFired {
		t.Fatalf("TopicInput subscriber with the same data key was removed by an unrelated Unsubscribe")
	}
}

func join(ss []string) string {
	out := ""
	for _, s := range ss {
		out += s
	}
	return out
}
