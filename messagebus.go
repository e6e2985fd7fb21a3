// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// messagebus.go implements the typed, ordered, in-process pub/sub (§4.2).
// Grounded on the teacher's component-manager style (app.go keeps a
// struct-of-managers and iterates them in a fixed order); here each
// topic keeps its own subscriber list and is iterated in subscription
// (insertion) order, matching §4.2's FIFO ordering guarantee.

// Propagation is a subscriber handler's verdict: whether the bus should
// keep calling later subscribers on the same topic.
type Propagation int

const (
	Continue Propagation = iota
	StopPropagation
)

// Handler reacts to a Message. data is the opaque pointer supplied at
// Subscribe time, round-tripped unchanged (the teacher's device/input.go
// channel-based dispatch plays the same "opaque data" role for callbacks).
type Handler func(msg *Message, data any) Propagation

type subscriber struct {
	handler Handler
	data    any
}

// subscriberKey disambiguates subscriptions by (topic, data): the same
// data value subscribed on two different topics must Unsubscribe
// independently, not alias each other's map entry.
type subscriberKey struct {
	topic Topic
	data  any
}

// Bus is the process-wide message bus. The zero value is not ready to
// use; call NewBus.
type Bus struct {
	topics [topicCount]*List[*subscriber]
	byData map[subscriberKey]*ListEntry[*subscriber]
}

// NewBus creates the subscriber list of every topic up front, when the
// bus is created; the lists are not created lazily on first use.
func NewBus() *Bus {
	b := &Bus{byData: map[subscriberKey]*ListEntry[*subscriber]{}}
	for i := range b.topics {
		b.topics[i] = &List[*subscriber]{}
	}
	return b
}

// Subscribe registers handler on topic. data both disambiguates multiple
// subscriptions by the same handler and is passed back on every call.
func (b *Bus) Subscribe(topic Topic, handler Handler, data any) error {
	if topic < 0 || topic >= topicCount {
		return New(InvalidArguments, "messagebus: unknown topic")
	}
	sub := &subscriber{handler: handler, data: data}
	entry := b.topics[topic].PushBack(sub)
	b.byData[subscriberKey{topic, data}] = entry
	return nil
}

// Unsubscribe removes the subscription previously registered with data
// on topic.
func (b *Bus) Unsubscribe(topic Topic, data any) error {
	key := subscriberKey{topic, data}
	entry, ok := b.byData[key]
	if !ok {
		return New(NotFound, "messagebus: subscription not found")
	}
	entry.Remove()
	delete(b.byData, key)
	return nil
}

// Send delivers msg to every subscriber of msg.Topic in subscription
// order, stopping early if a handler returns StopPropagation. Send never
// fails; handler-level errors must be carried inside the message itself
// if the caller cares about them.
func (b *Bus) Send(msg *Message) {
	if msg.Topic < 0 || msg.Topic >= topicCount {
		return
	}
	list := b.topics[msg.Topic]
	for n := list.head; n != nil; n = n.next {
		sub := n.value
		if sub.handler(msg, sub.data) == StopPropagation {
			return
		}
	}
}

// Teardown drops all subscribers from every topic.
func (b *Bus) Teardown() {
	for i := range b.topics {
		b.topics[i] = &List[*subscriber]{}
	}
	b.byData = map[subscriberKey]*ListEntry[*subscriber]{}
}
