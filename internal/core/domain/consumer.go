package domain

import "fmt"

// ConsumerID identifies a consumer (a material or similar) in the host.
type ConsumerID string

// PropertyName names one slot on a consumer.
type PropertyName string

// Slot is a single named property of a consumer. Ref is nil when the
// slot is empty.
type Slot struct {
	Name PropertyName
	Ref  *AssetReference
}

// Consumer is a snapshot of an entity that references assets through
// named slots. Slots are kept in the host's enumeration order.
type Consumer struct {
	ID    ConsumerID
	Slots []Slot
}

// ReferenceSite is one (consumer, property) slot.
type ReferenceSite struct {
	Consumer ConsumerID
	Property PropertyName
}

func (s ReferenceSite) String() string {
	return fmt.Sprintf("%s.%s", s.Consumer, s.Property)
}
