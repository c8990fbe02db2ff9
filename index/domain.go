package index

import "fmt"

// Domain is a disjoint id space.
type Domain uint8

const (
	// DomainPosition holds one entity per indexed position.
	DomainPosition Domain = iota
	// DomainInstance holds one entity per tracked piece occurrence.
	DomainInstance

	numDomains
)

// Domains returns every domain in id order.
func Domains() []Domain { return []Domain{DomainPosition, DomainInstance} }

func (d Domain) String() string {
	switch d {
	case DomainPosition:
		return "position"
	case DomainInstance:
		return "instance"
	}
	return fmt.Sprintf("Domain(%d)", uint8(d))
}

func (d Domain) valid() bool { return d < numDomains }
