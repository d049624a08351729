package lan

import (
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// netlinkProber implements LinkProber against the kernel via netlink.
type netlinkProber struct{}

// NewLinkProber returns a LinkProber that queries the real network stack.
func NewLinkProber() LinkProber {
	return &netlinkProber{}
}

func (p *netlinkProber) Probe(name string) (LinkStatus, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return LinkStatus{}, err
	}

	attrs := link.Attrs()
	status := LinkStatus{
		Up: attrs.RawFlags&unix.IFF_UP == unix.IFF_UP &&
			attrs.RawFlags&unix.IFF_LOWER_UP == unix.IFF_LOWER_UP,
	}

	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return LinkStatus{}, err
	}
	for _, a := range addrs {
		status.Addresses = append(status.Addresses, a.IPNet.String())
	}

	return status, nil
}
