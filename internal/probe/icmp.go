package probe

import (
	"context"
	"net"
	"net/netip"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// protocolICMP is the IANA protocol number for ICMPv4.
const protocolICMP = 1

// echoSeq numbers outgoing echo requests across the process.
var echoSeq atomic.Uint32

// icmpPing sends a single ICMPv4 echo request to addr and waits for any
// echo reply from it. Returns false on socket errors, send errors, timeout,
// or a non-echo-reply answer (e.g. destination unreachable).
//
// A datagram-oriented "udp4" socket is tried first so no root is needed on
// Linux (ping_group_range) and macOS; a raw socket is the fallback.
func icmpPing(ctx context.Context, addr netip.Addr, timeout time.Duration) bool {
	conn, raw, err := listenICMP()
	if err != nil {
		return false
	}
	defer conn.Close()

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   os.Getpid() & 0xffff,
			Seq:  int(echoSeq.Add(1) & 0xffff),
			Data: []byte("netwatch"),
		},
	}
	wb, err := msg.Marshal(nil)
	if err != nil {
		return false
	}

	ip := net.IP(addr.AsSlice())
	var dst net.Addr
	if raw {
		dst = &net.IPAddr{IP: ip}
	} else {
		dst = &net.UDPAddr{IP: ip}
	}

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return false
	}

	if _, err := conn.WriteTo(wb, dst); err != nil {
		return false
	}

	rb := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(rb)
		if err != nil {
			// Timeout or socket error: unreachable either way.
			return false
		}
		if !peerMatches(peer, ip) {
			continue
		}

		reply, err := icmp.ParseMessage(protocolICMP, rb[:n])
		if err != nil {
			continue
		}
		return reply.Type == ipv4.ICMPTypeEchoReply
	}
}

// listenICMP opens an ICMP listener, preferring the unprivileged datagram
// socket. The second return reports whether the socket is raw.
func listenICMP() (*icmp.PacketConn, bool, error) {
	if conn, err := icmp.ListenPacket("udp4", "0.0.0.0"); err == nil {
		return conn, false, nil
	}
	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return nil, false, err
	}
	return conn, true, nil
}

// peerMatches reports whether a reply came from the probed address.
func peerMatches(peer net.Addr, ip net.IP) bool {
	switch a := peer.(type) {
	case *net.UDPAddr:
		return a.IP.Equal(ip)
	case *net.IPAddr:
		return a.IP.Equal(ip)
	default:
		return false
	}
}
