package main

import (
	"context"
	"log/slog"
	"net"
	"time"

	"i4.energy/across/celllink/modem"
)

// tickInterval paces the driver's cooperative engine.
const tickInterval = time.Millisecond

// Bridge pipes one TCP client through the modem's data connection. The
// modem Device is single-threaded, so the bridge funnels everything into
// the tick loop: client bytes arrive over a channel and all Device calls
// happen from one goroutine.
type Bridge struct {
	Logger *slog.Logger
	Device *modem.Device
}

// Serve accepts clients one at a time and bridges each until it
// disconnects or ctx is cancelled.
func (b *Bridge) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		b.Logger.Info("client connected", "remote", conn.RemoteAddr().String())
		b.bridge(ctx, conn)
		conn.Close()
		b.Logger.Info("client disconnected", "remote", conn.RemoteAddr().String())
	}
}

// bridge runs the tick loop for one client.
func (b *Bridge) bridge(ctx context.Context, conn net.Conn) {
	inbound := make(chan []byte, 16)
	readDone := make(chan struct{})

	go func() {
		defer close(readDone)
		for {
			buf := make([]byte, 512)
			n, err := conn.Read(buf)
			if n > 0 {
				select {
				case inbound <- buf[:n]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	// Bytes accepted from the client but not yet staged with the device.
	var pending []byte
	out := make([]byte, 512)

	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-inbound:
			if !ok {
				return
			}
			pending = append(pending, data...)

		case <-readDone:
			return

		case <-ticker.C:
			b.Device.Run()

			if len(pending) > 0 {
				n := b.Device.Write(pending)
				pending = pending[n:]
			}

			for {
				n := b.Device.Read(out)
				if n == 0 {
					break
				}
				if _, err := conn.Write(out[:n]); err != nil {
					return
				}
			}

			switch b.Device.State() {
			case modem.ConnectionError, modem.DNSError, modem.GenericError:
				b.Logger.Error("link failed", "state", b.Device.State().String())
				return
			}
		}
	}
}
