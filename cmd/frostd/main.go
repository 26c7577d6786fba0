// Command frostd is a small embedder demo: it wires frost's scheduler logs
// into a JSON-structured logiface/stumpy pipeline, then runs two bound
// interval tasks, a producer broadcasting channel packets to a consumer,
// while a third prints heartbeats.
package main

import (
	"fmt"
	"time"

	"github.com/TheSnowfield/frost"
	"github.com/TheSnowfield/frost/logginglogiface"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

func main() {
	logger := logiface.New[*stumpy.Event](stumpy.WithStumpy())

	e := frost.New(
		frost.WithLogger(logginglogiface.New(logger)),
		frost.WithDebug(true),
	)
	defer e.Close()

	producer, kind := e.Interval("producer", 20, func(t *frost.Task) {
		if !e.ChanIsAllocatedEx(t) {
			e.ChanAllocEx(t)
		}
		e.ChanWriteEx(nil, &frost.Packet{Data: []byte("ping")})
	})
	if err := kind.Err("frostd: create producer"); err != nil {
		panic(err)
	}

	_, kind = e.Interval("consumer", 20, func(t *frost.Task) {
		if !e.ChanIsAllocatedEx(t) {
			e.ChanAllocEx(t)
			e.ChanBindEx(producer, t)
		}
		for {
			pack, ctrl, k := e.ChanRead()
			if k != frost.Ok {
				break
			}
			if ctrl == frost.CtrlOk {
				fmt.Printf("consumer received %q from %s\n", pack.Data, pack.From.Name())
			}
			e.ChanFreePack(pack)
		}
	})
	if err := kind.Err("frostd: create consumer"); err != nil {
		panic(err)
	}

	ticks := 0
	if _, kind := e.Interval("heartbeat", 50, func(t *frost.Task) {
		ticks++
		fmt.Printf("heartbeat #%d (fire count=%d)\n", ticks, t.FireCount())
	}); kind != frost.Ok {
		panic(kind.Err("frostd: create heartbeat"))
	}

	for i := 0; i < 50 && ticks < 3; i++ {
		if k := e.Schedule(); k != frost.Ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
}
