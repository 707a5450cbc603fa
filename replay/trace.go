package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Version is written into every trace and checked on decode.
const Version = 1

var ErrVersion = errors.New("replay: unsupported trace version")

// Sample is the collision state of one actor after a tick.
type Sample struct {
	Entity    uint64 `msgpack:"e"`
	Name      string `msgpack:"n,omitempty"`
	X         int32  `msgpack:"x"`
	Y         int32  `msgpack:"y"`
	VX        int32  `msgpack:"vx"`
	VY        int32  `msgpack:"vy"`
	GroundVel int32  `msgpack:"gv"`
	Angle     int32  `msgpack:"a"`
	Mode      uint8  `msgpack:"m"`
	OnGround  bool   `msgpack:"g"`
}

type Frame struct {
	Tick    uint64   `msgpack:"t"`
	Samples []Sample `msgpack:"s"`
}

// Trace is a recorded run. Level and Revision identify the inputs it was
// recorded against.
type Trace struct {
	Version  int     `msgpack:"v"`
	Level    string  `msgpack:"level"`
	Revision string  `msgpack:"rev"`
	Frames   []Frame `msgpack:"frames"`
}

func Encode(w io.Writer, t *Trace) error {
	if t == nil {
		return fmt.Errorf("replay: nil trace")
	}
	if err := msgpack.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

func Decode(r io.Reader) (*Trace, error) {
	var t Trace
	if err := msgpack.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if t.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, t.Version)
	}
	return &t, nil
}

func Save(path string, t *Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: create %s: %w", path, err)
	}
	if err := Encode(f, t); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
