package animator

import "github.com/floeze/naviz/internal/state"

// Over composites c over base using non-premultiplied source-over with 8-bit
// channels.
func Over(c, base state.Color) state.Color {
	sr, sg, sb, sa := uint32(c[0]), uint32(c[1]), uint32(c[2]), uint32(c[3])
	br, bg, bb, ba := uint32(base[0]), uint32(base[1]), uint32(base[2]), uint32(base[3])

	a := sa + ba*(255-sa)/255
	if a == 0 {
		return state.Color{}
	}
	r := (sr*sa + br*ba*(255-sa)/255) / a
	g := (sg*sa + bg*ba*(255-sa)/255) / a
	b := (sb*sa + bb*ba*(255-sa)/255) / a

	return state.Color{uint8(r), uint8(g), uint8(b), uint8(a)}
}

func lerpByte(from, to uint8, f float64) uint8 {
	return uint8(float64(from)*(1-f) + float64(to)*f)
}

func lerpColor(from, to state.Color, f float64) state.Color {
	return state.Color{
		lerpByte(from[0], to[0], f),
		lerpByte(from[1], to[1], f),
		lerpByte(from[2], to[2], f),
		lerpByte(from[3], to[3], f),
	}
}

func lerpFloat(from, to float64, f float64) float64 {
	return from*(1-f) + to*f
}

func lerpPosition(from, to state.Position, f float64) state.Position {
	return state.Position{
		X: lerpFloat(from.X, to.X, f),
		Y: lerpFloat(from.Y, to.Y, f),
	}
}
