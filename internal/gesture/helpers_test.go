package gesture

// makeHand builds a synthetic 21-point hand with the wrist at (cx, cy+0.2)
// and fingers pointing up. Curled fingers fold their tips back towards the
// wrist.
func makeHand(cx, cy float64, curled bool) Hand {
	h := make(Hand, NumLandmarks)
	wristY := cy + 0.2
	h[Wrist] = Landmark{X: cx, Y: wristY}

	// thumb
	for i := 1; i <= 4; i++ {
		h[i] = Landmark{X: cx - 0.04*float64(i), Y: wristY - 0.03*float64(i)}
	}

	for f := 0; f < 4; f++ {
		x := cx - 0.045 + 0.03*float64(f)
		mcp := 5 + f*4
		h[mcp] = Landmark{X: x, Y: cy}
		h[mcp+1] = Landmark{X: x, Y: cy - 0.1}
		if curled {
			h[mcp+2] = Landmark{X: x, Y: cy - 0.05}
			h[mcp+3] = Landmark{X: x, Y: cy + 0.05}
		} else {
			h[mcp+2] = Landmark{X: x, Y: cy - 0.15}
			h[mcp+3] = Landmark{X: x, Y: cy - 0.2}
		}
	}
	// the middle MCP sits straight above the wrist
	h[MiddleMCP].X = cx
	return h
}
