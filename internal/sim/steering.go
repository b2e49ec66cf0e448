package sim

// wanderForce steers toward a point on a small circle projected ahead of the
// ship. theta is the ship's current wander angle.
func wanderForce(self SelfView, theta float64, t Tuning) Vec2 {
	center := self.Position.Add(self.Velocity.Normalize().Scale(t.WanderDistance))
	goal := center.Add(FromAngle(theta, t.WanderRadius))
	return goal.Sub(self.Position).SetMag(self.MaxForce)
}

// avoidForce pushes the predicted position away from the map's top and
// bottom, the enemy base edge, and any island it would run into. Deeper
// island penetration pushes harder.
func avoidForce(obs Observation, t Tuning) Vec2 {
	self := obs.Self
	future := self.Position.Add(self.Velocity.Scale(t.LookaheadTicks))
	margin := self.Size * t.EdgeMargin
	edge := self.MaxForce * t.EdgeSteer

	var force Vec2
	if future.X < obs.Side.AvoidMinX+margin {
		force.X += edge
	}
	if future.X > obs.Side.AvoidMaxX-margin {
		force.X -= edge
	}
	if future.Y < margin {
		force.Y += edge
	}
	if future.Y > obs.MapHeight-margin {
		force.Y -= edge
	}

	for _, isl := range obs.Islands {
		d := future.Dist(isl.Position)
		reach := isl.BoundingRadius + self.Size*t.IslandMargin
		if d >= reach {
			continue
		}
		scale := lerp(t.IslandSteerNear, t.IslandSteerFar, d/reach)
		away := future.Sub(isl.Position).SetMag(self.MaxForce * t.IslandSteer * scale)
		force = force.Add(away)
	}
	return force.Limit(self.MaxForce)
}

// separateForce averages inverse-distance unit vectors away from every living
// ship closer than the separation distance.
func separateForce(obs Observation, t Tuning) Vec2 {
	desired := obs.Self.Size * t.SeparationDistance
	var sum Vec2
	count := 0
	for _, group := range [2][]Contact{obs.Allies, obs.Enemies} {
		for _, c := range group {
			if c.Distance <= 0 || c.Distance >= desired {
				continue
			}
			sum = sum.Add(c.Offset.Scale(-1).Normalize().Div(c.Distance))
			count++
		}
	}
	if count == 0 {
		return Vec2{}
	}
	return sum.Div(float64(count)).SetMag(obs.Self.MaxForce)
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}
