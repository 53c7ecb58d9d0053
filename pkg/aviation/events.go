// pkg/aviation/events.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/mmp/atcsim/pkg/log"
	smath "github.com/mmp/atcsim/pkg/math"
	"github.com/mmp/atcsim/pkg/rand"
)

// EventKind tags the payload carried by an Event. Go has no sum types,
// so Event is a single struct with every variant's fields present but
// only the ones the active Kind cares about populated; HandleAircraftEvent
// switches on Kind exactly the way an exhaustive match would.
type EventKind int

const (
	EvSpeed EventKind = iota
	EvSpeedAtOrBelow
	EvSpeedAtOrAbove
	EvFrequency
	EvNamedFrequency

	EvHeading
	EvAltitude
	EvAltitudeAtOrBelow
	EvAltitudeAtOrAbove
	EvResumeOwnNavigation
	EvDirect
	EvAmendAndFollow

	EvLand
	EvGoAround
	EvTouchdown
	EvTakeoff

	EvTaxi
	EvTaxiContinue
	EvTaxiHold
	EvLineUp

	EvIdent

	EvCallout
	EvCalloutTARA

	EvSegment

	EvDelete
)

// CalloutKind tags the payload of an EvCallout, mirroring the handful
// of CommandReply variants the engine itself produces (everything else
// is synthesized outside the simulation core, by whatever renders
// callouts to the user).
type CalloutKind int

const (
	CalloutEmpty CalloutKind = iota
	CalloutReadyForTaxi
	CalloutArriveInAirspace
	CalloutTARAResolved
)

type Callout struct {
	Kind      CalloutKind
	Gate      string  // CalloutReadyForTaxi
	Direction string  // CalloutArriveInAirspace
	Altitude  float32 // CalloutArriveInAirspace, CalloutTARAResolved
}

// Event is a single instruction or notification targeting one
// aircraft.
type Event struct {
	ID   string
	Kind EventKind

	Float float32 // Speed*, Altitude*, Heading, Frequency payload
	Str   string  // NamedFrequency, Direct, Land, Takeoff, LineUp payload
	Bool  bool    // ResumeOwnNavigation.diversion, TaxiHold.and_state

	Waypoints []Node         // Taxi destinations
	Amend     []PlanWaypoint // AmendAndFollow

	PrevSegment, Segment FlightSegment // Segment transition

	Callout Callout
}

func NewEvent(id string, kind EventKind) Event { return Event{ID: id, Kind: kind} }

// HandleAircraftEvent applies a single event to the targeted aircraft,
// appending any follow-on events it produces to *out. This is the
// per-aircraft dispatcher the engine's tick loop calls once per inbound
// event (spec §4.1 step 2).
func HandleAircraftEvent(ac *Aircraft, ev Event, out *[]Event, world *World, rng *rand.Rand, lg *log.Logger) {
	switch ev.Kind {
	case EvSpeed:
		ac.Target.Speed = ev.Float
	case EvSpeedAtOrBelow:
		if ac.Target.Speed > ev.Float {
			ac.Target.Speed = ev.Float
		}
	case EvSpeedAtOrAbove:
		if ac.Target.Speed < ev.Float {
			ac.Target.Speed = ev.Float
		}
	case EvHeading:
		switch ac.State.Kind {
		case StateFlying:
			ac.Target.Heading = ev.Float
			ac.FlightPlan.StopFollowing()
			ac.FlightPlan.CourseOffset = 0
		case StateLanding:
			ac.Target.Heading = ev.Float
		}
	case EvAltitude:
		ac.Target.Altitude = ev.Float
	case EvAltitudeAtOrBelow:
		if ac.Target.Altitude > ev.Float {
			ac.Target.Altitude = ev.Float
		}
	case EvAltitudeAtOrAbove:
		if ac.Target.Altitude < ev.Float {
			ac.Target.Altitude = ev.Float
		}
	case EvFrequency:
		ac.Frequency = ev.Float
	case EvNamedFrequency:
		if airport := world.Airport(ac.Airspace); airport != nil {
			if f, ok := airport.Frequencies.Resolve(ev.Str); ok {
				ac.Frequency = f
			}
		}

	case EvResumeOwnNavigation:
		if ac.State.Kind == StateFlying {
			resumeOwnNavigation(ac, ev.Bool, out, world, lg)
		}
	case EvDirect:
		for i, wp := range ac.FlightPlan.Waypoints {
			if wp.Name == ev.Str {
				ac.FlightPlan.SetIndex(i)
				break
			}
		}
	case EvAmendAndFollow:
		ac.FlightPlan.AmendEnd(ev.Amend)
		ac.FlightPlan.StartFollowing()

	case EvLand:
		handleLandEvent(ac, ev.Str, world)
	case EvGoAround:
		if ac.State.Kind == StateLanding {
			ac.State = NewFlyingState()
			ac.FlightPlan.StopFollowing()
			ac.FlightPlan.CourseOffset = 0
			ac.SyncTargetsToCurrent()

			*out = append(*out,
				Event{ID: ac.ID, Kind: EvAltitudeAtOrAbove, Float: 3000},
				Event{ID: ac.ID, Kind: EvSpeedAtOrAbove, Float: 250},
			)
		}
	case EvTouchdown:
		if ac.State.Kind == StateLanding {
			handleTouchdownEvent(ac)
		}
	case EvTakeoff:
		if ac.State.Kind == StateTaxiing {
			handleTakeoffEvent(ac, ev.Str, out, world)
		}

	case EvTaxi:
		if ac.State.Kind == StateTaxiing || ac.State.Kind == StateParked {
			if airport := ac.FindAirport(world); airport != nil {
				handleTaxiEvent(ac, ev.Waypoints, airport, out, world, lg)
			}
		}
	case EvTaxiContinue:
		if ac.State.Kind == StateTaxiing {
			switch ac.State.TaxiSub {
			case TaxiArmed, TaxiOverride:
			case TaxiHolding:
				ac.State.TaxiSub = TaxiArmed
			case TaxiStopped:
				ac.State.TaxiSub = TaxiOverride
			}
			ac.Target.Speed = MaxTaxiSpeed
		}
	case EvTaxiHold:
		if ac.State.Kind == StateTaxiing {
			ac.Target.Speed = 0
			ac.Speed = 0
			if ev.Bool {
				ac.State.TaxiSub = TaxiHolding
			}
		} else if ac.State.Kind == StateParked {
			ac.Target.Speed = 0
			ac.Speed = 0
		}
	case EvLineUp:
		if ac.State.Kind == StateTaxiing && len(ac.State.TaxiWaypoints) > 0 {
			wp := &ac.State.TaxiWaypoints[0]
			if wp.Kind == NodeRunway && wp.Name == ev.Str {
				wp.Behavior = BehaviorLineUp
			}
			*out = append(*out, Event{ID: ac.ID, Kind: EvTaxiContinue})
		}

	case EvIdent:
		*out = append(*out, Event{
			ID: ac.ID, Kind: EvCallout,
			Callout: Callout{Kind: CalloutEmpty},
		})

	case EvCallout:
		// Rendered outside the simulation core.
	case EvCalloutTARA:
		handleCalloutTARA(ac, out)

	case EvSegment:
		ac.Segment = ev.Segment
		switch ev.Segment {
		case SegDormant:
		case SegParked:
			switch ev.PrevSegment {
			case SegBoarding:
				handleParkedTransition(ac, out, world)
			case SegTaxiArr:
				*out = append(*out, Event{ID: ac.ID, Kind: EvSegment, PrevSegment: ac.Segment, Segment: SegDormant})
			}
		case SegApproach:
			if ev.PrevSegment == SegArrival {
				handleApproachTransition(ac, world, out, rng)
			}
		}

	case EvDelete:
		*out = append(*out, Event{ID: ac.ID, Kind: EvDelete})
	}
}

func handleLandEvent(ac *Aircraft, runwayID string, world *World) {
	if ac.State.Kind != StateFlying && ac.State.Kind != StateLanding {
		return
	}
	airport := ac.FindAirport(world)
	if airport == nil {
		return
	}
	rwy, ok := airport.Runway(runwayID)
	if !ok {
		return
	}
	ac.State = NewLandingState(rwy)
}

func handleTouchdownEvent(ac *Aircraft) {
	rwy := ac.State.LandingRunway

	ac.Target.Altitude = 0
	ac.Altitude = 0
	ac.Target.Heading = rwy.Heading()
	ac.Heading = rwy.Heading()
	ac.Target.Speed = 0

	ac.State = AircraftState{
		Kind: StateTaxiing,
		TaxiCurrent: Node{
			Name: rwy.ID, Kind: NodeRunway, Behavior: BehaviorGoTo, Pos: ac.Pos,
		},
		TaxiSub: TaxiOverride,
	}
}

func handleTaxiEvent(ac *Aircraft, destinations []Node, airport *Airport, out *[]Event, world *World, lg *log.Logger) {
	current := ac.State.TaxiCurrent
	if ac.State.Kind == StateParked {
		current = ac.State.ParkedAt
	}

	i := 0
	if i < len(destinations) && destinations[i].NameKindEq(current) {
		lg.Debugf("skipping %s as aircraft is already there", current.Name)
		i++
	}

	heading := ac.Heading
	curr := current
	var all []Node
	for ; i < len(destinations); i++ {
		dest := destinations[i]
		p, ok := airport.Graph.PathTo(curr, dest, heading)
		if !ok {
			lg.Debugf("failed to find taxi path for %s from %s to %s", ac.ID, curr.Name, dest.Name)
			return
		}
		heading = p.FinalHeading
		curr = p.Path[len(p.Path)-1]
		all = append(all, p.Path...)
	}

	if len(all) > 0 && all[len(all)-1].Kind == NodeGate {
		last := all[len(all)-1]
		if _, gate := airport.Gate(last.Name); gate != nil {
			all = append(all, Node{Name: last.Name, Kind: NodeGate, Behavior: BehaviorPark, Pos: gate.Pos})
		}
	}

	if len(all) == 0 {
		return
	}
	for l, r := 0, len(all)-1; l < r; l, r = l+1, r-1 {
		all[l], all[r] = all[r], all[l]
	}

	if ac.State.Kind == StateTaxiing {
		ac.State.TaxiWaypoints = all
	} else {
		ac.State = NewTaxiingState(current, all)
	}

	*out = append(*out, Event{ID: ac.ID, Kind: EvTaxiContinue})
}

func handleTakeoffEvent(ac *Aircraft, runwayID string, out *[]Event, world *World) {
	airport := ac.FindAirport(world)
	var rwy Runway
	var rwyOK bool
	if airport != nil {
		rwy, rwyOK = airport.Runway(runwayID)
	}

	current := ac.State.TaxiCurrent
	if rwyOK && current.Kind == NodeRunway && current.Name == runwayID {
		ac.Target.Speed = ac.Minima.MaxSpeed
		ac.Target.Altitude = ac.FlightPlan.CruiseAltitude
		ac.Heading = rwy.Heading()
		ac.Target.Heading = rwy.Heading()
		ac.State = NewFlyingState()

		*out = append(*out, Event{ID: ac.ID, Kind: EvResumeOwnNavigation, Bool: false})
		return
	}

	if len(ac.State.TaxiWaypoints) > 0 {
		wp := &ac.State.TaxiWaypoints[0]
		if wp.Kind == NodeRunway && wp.Name == runwayID {
			wp.Behavior = BehaviorTakeoff
			*out = append(*out, Event{ID: ac.ID, Kind: EvTaxiContinue})
		}
	}
}

func handleParkedTransition(ac *Aircraft, out *[]Event, world *World) {
	at := ac.State.ParkedAt
	airport := ac.FindAirport(world)
	if airport == nil {
		return
	}
	ac.Frequency = airport.Frequencies.Ground
	*out = append(*out, Event{
		ID: ac.ID, Kind: EvCallout,
		Callout: Callout{Kind: CalloutReadyForTaxi, Gate: at.Name},
	})
}

func handleApproachTransition(ac *Aircraft, world *World, out *[]Event, rng *rand.Rand) {
	airport := ac.FindAirport(world)
	if airport == nil || airport.ID != ac.FlightPlan.Arriving {
		return
	}

	ac.Segment = SegApproach
	ac.Frequency = airport.Frequencies.Approach

	if !airport.Status.DivertArrivals {
		ac.Target.Heading = smath.AngleBetweenPoints(ac.Pos, airport.Center)
		*out = append(*out, Event{
			ID: ac.ID, Kind: EvCallout,
			Callout: Callout{Kind: CalloutArriveInAirspace, Direction: headingToDirectionName(smath.AngleBetweenPoints(airport.Center, ac.Pos)), Altitude: ac.Altitude},
		})
		return
	}

	others := world.OtherAirports(airport.ID)
	if len(others) == 0 {
		return
	}
	dest := others[rng.Intn(len(others))]

	ac.FlightPlan.Flip()
	ac.FlightPlan.Arriving = dest.ID

	*out = append(*out, Event{ID: ac.ID, Kind: EvResumeOwnNavigation, Bool: true})
}

func handleCalloutTARA(ac *Aircraft, out *[]Event) {
	*out = append(*out, Event{
		ID: ac.ID, Kind: EvCallout,
		Callout: Callout{Kind: CalloutTARAResolved, Altitude: ac.Target.Altitude},
	})
}

// headingToDirectionName maps a compass heading to the eight-point
// direction name ("north", "northeast", ...) callouts report.
func headingToDirectionName(h float32) string {
	h = smath.NormalizeHeading(h)
	switch {
	case h < 22.5 || h >= 337.5:
		return "north"
	case h < 67.5:
		return "northeast"
	case h < 112.5:
		return "east"
	case h < 157.5:
		return "southeast"
	case h < 202.5:
		return "south"
	case h < 247.5:
		return "southwest"
	case h < 292.5:
		return "west"
	default:
		return "northwest"
	}
}
