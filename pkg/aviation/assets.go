// pkg/aviation/assets.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	smath "github.com/mmp/atcsim/pkg/math"
)

// assetWorld is the on-disk JSON shape assets are authored in: a flat
// description of airports/waypoints that LoadAssets turns into a World
// with live taxi graphs and resolved runway/gate records.
type assetWorld struct {
	Waypoints []assetWaypoint `json:"waypoints"`
	Airports  []assetAirport  `json:"airports"`
}

type assetWaypoint struct {
	Name string  `json:"name"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
}

type assetAirport struct {
	ID      string         `json:"id"`
	Center  [2]float32     `json:"center"`
	Runways []assetRunway  `json:"runways"`
	Terminals []assetTerminal `json:"terminals"`
	Taxiways  []assetEdge     `json:"taxiways"`
	Frequencies assetFrequencies `json:"frequencies"`
	Status      assetStatus      `json:"status"`
}

type assetRunway struct {
	ID    string     `json:"id"`
	Start [2]float32 `json:"start"`
	End   [2]float32 `json:"end"`
}

type assetTerminal struct {
	ID    string       `json:"id"`
	Gates []assetGate  `json:"gates"`
}

type assetGate struct {
	ID  string     `json:"id"`
	Pos [2]float32 `json:"pos"`
}

type assetNode struct {
	Name string     `json:"name"`
	Kind string     `json:"kind"` // "gate"|"taxiway"|"runway"|"apron"|"vor"
	Pos  [2]float32 `json:"pos"`
}

type assetEdge struct {
	A assetNode `json:"a"`
	B assetNode `json:"b"`
}

type assetFrequencies struct {
	Ground     float32            `json:"ground"`
	Tower      float32            `json:"tower"`
	Departure  float32            `json:"departure"`
	Approach   float32            `json:"approach"`
	Center     float32            `json:"center"`
	Named      map[string]float32 `json:"named"`
}

type assetStatus struct {
	AutomateAir    bool `json:"automate_air"`
	AutomateGround bool `json:"automate_ground"`
	DivertArrivals bool `json:"divert_arrivals"`
}

func nodeKindFromString(s string) (NodeKind, bool) {
	switch strings.ToLower(s) {
	case "gate":
		return NodeGate, true
	case "taxiway":
		return NodeTaxiway, true
	case "runway":
		return NodeRunway, true
	case "apron":
		return NodeApron, true
	case "vor":
		return NodeVOR, true
	default:
		return 0, false
	}
}

func toNode(n assetNode) (Node, error) {
	k, ok := nodeKindFromString(n.Kind)
	if !ok {
		return Node{}, fmt.Errorf("%w: unknown node kind %q", ErrUnknownAsset, n.Kind)
	}
	return Node{Name: n.Name, Kind: k, Pos: smath.Point2f{n.Pos[0], n.Pos[1]}}, nil
}

// LoadAssets reads a scenario file from path: raw JSON, or zstd-
// compressed JSON if the path ends in ".zst". It builds each airport's
// taxi graph from the declared edges and returns the assembled World.
func LoadAssets(path string) (*World, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".zst") {
		raw, err = decompressZstd(raw)
		if err != nil {
			return nil, err
		}
	}

	var aw assetWorld
	if err := json.Unmarshal(raw, &aw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAsset, err)
	}

	w := &World{Params: DefaultEngineParams()}
	for _, wp := range aw.Waypoints {
		w.Waypoints = append(w.Waypoints, Waypoint{Name: wp.Name, Pos: smath.Point2f{wp.X, wp.Y}})
	}

	for _, aa := range aw.Airports {
		airport := NewAirport(aa.ID, smath.Point2f{aa.Center[0], aa.Center[1]})
		airport.Status = AirportStatus{
			AutomateAir:    aa.Status.AutomateAir,
			AutomateGround: aa.Status.AutomateGround,
			DivertArrivals: aa.Status.DivertArrivals,
		}
		airport.Frequencies.Ground = aa.Frequencies.Ground
		airport.Frequencies.Tower = aa.Frequencies.Tower
		airport.Frequencies.Departure = aa.Frequencies.Departure
		airport.Frequencies.Approach = aa.Frequencies.Approach
		airport.Frequencies.Center = aa.Frequencies.Center
		names := make([]string, 0, len(aa.Frequencies.Named))
		for k := range aa.Frequencies.Named {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			airport.Frequencies.Named.Set(k, aa.Frequencies.Named[k])
		}

		for _, ar := range aa.Runways {
			rwy := Runway{ID: ar.ID, Pos: smath.Point2f{ar.Start[0], ar.Start[1]}, End: smath.Point2f{ar.End[0], ar.End[1]}}
			airport.Runways = append(airport.Runways, rwy)
			airport.Graph.AddNode(Node{Name: rwy.ID, Kind: NodeRunway, Pos: rwy.Pos, End: rwy.End})
		}

		for _, at := range aa.Terminals {
			term := &Terminal{ID: at.ID}
			for _, ag := range at.Gates {
				gate := &Gate{ID: ag.ID, Pos: smath.Point2f{ag.Pos[0], ag.Pos[1]}, Available: true}
				term.Gates = append(term.Gates, gate)
				airport.Graph.AddNode(Node{Name: gate.ID, Kind: NodeGate, Pos: gate.Pos})
			}
			airport.Terminals = append(airport.Terminals, term)
		}

		for _, edge := range aa.Taxiways {
			na, err := toNode(edge.A)
			if err != nil {
				return nil, err
			}
			nb, err := toNode(edge.B)
			if err != nil {
				return nil, err
			}
			airport.Graph.AddEdge(na, nb)
		}

		w.Airports = append(w.Airports, airport)
	}

	return w, nil
}

func decompressZstd(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
