/*
Package storyboard is a state-based animation engine for design canvases.

An artboard's animation is authored as an ordered list of States (named
snapshots of element geometry and appearance) joined by Transitions (timing,
easing, per-element overrides and hierarchical cascades). The engine compiles
them into a Timeline of hold and transition segments, interpolates element
values at any point of that timeline, and plays it back in real time or
through Chains, independent step sequences with once, loop and ping-pong
modes.

# Architecture

Storyboard follows a hexagonal layout. The Studio (pkg/studio) owns the model,
the Scheduler (pkg/playback) reads it and publishes derived element values, and
DocumentStores (pkg/adapters/memory, file, redis) persist artboards. HTTP and
MCP adapters expose the same operations to other processes.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/storyboard"
		"github.com/aretw0/storyboard/pkg/domain"
	)

	func main() {
		eng, err := storyboard.New()
		if err != nil {
			log.Fatal(err)
		}
		defer eng.Close()

		s := eng.Studio()
		a := s.CreateState("hero", "Collapsed", []domain.AnimationStateElement{
			domain.NewElement("card", 0, 0, 100, 40),
		})
		b := s.CreateState("hero", "Expanded", []domain.AnimationStateElement{
			domain.NewElement("card", 0, 0, 300, 200),
		})
		s.CreateTransition(a.ID, b.ID)

		frame := eng.Sample("hero", 650)
		fmt.Println(frame.Elements["card"].Width)
	}

Real-time playback goes through a Scheduler:

	player := eng.Player("hero")
	player.Play()
	defer player.Stop()

# Persistence

Documents are artboard-scoped. Save writes the artboard to the configured
store and Load imports it back, replacing or merging with what the Studio
already holds. Imports always remap ids.
*/
package storyboard
