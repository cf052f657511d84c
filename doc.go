// Package sway plays keyframe animations over vector-graphic documents.
//
// Sway takes a declarative document (JSON or YAML) describing an element
// tree and keyframe animations bound to its attributes, and plays it back
// through a pluggable rendering surface. Timing, easing, and interpolation
// all happen inside the engine; the surface only ever receives attribute
// writes.
//
// # Quick start
//
// Parse a document, build an engine, and play:
//
//	doc, err := sway.ParseDocument(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	adapter := sway.NewHeadlessAdapter()
//	engine := sway.NewEngine(doc, sway.Options{
//		Adapter:  adapter,
//		Autoplay: true,
//	})
//	defer engine.Destroy()
//
// By default the engine runs a software frame loop on a 60 Hz timer. In a
// game, deliver frames on the display refresh instead with the [ebitendriver]
// subpackage; for deterministic control, install a [ManualScheduler] and
// [ManualClock] and advance time by hand:
//
//	sched := &sway.ManualScheduler{}
//	clock := &sway.ManualClock{}
//	engine := sway.NewEngine(doc, sway.Options{
//		Adapter:   adapter,
//		Scheduler: sched,
//		Clock:     clock,
//	})
//	engine.Play()
//	clock.AdvanceMs(16.7)
//	sched.Tick() // one frame: attribute writes land on the adapter
//
// # Documents
//
// A document carries an element tree, playback configuration, and keyframe
// animations targeting elements by id:
//
//	{
//	  "root": {
//	    "id": "dot", "tag": "circle",
//	    "attrs": {"r": "5", "fill": "#888888"}
//	  },
//	  "animator": {"duration": 1200, "iterations": "infinite",
//	               "direction": "alternate"},
//	  "bindings": [{"target": "dot", "animation": {
//	    "r":    [{"t": 0, "v": 5}, {"t": 1200, "v": 24}],
//	    "fill": [{"t": 0, "v": "#2266ff"}, {"t": 1200, "v": "#ff3322"}]
//	  }}]
//	}
//
// Values interpolate by type: numbers and vectors linearly, colors through
// the configured color space (RGB, HCL or Lab), bezier path data vertex by
// vertex, everything else discretely. Easing accepts the CSS keywords,
// cubic-bezier() tuples, and the named presets ("out-bounce",
// "in-out-elastic", ...) from [gween].
//
// Malformed pieces never abort playback: normalization skips what it cannot
// use, reports it through the logger installed with [SetLogger], and
// animates the rest. Each engine works on a private clone of the document
// with freshly minted element ids, so several instances of one source never
// collide.
//
// # Execution
//
// Every engine owns one of two backends, chosen at construction. When the
// adapter implements [TimelineAdapter] and every animated value passes its
// capability probe, the document is compiled into platform timelines and the
// engine only issues control calls. Otherwise a software frame loop samples
// every track each frame and writes attributes through the [Adapter]. Both
// backends sit behind the same lifecycle surface: [Engine.Play],
// [Engine.Pause], [Engine.Cancel], [Engine.Finish], [Engine.SetCurrentTime],
// [Engine.SetPlaybackRate], [Engine.Destroy].
//
// The module ships two adapters: [HeadlessAdapter] records writes in memory
// for tests and offline sampling, and the [mqttadapter] subpackage streams
// them to an MQTT broker. See examples/ for an Ebitengine demo, an MQTT
// streamer, and controlled-time sampling.
//
// [gween]: https://github.com/tanema/gween
// [ebitendriver]: https://pkg.go.dev/github.com/phanxgames/sway/ebitendriver
// [mqttadapter]: https://pkg.go.dev/github.com/phanxgames/sway/mqttadapter
package sway
