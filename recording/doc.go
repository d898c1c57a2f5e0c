// Package recording captures canvas calls as typed commands.
//
// A Recorder implements canvas.Canvas without producing pixels. Every
// drawing call becomes a Command; Finish turns the commands into an
// immutable Recording that can be inspected or replayed onto any
// canvas.Drawer.
//
// The package serves two purposes:
//
//   - Test double: a Recorder plays a script of event batches from
//     PollEvents and can be told to fail Present, so a plot loop can be
//     driven deterministically and its draw calls counted.
//   - Frame format: backends whose drawing must happen on another
//     goroutine (the window backend draws inside the ebiten game loop)
//     record a frame off-thread and replay it on the drawing thread.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(720, 720)
//	rec.Script([]canvas.Event{canvas.Quit{}})
//
//	loop, _ := ggplot.NewLoop(req, rec)
//	_ = loop.Run()
//
//	r := rec.Finish()
//	fmt.Println(r.Count(recording.CmdLine), "segments drawn")
//
//	// Replay onto another target
//	r.Playback(imageCanvas)
package recording
