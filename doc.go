/*
Package aspect lays out children so that each one keeps its aspect ratio inside
its container, anchored by an optional per-child alignment.

The core is Fit, a pure function computing the largest rectangle of a given
width / height ratio which fits in the container. Around it the package provides:

  - Store, a side-table holding the aspect ratio and alignment of each child,
    notifying observers on every change;
  - Pane, a framework agnostic container implementing Driver, which runs the
    layout pass through Arrange and records when a new pass is needed;
  - Box, the same layout for Gio widget trees;
  - Renderer, which draws a pane of pictures into an image.

The package also provides a command line interface to compute and render layouts:

	$ aspect --help

A minimal example:

	package main

	import (
		"fmt"

		"github.com/esimov/aspect"
	)

	func main() {
		pic := aspect.NewPicture(img)
		pane := aspect.NewPane(800, 600, pic)
		pane.SetAlignment(pic, aspect.Alignment{H: aspect.Left})
		pane.Layout()

		fmt.Println(pic.Bounds())
	}
*/
package aspect
