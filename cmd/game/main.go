package main

import (
	"flag"
	"log"

	"github.com/august-k/Aristaeus/internal/wall"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var seed int64
	flag.Int64Var(&seed, "seed", 1, "scenario seed")
	flag.Parse()

	viewer, err := wall.NewViewer(seed)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Wall Planner")
	ebiten.SetWindowSize(1004, 704)
	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
