package utils

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
)

var loader = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))

func DrawBanner() {
	figure.NewColorFigure("VM DOCTOR", "", "green", true).Print()
}

func StartSpinner() {
	loader.Suffix = " scanning running instances..."
	loader.Start()
}

func StopSpinner() {
	loader.Stop()
}
