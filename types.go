package main

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
)

type model struct {
	width  int
	height int
	mode   Mode
	help   bool

	board *Board
	grid  *gridViewer
	demo  *demoPage
	input textinput.Model

	config      *Config
	source      Source
	stats       StatsBridge
	feedChanged <-chan struct{}
	fonts       *fontSet

	lastFrame      time.Time
	errorMessage   string
	successMessage string

	logger *slog.Logger
	now    func() time.Time
}

type frameMsg time.Time

type composeDoneMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}
